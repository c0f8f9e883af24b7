package auth

import (
	"context"
	"time"

	"shiftboard/internal/core"
	cErr "shiftboard/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Revoker 記錄已登出的 token id
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func SetCaller(c *gin.Context, caller *core.Caller) {
	c.Set(core.ContextCallerKey, caller)
}

func CallerFrom(c *gin.Context) (*core.Caller, bool) {
	raw, ok := c.Get(core.ContextCallerKey)
	if !ok {
		return nil, false
	}
	caller, ok := raw.(*core.Caller)
	return caller, ok && caller != nil
}

// EnsureOwner employee 只能操作自己的資料，admin 不受限
func EnsureOwner(caller *core.Caller, employeeID string) error {
	if caller == nil {
		return cErr.Unauthorized("Unauthorized")
	}
	if caller.Role == core.RoleEmployee && caller.ID != employeeID {
		return cErr.ForbiddenOwner("You can only mark your own attendance")
	}
	return nil
}
