package middleware

import (
	"strings"

	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/core"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth 驗證 token 並依角色放行
type Auth struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	config  *config.Configuration
	tokens  *auth.TokenManager
	revoker auth.Revoker
}

func NewAuth(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	tokens *auth.TokenManager,
	revoker auth.Revoker,
) *Auth {
	return &Auth{logger: logger, trace: trace, config: config, tokens: tokens, revoker: revoker}
}

// CurrentCaller 取出並驗證請求者；沒有 token 或 token 無效時回傳 false，不產生錯誤
func (m *Auth) CurrentCaller(c *gin.Context) (*core.Caller, bool) {
	if caller, ok := auth.CallerFrom(c); ok {
		return caller, true
	}
	caller, _ := m.resolve(c)
	if caller == nil {
		return nil, false
	}
	auth.SetCaller(c, caller)
	return caller, true
}

func (m *Auth) resolve(c *gin.Context) (*core.Caller, auth.TokenSource) {
	token, source := auth.TokenFromRequest(c, m.config.Auth.CookieName)
	if token == "" {
		return nil, source
	}
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, source
	}
	revoked, err := m.revoker.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// 黑名單查不到時放行，只記錄
		m.logger.Warn("token revocation lookup failed", zap.Error(err))
	}
	if revoked {
		return nil, source
	}
	return claims.Caller(), source
}

// RequireAuthenticated 需登入，任何角色
func (m *Auth) RequireAuthenticated() gin.HandlerFunc {
	return m.RequireRole()
}

// RequireRole 需登入且角色在清單內；清單為空時只檢查登入
func (m *Auth) RequireRole(roles ...core.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, role := range roles {
		allowed[i] = string(role)
	}

	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))
		meta := core.TraceAuthGateMeta{AllowedRoles: allowed}

		caller, ok := auth.CallerFrom(c)
		if !ok {
			var source auth.TokenSource
			caller, source = m.resolve(c)
			meta.TokenFrom = string(source)
		}
		if caller == nil {
			meta.Status = "unauthenticated"
			m.trace.ApplyTraceAttributes(span, meta)
			end(nil)
			response.AbortWithError(c, cErr.Unauthorized("Unauthorized"))
			return
		}
		auth.SetCaller(c, caller)
		meta.UserID, meta.Role = caller.ID, string(caller.Role)

		if len(roles) > 0 && !roleAllowed(caller.Role, roles) {
			meta.Status = "forbidden"
			m.trace.ApplyTraceAttributes(span, meta)
			end(nil)
			response.AbortWithError(c, cErr.Forbidden("Forbidden: requires role "+strings.Join(allowed, " or ")))
			return
		}

		meta.Status = "ok"
		m.trace.ApplyTraceAttributes(span, meta)
		end(nil)
		c.Next()
	}
}

func roleAllowed(role core.Role, roles []core.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
