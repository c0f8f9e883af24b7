package middleware

import (
	"strings"
	"time"

	"shiftboard/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewDecompress,
	NewResponse,
	NewAuth,
	NewThrottle,
)

// 不追蹤、不包裝回應的路徑
func skipObservability(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health-check") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}

// requestID 由 TraceEntry 產生；未經過 TraceEntry 時補一個
func requestID(c *gin.Context) string {
	if v, ok := c.Get(core.ContextRequestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	id := newRequestID()
	c.Set(core.ContextRequestIDKey, id)
	return id
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

func requestStart(c *gin.Context) time.Time {
	if startTime, exists := c.Get(core.ContextStartKey); exists {
		if t, ok := startTime.(time.Time); ok {
			return t
		}
	}
	now := time.Now().UTC()
	c.Set(core.ContextStartKey, now)
	return now
}
