package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"
	redisRepo "shiftboard/internal/database/redis/repository"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginLimiter 固定視窗配額，超限時回傳 redisRepo.ErrRateLimitExceeded
type LoginLimiter interface {
	Consume(ctx context.Context, clientKey string, limit int, window time.Duration) (int, int64, error)
}

// Throttle 限制同一 IP 呼叫 /api/auth 的頻率
type Throttle struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	config  *config.Configuration
	limiter LoginLimiter
}

func NewThrottle(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	limiter *redisRepo.LoginThrottleRepository,
) *Throttle {
	return &Throttle{logger: logger, trace: trace, metric: metric, config: config, limiter: limiter}
}

func (m *Throttle) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanThrottleMiddleware))
		limit := m.config.Auth.LoginLimit
		window := m.config.Auth.LoginWindow()

		remaining, ttl, err := m.limiter.Consume(ctx, c.ClientIP(), limit, window)
		m.trace.ApplyTraceAttributes(span, core.TraceThrottleMeta{
			Key:       c.ClientIP(),
			Limit:     limit,
			WindowSec: int64(window.Seconds()),
			Remaining: remaining,
			TTL:       ttl,
			Blocked:   errors.Is(err, redisRepo.ErrRateLimitExceeded),
		})
		end(nil)

		switch {
		case errors.Is(err, redisRepo.ErrRateLimitExceeded):
			m.metric.IncLoginThrottled()
			c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", "0")
			response.AbortWithError(c, cErr.RateLimitExceeded("Too many attempts, please try again later"))
			return
		case err != nil:
			// Redis 異常時不阻擋登入
			m.logger.Warn("login throttle unavailable", zap.Error(err))
		default:
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		c.Next()
	}
}
