package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiftboard/internal/core"
	client "shiftboard/internal/database/client"
	"shiftboard/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// LoginThrottleRepository 固定視窗計數，Redis 未啟用時一律放行
type LoginThrottleRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewLoginThrottleRepository(trace *telemetry.Trace, client *client.RedisClient) *LoginThrottleRepository {
	return &LoginThrottleRepository{trace: trace, client: client.Client()}
}

func (repository *LoginThrottleRepository) Enabled() bool {
	return repository.client != nil
}

// Consume 消耗一次配額；自動處理新視窗初始化與剩餘 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrRateLimitExceeded）
func (repository *LoginThrottleRepository) Consume(
	contextValue context.Context,
	clientKey string,
	limitCount int,
	window time.Duration,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	if repository.client == nil {
		return limitCount, 0, nil
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		if errors.Is(returnedError, ErrRateLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	windowSeconds := int64(window.Seconds())
	traceMetadata := core.TraceThrottleMeta{
		Key:       clientKey,
		Limit:     limitCount,
		WindowSec: windowSeconds,
	}

	redisKey := repository.buildKey(clientKey)

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(contextValue, redisKey, limitCount-1, window).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRateLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		traceMetadata.Blocked = returnedError != nil
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → 執行 DECR 扣一次
	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		returnedError = decrError
		return 0, 0, returnedError
	}

	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	} else {
		// 沒有 TTL 的殘留 key 會永久封鎖，補上視窗
		repository.client.Expire(contextValue, redisKey, window)
		timeToLiveSeconds = windowSeconds
	}

	if newValue < 0 {
		traceMetadata.TTL, traceMetadata.Blocked = timeToLiveSeconds, true
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrRateLimitExceeded
		return 0, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

func (repository *LoginThrottleRepository) buildKey(clientKey string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeyLoginAttempt, clientKey)
}
