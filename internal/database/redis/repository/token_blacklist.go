package repository

import (
	"context"
	"fmt"
	"time"

	"shiftboard/internal/core"
	client "shiftboard/internal/database/client"
	"shiftboard/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklistRepository 保存已登出 token 的 jti，直到 token 原本的到期時間
type TokenBlacklistRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
	now    func() time.Time
}

func NewTokenBlacklistRepository(trace *telemetry.Trace, client *client.RedisClient) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{trace: trace, client: client.Client(), now: time.Now}
}

func (repository *TokenBlacklistRepository) Revoke(contextValue context.Context, tokenID string, until time.Time) (returnedError error) {
	if repository.client == nil || tokenID == "" {
		return nil
	}
	ttl := until.Sub(repository.now())
	if ttl <= 0 {
		return nil
	}
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	returnedError = repository.client.Set(contextValue, repository.buildKey(tokenID), 1, ttl).Err()
	return returnedError
}

func (repository *TokenBlacklistRepository) IsRevoked(contextValue context.Context, tokenID string) (_ bool, returnedError error) {
	if repository.client == nil || tokenID == "" {
		return false, nil
	}
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	n, err := repository.client.Exists(contextValue, repository.buildKey(tokenID)).Result()
	if err != nil {
		returnedError = err
		return false, returnedError
	}
	return n > 0, nil
}

func (repository *TokenBlacklistRepository) buildKey(tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeyBlacklist, tokenID)
}
