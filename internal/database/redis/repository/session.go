package repository

import (
	"context"
	"time"

	"soundgate/internal/core"
	"soundgate/internal/database/client"

	"github.com/redis/go-redis/v9"
)

// SessionRepository 記錄已撤銷的 session jti，key 會在 token 到期後自動消失
type SessionRepository struct {
	client redis.Cmdable
}

func NewSessionRepository(redisClient *client.RedisClient) *SessionRepository {
	return &SessionRepository{client: redisClient.Client()}
}

// IsRevoked 回報 jti 是否已被撤銷
func (repository *SessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := repository.client.Exists(ctx, buildKey(core.RedisKeyRevokedSession, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke 寫入撤銷紀錄；ttl <= 0 代表 token 已過期，不需要記錄
func (repository *SessionRepository) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return repository.client.Set(ctx, buildKey(core.RedisKeyRevokedSession, sessionID), time.Now().UTC().Unix(), ttl).Err()
}
