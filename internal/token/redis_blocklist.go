package token

import (
	"context"
	"fmt"
	"time"

	"github.com/mkim/storehub-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const blocklistKeyPrefix = "blocklist:"

// RedisBlocklist stores revoked identifiers as TTL'd Redis keys, so expiry
// happens server-side and revocations are shared across instances.
type RedisBlocklist struct {
	client *redis.Client
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{client: client}
}

func (b *RedisBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := blocklistKeyPrefix + jti
	if err := b.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to add token to blocklist", err, map[string]interface{}{
			"jti": jti,
		})
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	val, err := b.client.Get(ctx, blocklistKeyPrefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blocklist", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

// Prune is a no-op for Redis, keys expire server-side via their TTL.
func (b *RedisBlocklist) Prune(_ context.Context) (int, error) {
	return 0, nil
}
