package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker remembers revoked token ids until the tokens would expire anyway.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevoker keeps a jti denylist in Redis.
type RedisRevoker struct {
	rdb *redis.Client
}

func NewRedisRevoker(rdb *redis.Client) *RedisRevoker {
	return &RedisRevoker{rdb: rdb}
}

func revokedKey(jti string) string { return "revoked:" + jti }

// Revoke stores jti until expiresAt. Already expired tokens are ignored.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.rdb.Get(ctx, revokedKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
