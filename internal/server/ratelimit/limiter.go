// Package ratelimit implements the basic counter limiter applied to the
// authentication endpoints. The counter lives in Redis so it survives
// restarts and is shared between replicas; the limiter itself holds no
// state beyond the client.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// AuthLimiter throttles authentication attempts per client key using a
// Redis INCR counter with a fixed expiry window.
type AuthLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewAuthLimiter constructs a limiter over the given Redis client. A nil
// client disables the limiter entirely.
func NewAuthLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) *AuthLimiter {
	return &AuthLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Enforce counts an attempt for key and returns common.ErrRateLimited
// once the attempts within the window exceed the configured maximum.
// Redis failures are wrapped and returned; the caller decides whether to
// fail open.
func (l *AuthLimiter) Enforce(ctx context.Context, key string) error {
	if l == nil || l.redis == nil {
		return nil
	}

	count, err := l.redis.Incr(ctx, authKey(key)).Result()
	if err != nil {
		return fmt.Errorf("rate limiter redis error: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, authKey(key), l.window).Err(); err != nil {
			return fmt.Errorf("rate limiter redis error: %w", err)
		}
	}

	if count > int64(l.maxAttempts) {
		return common.ErrRateLimited
	}

	return nil
}

func authKey(key string) string {
	return "auth:" + key
}
