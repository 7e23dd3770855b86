package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter bounds login attempts per key within a fixed window.
type LoginRateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type redisLoginRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLoginRateLimiter(client *redis.Client, limit int, window time.Duration) LoginRateLimiter {
	return &redisLoginRateLimiter{client: client, limit: limit, window: window}
}

func (r *redisLoginRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	// Hash the key so client addresses never land in redis verbatim.
	hashed := fmt.Sprintf("login_rl:%x", sha256.Sum256([]byte(key)))

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	count, err := r.client.Incr(ctx, hashed).Result()
	if err != nil {
		// Fail open on redis errors.
		return true, err
	}
	if count == 1 {
		r.client.Expire(ctx, hashed, r.window)
	}

	return count <= int64(r.limit), nil
}
