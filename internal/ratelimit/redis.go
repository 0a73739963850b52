package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/submitin/api/internal/storage"
)

// RedisLimiter is a fixed-window counter backed by a shared Redis instance,
// for deployments running more than one process. INCR and EXPIRE keep the
// count-and-reset semantics atomic across instances.
type RedisLimiter struct {
	redis *storage.RedisClient
}

func NewRedisLimiter(redis *storage.RedisClient) *RedisLimiter {
	return &RedisLimiter{redis: redis}
}

func (r *RedisLimiter) Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) (Result, error) {
	key := fmt.Sprintf("ratelimit:%s", identifier)

	count, err := r.redis.Incr(ctx, key)
	if err != nil {
		return Result{}, err
	}

	if count == 1 {
		if err := r.redis.Expire(ctx, key, window); err != nil {
			return Result{}, err
		}
	}

	resetIn, err := r.redis.TTL(ctx, key)
	if err != nil || resetIn < 0 {
		resetIn = window
	}

	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= int64(maxRequests),
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
