package ratelimit

import (
	"github.com/submitin/api/internal/storage"
)

// NewLimiter selects the limiter backend. "redis" shares counters across
// instances; anything else falls back to the in-process table.
func NewLimiter(backend string, redis *storage.RedisClient) Limiter {
	switch backend {
	case "redis":
		if redis != nil {
			return NewRedisLimiter(redis)
		}
		return NewMemoryLimiter()
	default:
		return NewMemoryLimiter()
	}
}
