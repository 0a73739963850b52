package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Entry count above which expired records are swept on the next check.
const sweepThreshold = 10000

type record struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-local window counter. State is not durable and
// not shared between instances; multi-instance deployments should use the
// Redis limiter behind the same interface.
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Check(_ context.Context, identifier string, maxRequests int, window time.Duration) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	// Opportunistic cleanup keeps the table bounded.
	if len(m.records) > sweepThreshold {
		for key, rec := range m.records {
			if now.After(rec.resetTime) {
				delete(m.records, key)
			}
		}
	}

	rec, ok := m.records[identifier]
	if !ok || now.After(rec.resetTime) {
		m.records[identifier] = &record{
			count:     1,
			resetTime: now.Add(window),
		}
		return Result{
			Allowed:   true,
			Remaining: maxRequests - 1,
			ResetIn:   window,
		}, nil
	}

	if rec.count >= maxRequests {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetIn:   rec.resetTime.Sub(now),
		}, nil
	}

	rec.count++
	return Result{
		Allowed:   true,
		Remaining: maxRequests - rec.count,
		ResetIn:   rec.resetTime.Sub(now),
	}, nil
}
