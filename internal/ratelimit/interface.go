package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single rate-limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter bounds request rate per identifier. The identifier combines an
// action name and a principal, e.g. "submit:<formID>:<ip>". Implementations
// must be safe for concurrent use.
type Limiter interface {
	Check(ctx context.Context, identifier string, maxRequests int, window time.Duration) (Result, error)
}
