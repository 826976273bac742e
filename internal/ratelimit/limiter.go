package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a rate limit check.
type Decision int

const (
	// Allowed lets the request through.
	Allowed Decision = iota
	// Denied rejects the request: the client exceeded its window budget.
	Denied
	// Unavailable means the backing store could not be reached. Callers
	// must treat this as Allowed: rate limiting is a protective control,
	// and its outage must not take down the primary service.
	Unavailable
)

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks whether a request from the given key should proceed.
	// The error is non-nil only alongside Unavailable, for logging.
	Allow(ctx context.Context, key string) (Decision, error)
}

// FixedWindowLimiter counts requests per key in fixed windows: the first
// request of a window starts it, and the count resets when it expires.
type FixedWindowLimiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a new fixed window rate limiter.
func NewFixedWindowLimiter(store Store, limit int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Unavailable, err
	}

	if count > l.limit {
		return Denied, nil
	}

	return Allowed, nil
}

// Compile-time check.
var _ Limiter = (*FixedWindowLimiter)(nil)
