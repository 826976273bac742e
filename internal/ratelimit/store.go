package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for rate-window counter storage.
type Store interface {
	// Incr atomically increments the counter for key and, if this is the
	// first increment of a fresh window, sets the window's expiry to now +
	// window in the same atomic step. It returns the count after increment.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
