package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/ratelimit"
)

type window struct {
	count     int64
	expiresAt time.Time
}

// RateLimitMemoryStore is an in-memory implementation of ratelimit.Store.
type RateLimitMemoryStore struct {
	mu      sync.Mutex
	windows map[string]window
}

// NewRateLimitMemoryStore creates a new in-memory rate-window store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		windows: make(map[string]window),
	}
}

func (s *RateLimitMemoryStore) Incr(_ context.Context, key string, windowSize time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	w, ok := s.windows[key]
	if !ok || !w.expiresAt.After(now) {
		// Fresh window: the first increment anchors the expiry.
		w = window{expiresAt: now.Add(windowSize)}
	}

	w.count++
	s.windows[key] = w

	return w.count, nil
}

// Compile-time check.
var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
