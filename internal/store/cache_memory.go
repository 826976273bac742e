package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

type cacheEntry struct {
	longURL   string
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of shortener.Cache that honors
// per-entry TTLs by checking them lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, code string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[code]
	m.mu.RUnlock()

	if !ok {
		return "", shortener.ErrNotFound
	}

	if !entry.expiresAt.After(time.Now()) {
		m.mu.Lock()
		delete(m.entries, code)
		m.mu.Unlock()

		return "", shortener.ErrNotFound
	}

	return entry.longURL, nil
}

func (m *MemoryCache) Set(_ context.Context, code, longURL string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[code] = cacheEntry{
		longURL:   longURL,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

func (m *MemoryCache) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, code)

	return nil
}

// Contains reports whether the cache currently holds a live entry for code.
func (m *MemoryCache) Contains(code string) bool {
	_, err := m.Get(context.Background(), code)

	return err == nil
}

// Compile-time check.
var _ shortener.Cache = (*MemoryCache)(nil)
