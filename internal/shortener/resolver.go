package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Resolver implements the cache-aside read path: consult the cache, fall
// back to the mapping store, repopulate the cache with the remaining TTL.
type Resolver struct {
	repo            Repository
	cache           Cache
	cacheTTLCeiling time.Duration
	logger          *zap.Logger
}

// NewResolver creates a new resolver. cacheTTLCeiling caps the TTL of
// entries written on resolve-time repopulation; zero means no ceiling.
func NewResolver(repo Repository, cache Cache, cacheTTLCeiling time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:            repo,
		cache:           cache,
		cacheTTLCeiling: cacheTTLCeiling,
		logger:          logger,
	}
}

// Resolve returns the destination URL for a code, or ErrNotFound if the
// code is absent or expired. A cache hit is trusted without an expiry
// check: entries are only ever written with a TTL bounded by the record's
// remaining lifetime, so presence implies validity.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	longURL, err := r.cache.Get(ctx, code)
	if err == nil {
		return longURL, nil
	}

	if !errors.Is(err, ErrNotFound) {
		// Cache trouble degrades to a miss; the store answers instead.
		r.logger.Warn("cache read failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	link, err := r.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("load short link: %w", err)
	}

	now := time.Now()
	if link.Expired(now) {
		// Logically dead even if the sweeper has not caught up yet.
		return "", ErrNotFound
	}

	// Never cache beyond the record's remaining lifetime, or a repopulated
	// entry could outlive the record.
	ttl := link.Remaining(now)
	if r.cacheTTLCeiling > 0 && ttl > r.cacheTTLCeiling {
		ttl = r.cacheTTLCeiling
	}

	if cacheErr := r.cache.Set(ctx, code, link.LongURL, ttl); cacheErr != nil {
		r.logger.Warn("cache repopulation failed",
			zap.String("code", code),
			zap.Error(cacheErr),
		)
	}

	return link.LongURL, nil
}
