package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// maxGenerateAttempts bounds the collision retry loop. Exceeding it means
// the code space is effectively saturated for the configured length.
const maxGenerateAttempts = 5

// Creator implements the write path: generate a code, persist the mapping,
// prime the cache.
type Creator struct {
	repo     Repository
	cache    Cache
	generate Generator
	logger   *zap.Logger
}

// NewCreator creates a new short link creator.
func NewCreator(repo Repository, cache Cache, generate Generator, logger *zap.Logger) *Creator {
	return &Creator{
		repo:     repo,
		cache:    cache,
		generate: generate,
		logger:   logger,
	}
}

// Create mints a short link for longURL that stays valid for ttl.
// The durable write must succeed; the cache priming is best effort.
func (c *Creator) Create(ctx context.Context, longURL string, ttl time.Duration) (*ShortLink, error) {
	if longURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidInput)
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", ErrInvalidInput)
	}

	now := time.Now()
	link := &ShortLink{
		LongURL:   longURL,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		link.Code = c.generate()

		err := c.repo.Insert(ctx, link)
		if errors.Is(err, ErrCodeExists) {
			c.logger.Warn("short code collision",
				zap.String("code", link.Code),
				zap.Int("attempt", attempt),
			)

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("insert short link: %w", err)
		}

		// Prime the cache with the link's full lifetime. The record is
		// already durable, so a cache failure only costs the first read.
		if cacheErr := c.cache.Set(ctx, link.Code, link.LongURL, ttl); cacheErr != nil {
			c.logger.Warn("failed to prime cache",
				zap.String("code", link.Code),
				zap.Error(cacheErr),
			)
		}

		return link, nil
	}

	return nil, ErrCodeSpaceExhausted
}
