// Package sweeper reconciles expired short links across the mapping store
// and the cache. It is a cost-control mechanism, not a correctness one: the
// resolver independently rejects expired records at read time, so a missed
// tick only means dead rows linger until the next one.
package sweeper

import (
	"context"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// Sweeper periodically purges expired records from the mapping store and
// evicts their cache entries.
type Sweeper struct {
	repo     shortener.Repository
	cache    shortener.Cache
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a new sweeper that runs once per interval.
func New(repo shortener.Repository, cache shortener.Cache, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		cache:    cache,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the periodic sweep loop in the background.
func (s *Sweeper) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	go s.run(ctx)

	return nil
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs a single tick: bulk-delete expired rows, then evict their
// cache entries best effort. Any failure abandons the tick; the next one
// retries from scratch. Returns the number of purged records.
func (s *Sweeper) Sweep(ctx context.Context) int {
	codes, err := s.repo.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))

		return 0
	}

	for _, code := range codes {
		if cacheErr := s.cache.Delete(ctx, code); cacheErr != nil {
			s.logger.Warn("cache eviction failed",
				zap.String("code", code),
				zap.Error(cacheErr),
			)
		}
	}

	if len(codes) > 0 {
		s.logger.Info("sweep complete", zap.Int("purged", len(codes)))
	} else {
		s.logger.Info("sweep complete, no expired links found")
	}

	return len(codes)
}

// Shutdown stops the sweep loop and waits for an in-flight tick to finish.
func (s *Sweeper) Shutdown() error {
	if s.cancel == nil {
		return nil
	}

	s.cancel()
	<-s.done

	return nil
}
