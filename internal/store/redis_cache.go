package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisCache is a Redis implementation of shortener.Cache. Entries live
// under "short:<code>" with a per-entry TTL enforced by Redis itself.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "short:",
	}
}

func (r *RedisCache) Get(ctx context.Context, code string) (string, error) {
	longURL, err := r.client.Get(ctx, r.prefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return longURL, nil
}

func (r *RedisCache) Set(ctx context.Context, code, longURL string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+code, longURL, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, r.prefix+code).Err()
}

// Compile-time check.
var _ shortener.Cache = (*RedisCache)(nil)
