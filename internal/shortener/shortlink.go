package shortener

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a short code does not exist or has expired.
	ErrNotFound = errors.New("short link not found")
	// ErrCodeExists is returned by repositories when a conditional insert
	// loses to an existing mapping for the same code.
	ErrCodeExists = errors.New("short code already exists")
	// ErrInvalidInput is returned for malformed create requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCodeSpaceExhausted is returned when code generation keeps colliding
	// past the retry budget.
	ErrCodeSpaceExhausted = errors.New("code space exhausted")
)

// ShortLink is the durable mapping from a short code to its destination.
// Records are immutable once created; they die by expiry, not mutation.
type ShortLink struct {
	Code      string
	LongURL   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the link is logically dead at the given instant.
func (l *ShortLink) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// Remaining returns the link's remaining lifetime at the given instant.
func (l *ShortLink) Remaining(now time.Time) time.Duration {
	return l.ExpiresAt.Sub(now)
}

// Repository is the durable mapping store. It is the source of truth for a
// link's existence and expiry.
type Repository interface {
	// Insert atomically stores the link unless its code is already taken,
	// in which case it returns ErrCodeExists.
	Insert(ctx context.Context, link *ShortLink) error

	// GetByCode returns the record for a code, or ErrNotFound. Callers must
	// still check ExpiresAt: physical presence does not imply validity.
	GetByCode(ctx context.Context, code string) (*ShortLink, error)

	// DeleteExpiredBefore removes every record whose expiry precedes now and
	// returns the deleted codes. Used only by the sweeper, off the request
	// path, so a linear scan is acceptable.
	DeleteExpiredBefore(ctx context.Context, now time.Time) ([]string, error)
}

// Cache is the ephemeral code->URL accelerator. It owns nothing: it may be
// flushed entirely at any time without correctness loss.
type Cache interface {
	// Get returns the cached destination for a code, or ErrNotFound on miss.
	Get(ctx context.Context, code string) (string, error)

	// Set stores the destination under the code's key with the given TTL.
	Set(ctx context.Context, code, longURL string, ttl time.Duration) error

	// Delete evicts a code's entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, code string) error
}
