package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_links table and its expiry index if they
// do not exist yet. Called once at startup.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS short_links (
			code       TEXT PRIMARY KEY,
			long_url   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS short_links_expires_at_idx
		ON short_links (expires_at)
	`)

	return err
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (code, long_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		link.Code,
		link.LongURL,
		link.CreatedAt,
		link.ExpiresAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrCodeExists
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code string) (*shortener.ShortLink, error) {
	query := `
		SELECT code, long_url, created_at, expires_at
		FROM short_links
		WHERE code = $1
	`

	var link shortener.ShortLink

	err := p.pool.QueryRow(ctx, query, code).Scan(
		&link.Code,
		&link.LongURL,
		&link.CreatedAt,
		&link.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

func (p *PostgresStore) DeleteExpiredBefore(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		DELETE FROM short_links
		WHERE expires_at < $1
		RETURNING code
	`

	rows, err := p.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}

		codes = append(codes, code)
	}

	return codes, rows.Err()
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
