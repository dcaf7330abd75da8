package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by the kv_entries table.
func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `
SELECT value
FROM kv_entries
WHERE key = $1
`
	var value string
	if err := s.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = now()
`
	_, err := s.pool.Exec(ctx, q, key, value)
	return err
}

func (s *postgresStore) Remove(ctx context.Context, key string) error {
	const q = `
DELETE FROM kv_entries
WHERE key = $1
`
	_, err := s.pool.Exec(ctx, q, key)
	return err
}
