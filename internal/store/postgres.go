package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recallhq/recall/internal/domain"
)

// PostgresStore persists documents in a single table with a JSONB value
// column. Schema is managed by the migrations directory.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on top of an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string, v interface{}) error {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM documents WHERE key = $1`,
		key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDocumentNotFound
		}
		return storageError("get", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return storageError("get", err)
	}
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return storageError("put", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (key, value, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, raw, time.Now().UTC(),
	)
	if err != nil {
		return storageError("put", err)
	}
	return nil
}
