package postgres

import (
	"context"
	"fmt"

	"veswap-points/internal/storage"
)

// CursorStore is a PostgreSQL implementation of storage.CursorStore. One row
// per record source, keyed by source name.
type CursorStore struct {
	pool *Pool
}

// NewCursorStore creates a new PostgreSQL cursor store.
func NewCursorStore(pool *Pool) *CursorStore {
	return &CursorStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CursorStore = (*CursorStore)(nil)

// Get returns the next unprocessed index for a source, or ErrNotFound.
func (s *CursorStore) Get(ctx context.Context, source string) (int64, error) {
	var index int64
	err := s.pool.QueryRow(ctx, `
		SELECT next_index
		FROM ingest_cursors
		WHERE source = $1
	`, source).Scan(&index)
	if err != nil {
		if isNotFoundError(err) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("get cursor: %w", err)
	}
	return index, nil
}

// Set saves the next unprocessed index for a source. Uses upsert so the
// first save and subsequent advances share one path.
func (s *CursorStore) Set(ctx context.Context, source string, index int64) error {
	if source == "" || index < 0 {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO ingest_cursors (source, next_index, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (source) DO UPDATE
		SET next_index = EXCLUDED.next_index,
		    updated_at = NOW()
	`, source, index)
	if err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return nil
}
