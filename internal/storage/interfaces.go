package storage

import (
	"context"

	"veswap-points/internal/domain"
)

// RecordStore persists the normalized transaction record stream. Records are
// append-only; the engine always recomputes points from the full stream up
// to the cutoff.
type RecordStore interface {
	// InsertBulk appends records atomically. Fails the entire batch if any
	// record duplicates an existing (seq) position.
	InsertBulk(ctx context.Context, records []domain.TransactionRecord) error

	// GetAll retrieves every record ordered by (timestamp ASC, seq ASC).
	GetAll(ctx context.Context) ([]domain.TransactionRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}

// CursorStore persists the resume position over a record source. The cursor
// covers the input stream only; computed point state is never persisted
// between runs.
type CursorStore interface {
	// Get returns the index of the next unprocessed source record, or
	// ErrNotFound if the source has never been read.
	Get(ctx context.Context, source string) (int64, error)

	// Set saves the index of the next unprocessed source record.
	Set(ctx context.Context, source string, index int64) error
}

// LeaderboardStore publishes computed output tables. Publication happens
// only after a run completes, so a failed run never leaves partial output.
type LeaderboardStore interface {
	// InsertEntries publishes one leaderboard. scope is "total" or "weekly";
	// weekLabel is empty for the total scope.
	InsertEntries(ctx context.Context, runAt int64, scope, weekLabel string, entries []domain.LeaderboardEntry) error

	// InsertAccountRows publishes one account's weekly history.
	InsertAccountRows(ctx context.Context, runAt int64, account string, rows []domain.AccountWeekRow) error
}
