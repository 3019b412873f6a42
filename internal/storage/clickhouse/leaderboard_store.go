package clickhouse

import (
	"context"
	"fmt"

	"veswap-points/internal/domain"
	"veswap-points/internal/storage"
)

// LeaderboardStore implements storage.LeaderboardStore using ClickHouse.
// Each run publishes full snapshots keyed by run_at; the MergeTree tables
// keep every run so historical leaderboards remain queryable.
type LeaderboardStore struct {
	conn *Conn
}

// NewLeaderboardStore creates a new LeaderboardStore.
func NewLeaderboardStore(conn *Conn) *LeaderboardStore {
	return &LeaderboardStore{conn: conn}
}

// Compile-time interface check.
var _ storage.LeaderboardStore = (*LeaderboardStore)(nil)

// InsertEntries publishes one leaderboard snapshot using a prepared batch.
func (s *LeaderboardStore) InsertEntries(ctx context.Context, runAt int64, scope, weekLabel string, entries []domain.LeaderboardEntry) error {
	if scope == "" {
		return storage.ErrInvalidInput
	}
	if len(entries) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO leaderboard_entries (run_at, scope, week_label, rank, account, points)
	`)
	if err != nil {
		return fmt.Errorf("prepare leaderboard batch: %w", err)
	}

	for _, e := range entries {
		if err := batch.Append(runAt, scope, weekLabel, int32(e.Rank), e.Account, e.Points); err != nil {
			return fmt.Errorf("append leaderboard entry: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send leaderboard batch: %w", err)
	}
	return nil
}

// InsertAccountRows publishes one account's weekly history snapshot.
func (s *LeaderboardStore) InsertAccountRows(ctx context.Context, runAt int64, account string, rows []domain.AccountWeekRow) error {
	if account == "" {
		return storage.ErrInvalidInput
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO account_week_rows (run_at, account, week_index, week_label, swap_points, liquidity_points, cumulative_total)
	`)
	if err != nil {
		return fmt.Errorf("prepare account rows batch: %w", err)
	}

	for _, r := range rows {
		if err := batch.Append(runAt, account, int32(r.WeekIndex), r.WeekLabel, r.SwapPoints, r.LiquidityPoints, r.CumulativeTotal); err != nil {
			return fmt.Errorf("append account row: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send account rows batch: %w", err)
	}
	return nil
}
