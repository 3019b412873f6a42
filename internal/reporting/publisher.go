package reporting

import (
	"context"
	"fmt"

	"veswap-points/internal/leaderboard"
	"veswap-points/internal/storage"
)

// Leaderboard scope names used when publishing to a sink.
const (
	ScopeTotal  = "total"
	ScopeWeekly = "weekly"
)

// Publish writes all three tables to a leaderboard sink. Callers invoke this
// only after the run completed, preserving all-or-nothing output semantics.
func Publish(ctx context.Context, sink storage.LeaderboardStore, runAt int64, t *leaderboard.Tables) error {
	if err := sink.InsertEntries(ctx, runAt, ScopeTotal, "", t.Total); err != nil {
		return fmt.Errorf("publish total leaderboard: %w", err)
	}
	if err := sink.InsertEntries(ctx, runAt, ScopeWeekly, t.WeeklyLabel, t.Weekly); err != nil {
		return fmt.Errorf("publish weekly leaderboard: %w", err)
	}
	for _, log := range t.AccountLogs {
		if err := sink.InsertAccountRows(ctx, runAt, log.Account, log.Rows); err != nil {
			return fmt.Errorf("publish account log %s: %w", log.Account, err)
		}
	}
	return nil
}
