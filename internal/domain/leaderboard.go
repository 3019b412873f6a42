package domain

// LeaderboardEntry is one row of the total or weekly leaderboard.
type LeaderboardEntry struct {
	Rank    int    // 1-based position after descending sort
	Account string // account address (lowercase)
	Points  int64  // summed liquidity + swap points for the scope
}

// AccountWeekRow is one row of the per-account chronological points log.
// Rows are returned in descending week-index order (most recent first);
// CumulativeTotal is still the running total in chronological order.
type AccountWeekRow struct {
	WeekIndex       int    // custom sequential week index (anchored mapping)
	WeekLabel       string // ISO year-week label, e.g. "2024-W31"
	SwapPoints      int64  // swap points earned in the week
	LiquidityPoints int64  // liquidity points earned in the week
	CumulativeTotal int64  // running total through this week, oldest first
}

// AccountLog is the full weekly history for one account.
type AccountLog struct {
	Account string
	Rows    []AccountWeekRow
}
