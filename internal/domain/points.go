package domain

// WeeklyBreakdown is the per-account points earned inside one ISO week.
// Entries are append-only during a run; a re-run rebuilds them from scratch.
type WeeklyBreakdown struct {
	WeekLabel       string // ISO year-week label
	SwapPoints      int64  // swap points booked into this week
	LiquidityPoints int64  // liquidity points booked into this week, post-cap
}
