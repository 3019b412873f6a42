package domain

// LiquidityUnit is one fixed-size slice of banked liquidity owned by a single
// account in a single pair. Units are created when an add pushes the merged
// balance past a UnitSize boundary and are deactivated, never deleted, when a
// removal consumes them. Deactivated units stay in the arena for audit.
type LiquidityUnit struct {
	UnitID        int64  // monotonically increasing, unique for the process lifetime
	Owner         string // account address (lowercase)
	PairID        string // trading pair the unit belongs to
	StartTime     int64  // Unix seconds when the unit was created
	Active        bool   // false once consumed by a removal
	ClaimedCycles int    // number of full cycles already settled, never decreases
}

// LiquidityAward is one settlement credit for a unit that completed a cycle.
// Points carries the pair multiplier but not the weekly cap; the cap is
// applied when the award is booked into the points ledger.
type LiquidityAward struct {
	Account   string // unit owner
	PairID    string // pair the unit belongs to
	UnitID    int64  // unit that earned the award
	Cycle     int    // 1-based cycle index within the unit's lifetime
	AwardTime int64  // Unix seconds the cycle completed (week bucket key)
	Points    int64  // uncapped points for this cycle
}
