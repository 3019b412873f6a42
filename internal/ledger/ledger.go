// Package ledger tracks banked liquidity in fixed-size units. Units live in
// an append-only arena with stable ids; removal flips the Active flag and
// never deletes, so deactivated units stay addressable for audit and
// settlement history.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"veswap-points/internal/domain"
)

// Ledger owns all liquidity units and per-(account, pair) leftover balances
// for one engine run. Calls must arrive in non-decreasing timestamp order;
// the ledger itself performs no locking because the batch is single-threaded.
type Ledger struct {
	unitSize decimal.Decimal

	units  []*domain.LiquidityUnit // append-only arena, UnitID == index + 1
	nextID int64

	// leftover and unit index lists keyed by account|pair
	leftover  map[string]decimal.Decimal
	unitIdx   map[string][]int // arena indexes in creation order
	positions []string         // keys in first-seen order, for deterministic walks
}

// New creates an empty ledger with the given unit size. unitSize must be
// positive; the engine validates this before construction.
func New(unitSize decimal.Decimal) *Ledger {
	return &Ledger{
		unitSize: unitSize,
		leftover: make(map[string]decimal.Decimal),
		unitIdx:  make(map[string][]int),
	}
}

func positionKey(account, pairID string) string {
	return fmt.Sprintf("%s|%s", account, pairID)
}

// AddLiquidity merges amount into the account's leftover for the pair and
// banks every full UnitSize slice as a new active unit started at timestamp.
// Returns the number of units created.
func (l *Ledger) AddLiquidity(account, pairID string, timestamp int64, amount decimal.Decimal) int {
	key := positionKey(account, pairID)
	if _, seen := l.leftover[key]; !seen {
		l.positions = append(l.positions, key)
	}

	combined := l.leftover[key].Add(amount)
	fullCount := combined.Div(l.unitSize).Floor().IntPart()
	l.leftover[key] = combined.Mod(l.unitSize)

	for i := int64(0); i < fullCount; i++ {
		l.nextID++
		unit := &domain.LiquidityUnit{
			UnitID:    l.nextID,
			Owner:     account,
			PairID:    pairID,
			StartTime: timestamp,
			Active:    true,
		}
		l.units = append(l.units, unit)
		l.unitIdx[key] = append(l.unitIdx[key], len(l.units)-1)
	}
	return int(fullCount)
}

// RemoveLiquidity debits the leftover first, then covers any shortfall by
// deactivating whole units in ledger order (first created, first scanned).
// Overshoot from the last deactivated unit becomes the new leftover.
//
// When the requested amount exceeds everything tracked for the position, the
// ledger deactivates what exists and clamps the leftover at zero instead of
// failing. Under-removal is tolerated on purpose: downstream output parity
// depends on this clamping policy, so it must not be tightened here.
// Returns the number of units deactivated and whether clamping occurred.
func (l *Ledger) RemoveLiquidity(account, pairID string, amount decimal.Decimal) (deactivated int, clamped bool) {
	key := positionKey(account, pairID)
	if _, seen := l.leftover[key]; !seen {
		l.positions = append(l.positions, key)
		l.leftover[key] = decimal.Zero
	}

	left := l.leftover[key]
	if left.GreaterThanOrEqual(amount) {
		l.leftover[key] = left.Sub(amount)
		return 0, false
	}

	remaining := amount.Sub(left)
	needed := remaining.Div(l.unitSize).Ceil().IntPart()

	for _, idx := range l.unitIdx[key] {
		if needed == 0 {
			break
		}
		unit := l.units[idx]
		if !unit.Active {
			continue
		}
		unit.Active = false
		deactivated++
		needed--
	}

	capacity := l.unitSize.Mul(decimal.NewFromInt(int64(deactivated)))
	overshoot := capacity.Sub(remaining)
	if overshoot.IsNegative() {
		// Requested more than the position held: clamp rather than error.
		overshoot = decimal.Zero
		clamped = true
	}
	l.leftover[key] = overshoot
	return deactivated, clamped
}

// Units returns the full arena in creation order, deactivated units included.
// Callers must not reorder the slice; settlement relies on arena order for
// deterministic cap application.
func (l *Ledger) Units() []*domain.LiquidityUnit {
	return l.units
}

// Leftover returns the unbanked remainder for a position, always in
// [0, UnitSize).
func (l *Ledger) Leftover(account, pairID string) decimal.Decimal {
	return l.leftover[positionKey(account, pairID)]
}

// ActiveUnitCount returns the number of active units for a position.
func (l *Ledger) ActiveUnitCount(account, pairID string) int {
	n := 0
	for _, idx := range l.unitIdx[positionKey(account, pairID)] {
		if l.units[idx].Active {
			n++
		}
	}
	return n
}
