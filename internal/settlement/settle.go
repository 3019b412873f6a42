// Package settlement awards liquidity points for fully elapsed cycles. Two
// strategies implement the accrual: the default unit-lifecycle strategy
// settles each banked unit individually, the snapshot strategy re-derives
// slot counts at fixed cycle boundaries. Both emit uncapped awards; the
// weekly cap is applied when awards are booked into the points ledger.
package settlement

import (
	"errors"
	"fmt"

	"veswap-points/internal/domain"
	"veswap-points/internal/weektime"
)

// ErrUnknownPair is returned when a unit or record references a pair with no
// configured multiplier. Ingestion rejects these up front, so hitting this
// inside settlement means the run is inconsistent and must abort.
var ErrUnknownPair = errors.New("unknown pair")

// Settle walks every active unit and emits one award per newly elapsed cycle
// up to endTime. ClaimedCycles is advanced so repeated calls with
// non-decreasing endTime never re-award a cycle. Inactive units are skipped
// entirely: a removed unit keeps whatever it had claimed before removal and
// earns nothing further, with no partial-cycle credit.
//
// Awards land in the week containing their cycle-completion time. When a
// completion falls exactly on endTime and endTime sits on a week boundary,
// the award time is pulled back one second so the points stay in the week
// that actually accrued them.
func Settle(units []*domain.LiquidityUnit, endTime, cycleSeconds, pointsPerCycle int64, multipliers map[string]int64) ([]domain.LiquidityAward, error) {
	var awards []domain.LiquidityAward

	for _, unit := range units {
		if !unit.Active {
			continue
		}
		elapsed := endTime - unit.StartTime
		if elapsed <= 0 {
			continue
		}
		fullCycles := int(elapsed / cycleSeconds)
		if fullCycles <= unit.ClaimedCycles {
			continue
		}

		mult, ok := multipliers[unit.PairID]
		if !ok {
			return nil, fmt.Errorf("settle unit %d: %w: %q", unit.UnitID, ErrUnknownPair, unit.PairID)
		}

		for i := unit.ClaimedCycles + 1; i <= fullCycles; i++ {
			awardTime := unit.StartTime + int64(i)*cycleSeconds
			awardTime = adjustAwardTime(awardTime, endTime)
			awards = append(awards, domain.LiquidityAward{
				Account:   unit.Owner,
				PairID:    unit.PairID,
				UnitID:    unit.UnitID,
				Cycle:     i,
				AwardTime: awardTime,
				Points:    pointsPerCycle * mult,
			})
		}
		unit.ClaimedCycles = fullCycles
	}

	return awards, nil
}

// adjustAwardTime applies the cutoff week correction: an award landing
// exactly on endTime when endTime opens a new ISO week is shifted back one
// second into the week that earned it.
func adjustAwardTime(awardTime, endTime int64) int64 {
	if awardTime != endTime {
		return awardTime
	}
	if weektime.WeekLabelOf(awardTime-1) != weektime.WeekLabelOf(endTime) {
		return awardTime - 1
	}
	return awardTime
}
