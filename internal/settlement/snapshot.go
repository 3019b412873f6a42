package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/weektime"
)

// Snapshot is the fixed-slot strategy: instead of tracking individual unit
// lifetimes, it walks fixed cycle boundaries anchored at the configured
// anchor week and awards one slot per full UnitSize of net balance held at
// the start of each cycle. Kept alongside UnitLifecycle so either historical
// accounting generation can be selected without touching ingestion or
// leaderboard code.
type Snapshot struct {
	cfg config.Config
}

// NewSnapshot creates the snapshot strategy.
func NewSnapshot(cfg config.Config) *Snapshot {
	return &Snapshot{cfg: cfg}
}

// Name implements Strategy.
func (s *Snapshot) Name() string { return config.StrategySnapshot }

// Settle implements Strategy. For every cycle boundary t in
// (anchor, EndTime], the net balance snapshot taken at t - CycleSeconds is
// floored into slots and each slot earns the per-cycle award at t. Balances
// clamp at zero on over-withdrawal, matching the ledger policy.
func (s *Snapshot) Settle(liquidity []*domain.TransactionRecord) ([]domain.LiquidityAward, error) {
	anchor, err := weektime.WeekStartOfLabel(s.cfg.AnchorWeekLabel)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	type position struct {
		account string
		pairID  string
	}
	balances := make(map[position]decimal.Decimal)
	var order []position

	apply := func(rec *domain.TransactionRecord) error {
		pos := position{rec.Account, rec.PairID}
		if _, seen := balances[pos]; !seen {
			order = append(order, pos)
		}
		switch rec.Kind {
		case domain.KindAddLiquidity:
			balances[pos] = balances[pos].Add(rec.Amount)
		case domain.KindRemoveLiquidity:
			next := balances[pos].Sub(rec.Amount)
			if next.IsNegative() {
				next = decimal.Zero
			}
			balances[pos] = next
		default:
			return fmt.Errorf("snapshot: unexpected record kind %q", rec.Kind)
		}
		return nil
	}

	var awards []domain.LiquidityAward
	next := 0
	for cycle := 1; ; cycle++ {
		boundary := anchor + int64(cycle)*s.cfg.CycleSeconds
		if boundary > s.cfg.EndTime {
			break
		}
		snapshotAt := boundary - s.cfg.CycleSeconds

		for next < len(liquidity) && liquidity[next].Timestamp <= snapshotAt {
			if err := apply(liquidity[next]); err != nil {
				return nil, err
			}
			next++
		}

		awardTime := adjustAwardTime(boundary, s.cfg.EndTime)
		for _, pos := range order {
			slots := balances[pos].Div(s.cfg.UnitSize).Floor().IntPart()
			if slots == 0 {
				continue
			}
			mult, ok := s.cfg.PairMultipliers[pos.pairID]
			if !ok {
				return nil, fmt.Errorf("snapshot: %w: %q", ErrUnknownPair, pos.pairID)
			}
			awards = append(awards, domain.LiquidityAward{
				Account:   pos.account,
				PairID:    pos.pairID,
				Cycle:     cycle,
				AwardTime: awardTime,
				Points:    slots * s.cfg.PointsPerCycle * mult,
			})
		}
	}

	return awards, nil
}
