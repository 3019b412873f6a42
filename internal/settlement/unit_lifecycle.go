package settlement

import (
	"fmt"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/ledger"
)

// UnitLifecycle is the default strategy: adds and removals drive a unit
// ledger, then every unit still active at the cutoff settles its elapsed
// cycles. Per-unit accrual carries the over-withdrawal clamping policy of
// the ledger.
type UnitLifecycle struct {
	cfg    config.Config
	book   *ledger.Ledger
	clamps int
}

// NewUnitLifecycle creates the strategy with a fresh ledger.
func NewUnitLifecycle(cfg config.Config) *UnitLifecycle {
	return &UnitLifecycle{cfg: cfg, book: ledger.New(cfg.UnitSize)}
}

// Name implements Strategy.
func (s *UnitLifecycle) Name() string { return config.StrategyUnitLifecycle }

// Settle implements Strategy. Records past the cutoff are ignored.
func (s *UnitLifecycle) Settle(liquidity []*domain.TransactionRecord) ([]domain.LiquidityAward, error) {
	for _, rec := range liquidity {
		if rec.Timestamp > s.cfg.EndTime {
			continue
		}
		switch rec.Kind {
		case domain.KindAddLiquidity:
			s.book.AddLiquidity(rec.Account, rec.PairID, rec.Timestamp, rec.Amount)
		case domain.KindRemoveLiquidity:
			if _, clamped := s.book.RemoveLiquidity(rec.Account, rec.PairID, rec.Amount); clamped {
				s.clamps++
			}
		default:
			return nil, fmt.Errorf("unit lifecycle: unexpected record kind %q", rec.Kind)
		}
	}
	return Settle(s.book.Units(), s.cfg.EndTime, s.cfg.CycleSeconds, s.cfg.PointsPerCycle, s.cfg.PairMultipliers)
}

// Ledger exposes the built ledger for inspection after Settle.
func (s *UnitLifecycle) Ledger() *ledger.Ledger { return s.book }

// ClampedRemovals reports how many removals exceeded the tracked balance and
// were clamped.
func (s *UnitLifecycle) ClampedRemovals() int { return s.clamps }
