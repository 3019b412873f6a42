package settlement

import (
	"veswap-points/internal/config"
	"veswap-points/internal/domain"
)

// Strategy converts the liquidity half of the record stream into uncapped
// liquidity awards. Records arrive already normalized and stable-sorted by
// (Timestamp, Seq); implementations must be deterministic over that order.
type Strategy interface {
	// Name identifies the strategy in reports and logs.
	Name() string

	// Settle consumes add/remove records up to the configured cutoff and
	// returns awards for every completed cycle.
	Settle(liquidity []*domain.TransactionRecord) ([]domain.LiquidityAward, error)
}

// ForConfig returns the strategy selected by cfg.Strategy. cfg must already
// be validated.
func ForConfig(cfg config.Config) Strategy {
	if cfg.Strategy == config.StrategySnapshot {
		return NewSnapshot(cfg)
	}
	return NewUnitLifecycle(cfg)
}
