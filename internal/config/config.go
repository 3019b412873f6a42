// Package config defines the externally settable parameters of the points
// engine. Configuration is loaded from a TOML file and validated before any
// ledger state is touched; validation failures are fatal for the run.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"veswap-points/internal/weektime"
)

// Strategy names selectable via the Strategy field.
const (
	StrategyUnitLifecycle = "unit_lifecycle"
	StrategySnapshot      = "snapshot"
)

// Malformed-record policy values for OnMalformed.
const (
	OnMalformedFail = "fail"
	OnMalformedSkip = "skip"
)

// ErrInvalidConfig is returned (wrapped) for any startup validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full configuration surface of one engine run.
type Config struct {
	// UnitSize is the liquidity banking threshold: one unit per UnitSize of
	// notional liquidity, and one swap point per UnitSize of daily volume.
	UnitSize decimal.Decimal `toml:"unit_size"`

	// CycleSeconds is the settlement period for active units. Default 7 days.
	CycleSeconds int64 `toml:"cycle_seconds"`

	// PointsPerCycle is the base liquidity award per unit per elapsed cycle,
	// before the pair multiplier and the weekly cap.
	PointsPerCycle int64 `toml:"points_per_cycle"`

	// WeeklyLiquidityCap bounds liquidity points per account per ISO week.
	WeeklyLiquidityCap int64 `toml:"weekly_liquidity_cap"`

	// MaxDailySwapPoints bounds swap points per account per UTC day.
	MaxDailySwapPoints int64 `toml:"max_daily_swap_points"`

	// EndTime is the batch cutoff, Unix seconds UTC. Records after the cutoff
	// are ignored and settlement never accrues past it.
	EndTime int64 `toml:"end_time"`

	// PairMultipliers scales awards per pair. A record whose pair is absent
	// here is the fatal unknown-pair condition.
	PairMultipliers map[string]int64 `toml:"pair_multipliers"`

	// Strategy selects the accrual algorithm: unit_lifecycle or snapshot.
	Strategy string `toml:"strategy"`

	// AnchorWeekLabel / AnchorWeekIndex anchor the custom week index mapping.
	AnchorWeekLabel string `toml:"anchor_week_label"`
	AnchorWeekIndex int    `toml:"anchor_week_index"`

	// OnMalformed selects the malformed-record policy: fail (default) aborts
	// the batch, skip logs and drops the record.
	OnMalformed string `toml:"on_malformed"`
}

// Default returns a Config with the program defaults filled in. UnitSize,
// PointsPerCycle, caps, EndTime and PairMultipliers have no safe defaults and
// must be provided.
func Default() Config {
	return Config{
		CycleSeconds: weektime.SecondsPerWeek,
		Strategy:     StrategyUnitLifecycle,
		OnMalformed:  OnMalformedFail,
	}
}

// Load reads a TOML config file on top of the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration before any ledger mutation. All failures
// wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if !c.UnitSize.IsPositive() {
		return fmt.Errorf("%w: unit_size must be positive", ErrInvalidConfig)
	}
	if c.CycleSeconds <= 0 {
		return fmt.Errorf("%w: cycle_seconds must be positive", ErrInvalidConfig)
	}
	if c.PointsPerCycle <= 0 {
		return fmt.Errorf("%w: points_per_cycle must be positive", ErrInvalidConfig)
	}
	if c.WeeklyLiquidityCap <= 0 {
		return fmt.Errorf("%w: weekly_liquidity_cap must be positive", ErrInvalidConfig)
	}
	if c.MaxDailySwapPoints <= 0 {
		return fmt.Errorf("%w: max_daily_swap_points must be positive", ErrInvalidConfig)
	}
	if c.EndTime <= 0 {
		return fmt.Errorf("%w: end_time is required", ErrInvalidConfig)
	}
	if len(c.PairMultipliers) == 0 {
		return fmt.Errorf("%w: at least one pair multiplier is required", ErrInvalidConfig)
	}
	for pair, m := range c.PairMultipliers {
		if m <= 0 {
			return fmt.Errorf("%w: pair %q multiplier must be positive", ErrInvalidConfig, pair)
		}
	}
	switch c.Strategy {
	case StrategyUnitLifecycle, StrategySnapshot:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	switch c.OnMalformed {
	case OnMalformedFail, OnMalformedSkip:
	default:
		return fmt.Errorf("%w: unknown on_malformed policy %q", ErrInvalidConfig, c.OnMalformed)
	}
	if c.AnchorWeekLabel == "" {
		return fmt.Errorf("%w: anchor_week_label is required", ErrInvalidConfig)
	}
	if _, _, err := weektime.ParseWeekLabel(c.AnchorWeekLabel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Multiplier returns the configured multiplier for a pair and whether the
// pair is known.
func (c Config) Multiplier(pairID string) (int64, bool) {
	m, ok := c.PairMultipliers[pairID]
	return m, ok
}
