// Package engine orchestrates one batch run: partition and order the record
// stream, drive the selected settlement strategy and the swap aggregator,
// book awards into the points ledger, and build the output tables. A run is
// a pure, single-threaded, deterministic recomputation; it either completes
// with consistent tables or fails before any output exists.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/leaderboard"
	"veswap-points/internal/observability"
	"veswap-points/internal/points"
	"veswap-points/internal/settlement"
	"veswap-points/internal/swapvolume"
	"veswap-points/internal/weektime"
)

// ErrEndTimeBeforeData is returned when the configured cutoff precedes every
// record in the batch; nothing could ever accrue and the configuration is
// almost certainly wrong.
var ErrEndTimeBeforeData = errors.New("end time precedes all records")

// ErrUnknownPair is returned for a record whose pair has no configured
// multiplier. The engine cannot decide the reference asset for an unknown
// pair, so the batch aborts rather than coercing to zero.
var ErrUnknownPair = errors.New("unknown pair")

// Result is the complete output of one run.
type Result struct {
	Tables          *leaderboard.Tables
	States          []*points.State
	LiquidityAwards []domain.LiquidityAward
	SwapAwards      []domain.SwapAward
	Summary         Summary
}

// Summary carries run bookkeeping for the report and logs.
type Summary struct {
	Strategy         string
	Records          int
	LiquidityRecords int
	SwapRecords      int
	SkippedAfterEnd  int   // records past the cutoff, ignored
	UnitsCreated     int   // unit-lifecycle strategy only
	UnitsDeactivated int   // unit-lifecycle strategy only
	ClampedRemovals  int   // removals clamped at zero balance
	LiquidityPoints  int64 // total credited, post-cap
	SwapPoints       int64
	CappedPoints     int64 // liquidity points lost to the weekly cap
	Duration         time.Duration
}

// Engine runs batches for one configuration.
type Engine struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *observability.Metrics
}

// New creates an engine. The configuration is validated immediately; a bad
// configuration is fatal before any ledger mutation.
func New(cfg config.Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}, nil
}

// WithMetrics attaches Prometheus metrics to the engine.
func (e *Engine) WithMetrics(m *observability.Metrics) *Engine {
	e.metrics = m
	return e
}

// Run executes one full recomputation over records. The input slice is not
// mutated; ordering inside the run is always (Timestamp, Seq) regardless of
// input order.
func (e *Engine) Run(records []domain.TransactionRecord) (*Result, error) {
	started := time.Now()

	liquidity, swaps, skipped, err := e.partition(records)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(liquidity) == 0 && len(swaps) == 0 {
		return nil, fmt.Errorf("%w: end_time=%d", ErrEndTimeBeforeData, e.cfg.EndTime)
	}

	strategy := settlement.ForConfig(e.cfg)
	liquidityAwards, err := strategy.Settle(liquidity)
	if err != nil {
		return nil, fmt.Errorf("settle liquidity: %w", err)
	}

	var unitsCreated, unitsDeactivated, clampedRemovals int
	if ul, ok := strategy.(*settlement.UnitLifecycle); ok {
		for _, unit := range ul.Ledger().Units() {
			unitsCreated++
			if !unit.Active {
				unitsDeactivated++
			}
		}
		clampedRemovals = ul.ClampedRemovals()
	}

	aggregator := swapvolume.New(e.cfg.UnitSize, e.cfg.MaxDailySwapPoints)
	for _, rec := range swaps {
		aggregator.Ingest(rec.Account, rec.Timestamp, rec.Amount)
	}
	swapAwards := aggregator.Awards()

	book := points.NewLedger(e.cfg.WeeklyLiquidityCap)
	summary := Summary{
		Strategy:         strategy.Name(),
		Records:          len(records),
		LiquidityRecords: len(liquidity),
		SwapRecords:      len(swaps),
		SkippedAfterEnd:  skipped,
		UnitsCreated:     unitsCreated,
		UnitsDeactivated: unitsDeactivated,
		ClampedRemovals:  clampedRemovals,
	}
	for _, award := range liquidityAwards {
		credited := book.CreditLiquidity(award.Account, award.AwardTime, award.Points)
		summary.LiquidityPoints += credited
		summary.CappedPoints += award.Points - credited
	}
	for _, award := range swapAwards {
		book.CreditSwap(award.Account, award.DayStart, award.Points)
		summary.SwapPoints += award.Points
	}

	indexer, err := weektime.NewIndexer(e.cfg.AnchorWeekLabel, e.cfg.AnchorWeekIndex)
	if err != nil {
		return nil, err
	}
	tables, err := leaderboard.NewBuilder(indexer, e.cfg.EndTime).Build(book.Accounts())
	if err != nil {
		return nil, fmt.Errorf("build leaderboards: %w", err)
	}

	summary.Duration = time.Since(started)
	e.observe(summary)
	e.log.Info("batch run complete",
		zap.String("strategy", summary.Strategy),
		zap.Int("records", summary.Records),
		zap.Int64("liquidity_points", summary.LiquidityPoints),
		zap.Int64("swap_points", summary.SwapPoints),
		zap.Int64("capped_points", summary.CappedPoints),
		zap.Duration("duration", summary.Duration),
	)

	return &Result{
		Tables:          tables,
		States:          book.Accounts(),
		LiquidityAwards: liquidityAwards,
		SwapAwards:      swapAwards,
		Summary:         summary,
	}, nil
}

// partition splits records by kind, drops everything past the cutoff, and
// stable-sorts each stream by (Timestamp, Seq). Unknown kinds and pairs are
// fatal here even though ingestion already screens them; the engine never
// trusts its input blindly.
func (e *Engine) partition(records []domain.TransactionRecord) (liquidity, swaps []*domain.TransactionRecord, skipped int, err error) {
	for i := range records {
		rec := &records[i]
		if _, ok := e.cfg.Multiplier(rec.PairID); !ok {
			return nil, nil, 0, fmt.Errorf("record seq %d: %w: %q", rec.Seq, ErrUnknownPair, rec.PairID)
		}
		if rec.Timestamp > e.cfg.EndTime {
			skipped++
			continue
		}
		switch rec.Kind {
		case domain.KindAddLiquidity, domain.KindRemoveLiquidity:
			liquidity = append(liquidity, rec)
		case domain.KindSwap:
			swaps = append(swaps, rec)
		default:
			return nil, nil, 0, fmt.Errorf("record seq %d: unknown kind %q", rec.Seq, rec.Kind)
		}
	}
	sortRecords(liquidity)
	sortRecords(swaps)
	return liquidity, swaps, skipped, nil
}

// sortRecords orders by (Timestamp ASC, Seq ASC). Seq is the original
// ingestion position, so timestamp ties replay in a fixed order across runs.
func sortRecords(recs []*domain.TransactionRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Timestamp != recs[j].Timestamp {
			return recs[i].Timestamp < recs[j].Timestamp
		}
		return recs[i].Seq < recs[j].Seq
	})
}

func (e *Engine) observe(s Summary) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordsProcessed.Add(float64(s.Records))
	e.metrics.UnitsCreated.Add(float64(s.UnitsCreated))
	e.metrics.UnitsDeactivated.Add(float64(s.UnitsDeactivated))
	e.metrics.LiquidityPointsAwarded.Add(float64(s.LiquidityPoints))
	e.metrics.SwapPointsAwarded.Add(float64(s.SwapPoints))
	e.metrics.PointsCapped.Add(float64(s.CappedPoints))
	e.metrics.RunDuration.Observe(s.Duration.Seconds())
	e.metrics.RunsTotal.Inc()
}
