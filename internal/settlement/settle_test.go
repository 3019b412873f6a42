package settlement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
	"veswap-points/internal/weektime"
)

const (
	week0 = int64(1704067200) // Monday 2024-01-01 00:00 UTC, start of 2024-W01
	week  = weektime.SecondsPerWeek
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig(endTime int64) config.Config {
	cfg := config.Default()
	cfg.UnitSize = dec("9999")
	cfg.PointsPerCycle = 50
	cfg.WeeklyLiquidityCap = 1000
	cfg.MaxDailySwapPoints = 200
	cfg.EndTime = endTime
	cfg.PairMultipliers = map[string]int64{"VVET/B3TR": 1, "VVET/VTHO": 3}
	cfg.AnchorWeekLabel = "2024-W01"
	cfg.AnchorWeekIndex = 1
	return cfg
}

func unit(id int64, owner, pairID string, start int64) *domain.LiquidityUnit {
	return &domain.LiquidityUnit{UnitID: id, Owner: owner, PairID: pairID, StartTime: start, Active: true}
}

func TestSettle_FullCyclesOnly(t *testing.T) {
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "VVET/B3TR", week0)}
	mult := map[string]int64{"VVET/B3TR": 1}

	// Two and a half cycles elapsed: only the two full ones pay.
	awards, err := Settle(units, week0+2*week+week/2, week, 50, mult)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 2 {
		t.Fatalf("expected 2 awards, got %d", len(awards))
	}
	for i, a := range awards {
		if a.Cycle != i+1 {
			t.Errorf("award %d: cycle %d", i, a.Cycle)
		}
		if a.Points != 50 {
			t.Errorf("award %d: points %d", i, a.Points)
		}
		if want := week0 + int64(i+1)*week; a.AwardTime != want {
			t.Errorf("award %d: time %d, want %d", i, a.AwardTime, want)
		}
	}
	if units[0].ClaimedCycles != 2 {
		t.Errorf("claimed cycles = %d, want 2", units[0].ClaimedCycles)
	}
}

func TestSettle_NoPartialCycle(t *testing.T) {
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "VVET/B3TR", week0)}

	awards, err := Settle(units, week0+week-1, week, 50, map[string]int64{"VVET/B3TR": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 0 {
		t.Fatalf("one second short of a cycle must award nothing, got %d awards", len(awards))
	}
}

func TestSettle_InactiveUnitsSkipped(t *testing.T) {
	u := unit(1, "0xaaa", "VVET/B3TR", week0)
	u.Active = false

	awards, err := Settle([]*domain.LiquidityUnit{u}, week0+5*week, week, 50, map[string]int64{"VVET/B3TR": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 0 {
		t.Fatalf("inactive unit must earn nothing, got %d awards", len(awards))
	}
	if u.ClaimedCycles != 0 {
		t.Errorf("inactive unit claimed %d cycles", u.ClaimedCycles)
	}
}

func TestSettle_RepeatedCallsNeverReaward(t *testing.T) {
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "VVET/B3TR", week0)}
	mult := map[string]int64{"VVET/B3TR": 1}

	first, err := Settle(units, week0+2*week, week, 50, mult)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 {
		t.Fatalf("first pass: %d awards", len(first))
	}

	second, err := Settle(units, week0+3*week, week, 50, mult)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 {
		t.Fatalf("second pass must only award the new cycle, got %d", len(second))
	}
	if second[0].Cycle != 3 {
		t.Errorf("second pass cycle = %d, want 3", second[0].Cycle)
	}
}

func TestSettle_PairMultiplier(t *testing.T) {
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "VVET/VTHO", week0)}

	awards, err := Settle(units, week0+week, week, 50, map[string]int64{"VVET/VTHO": 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 || awards[0].Points != 150 {
		t.Fatalf("expected one 150-point award, got %+v", awards)
	}
}

func TestSettle_UnknownPair(t *testing.T) {
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "WBTC/USDC", week0)}

	_, err := Settle(units, week0+week, week, 50, map[string]int64{"VVET/B3TR": 1})
	if !errors.Is(err, ErrUnknownPair) {
		t.Fatalf("expected ErrUnknownPair, got %v", err)
	}
}

func TestAdjustAwardTime(t *testing.T) {
	endOnBoundary := week0 + week // Monday 00:00, opens 2024-W02

	if got := adjustAwardTime(endOnBoundary, endOnBoundary); got != endOnBoundary-1 {
		t.Errorf("award on a week-boundary cutoff must shift back: got %d", got)
	}
	// Cutoff mid-week: no shift even when the award hits it exactly.
	endMidWeek := week0 + week + 3600
	if got := adjustAwardTime(endMidWeek, endMidWeek); got != endMidWeek {
		t.Errorf("mid-week cutoff must not shift: got %d", got)
	}
	// Award before the cutoff is never touched.
	if got := adjustAwardTime(week0+week, endMidWeek); got != week0+week {
		t.Errorf("non-cutoff award must not shift: got %d", got)
	}
}

func TestSettle_BoundaryAwardLandsInEarnedWeek(t *testing.T) {
	endOnBoundary := week0 + week
	units := []*domain.LiquidityUnit{unit(1, "0xaaa", "VVET/B3TR", week0)}

	awards, err := Settle(units, endOnBoundary, week, 50, map[string]int64{"VVET/B3TR": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 {
		t.Fatalf("expected 1 award, got %d", len(awards))
	}
	if got := weektime.WeekLabelOf(awards[0].AwardTime); got != "2024-W01" {
		t.Errorf("award must stay in the week that earned it, got %s", got)
	}
}

func TestForConfig(t *testing.T) {
	cfg := testConfig(week0 + week)
	if s := ForConfig(cfg); s.Name() != config.StrategyUnitLifecycle {
		t.Errorf("default strategy = %s", s.Name())
	}
	cfg.Strategy = config.StrategySnapshot
	if s := ForConfig(cfg); s.Name() != config.StrategySnapshot {
		t.Errorf("snapshot strategy = %s", s.Name())
	}
}

func TestUnitLifecycle_Settle(t *testing.T) {
	cfg := testConfig(week0 + 2*week)
	s := NewUnitLifecycle(cfg)

	records := []*domain.TransactionRecord{
		{Kind: domain.KindAddLiquidity, Timestamp: week0, Account: "0xaaa", Amount: dec("19998"), PairID: "VVET/B3TR", Seq: 0},
		{Kind: domain.KindRemoveLiquidity, Timestamp: week0 + week + 10, Account: "0xaaa", Amount: dec("9999"), PairID: "VVET/B3TR", Seq: 1},
		// Past the cutoff: ignored.
		{Kind: domain.KindAddLiquidity, Timestamp: week0 + 3*week, Account: "0xaaa", Amount: dec("9999"), PairID: "VVET/B3TR", Seq: 2},
	}

	awards, err := s.Settle(records)
	if err != nil {
		t.Fatal(err)
	}
	// Unit 1 is deactivated after one full cycle and never settles; unit 2
	// survives both cycles. Deactivation happens before settlement, so only
	// the surviving unit pays: 2 cycles * 50.
	total := int64(0)
	for _, a := range awards {
		total += a.Points
		if a.UnitID != 2 {
			t.Errorf("award for deactivated unit %d", a.UnitID)
		}
	}
	if total != 100 {
		t.Errorf("total points = %d, want 100", total)
	}
	if s.ClampedRemovals() != 0 {
		t.Errorf("unexpected clamps: %d", s.ClampedRemovals())
	}
}

func TestUnitLifecycle_CountsClamps(t *testing.T) {
	cfg := testConfig(week0 + week)
	s := NewUnitLifecycle(cfg)

	records := []*domain.TransactionRecord{
		{Kind: domain.KindRemoveLiquidity, Timestamp: week0, Account: "0xaaa", Amount: dec("5000"), PairID: "VVET/B3TR", Seq: 0},
	}
	if _, err := s.Settle(records); err != nil {
		t.Fatal(err)
	}
	if s.ClampedRemovals() != 1 {
		t.Errorf("clamped removals = %d, want 1", s.ClampedRemovals())
	}
}

func TestSnapshot_Settle(t *testing.T) {
	cfg := testConfig(week0 + 2*week)
	cfg.Strategy = config.StrategySnapshot
	s := NewSnapshot(cfg)

	records := []*domain.TransactionRecord{
		{Kind: domain.KindAddLiquidity, Timestamp: week0, Account: "0xaaa", Amount: dec("19998"), PairID: "VVET/B3TR", Seq: 0},
		{Kind: domain.KindRemoveLiquidity, Timestamp: week0 + week/2, Account: "0xaaa", Amount: dec("9999"), PairID: "VVET/B3TR", Seq: 1},
	}

	awards, err := s.Settle(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 2 {
		t.Fatalf("expected 2 awards, got %d", len(awards))
	}
	// Cycle 1 snapshots the balance at the anchor itself: 19998 -> 2 slots.
	if awards[0].Cycle != 1 || awards[0].Points != 100 {
		t.Errorf("cycle 1: %+v", awards[0])
	}
	// Cycle 2 snapshots after the removal: 9999 -> 1 slot.
	if awards[1].Cycle != 2 || awards[1].Points != 50 {
		t.Errorf("cycle 2: %+v", awards[1])
	}
	// The final boundary coincides with the cutoff on a week boundary.
	if awards[1].AwardTime != cfg.EndTime-1 {
		t.Errorf("cutoff award time = %d, want %d", awards[1].AwardTime, cfg.EndTime-1)
	}
}

func TestSnapshot_ZeroBalanceEarnsNothing(t *testing.T) {
	cfg := testConfig(week0 + week)
	cfg.Strategy = config.StrategySnapshot
	s := NewSnapshot(cfg)

	records := []*domain.TransactionRecord{
		{Kind: domain.KindAddLiquidity, Timestamp: week0, Account: "0xaaa", Amount: dec("9999"), PairID: "VVET/B3TR", Seq: 0},
		{Kind: domain.KindRemoveLiquidity, Timestamp: week0, Account: "0xaaa", Amount: dec("20000"), PairID: "VVET/B3TR", Seq: 1},
	}

	awards, err := s.Settle(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 0 {
		t.Fatalf("clamped-to-zero balance must earn nothing, got %d awards", len(awards))
	}
}
