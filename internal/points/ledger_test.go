package points

import (
	"testing"

	"veswap-points/internal/weektime"
)

const (
	week1 = int64(1704067200) // Monday 2024-01-01, 2024-W01
	week2 = week1 + weektime.SecondsPerWeek
)

func TestCreditLiquidity_UnderCap(t *testing.T) {
	l := NewLedger(1000)

	if got := l.CreditLiquidity("0xaaa", week1, 300); got != 300 {
		t.Fatalf("credited %d, want 300", got)
	}
	s := l.Account("0xaaa")
	if s.TotalLiquidityPoints != 300 {
		t.Errorf("total = %d", s.TotalLiquidityPoints)
	}
	if s.WeeklyLiquidityUsed["2024-W01"] != 300 {
		t.Errorf("weekly used = %d", s.WeeklyLiquidityUsed["2024-W01"])
	}
}

func TestCreditLiquidity_TruncatesAtCap(t *testing.T) {
	l := NewLedger(1000)
	l.CreditLiquidity("0xaaa", week1, 800)

	if got := l.CreditLiquidity("0xaaa", week1, 500); got != 200 {
		t.Fatalf("credited %d, want 200", got)
	}
	if got := l.CreditLiquidity("0xaaa", week1, 50); got != 0 {
		t.Fatalf("saturated week must credit 0, got %d", got)
	}
	s := l.Account("0xaaa")
	if s.TotalLiquidityPoints != 1000 {
		t.Errorf("total = %d, want exactly the cap", s.TotalLiquidityPoints)
	}
}

func TestCreditLiquidity_CapResetsPerWeek(t *testing.T) {
	l := NewLedger(1000)
	l.CreditLiquidity("0xaaa", week1, 1000)

	if got := l.CreditLiquidity("0xaaa", week2, 1000); got != 1000 {
		t.Fatalf("new week must have fresh headroom, credited %d", got)
	}
	s := l.Account("0xaaa")
	if s.TotalLiquidityPoints != 2000 {
		t.Errorf("total = %d", s.TotalLiquidityPoints)
	}
	for _, label := range []string{"2024-W01", "2024-W02"} {
		if used := s.WeeklyLiquidityUsed[label]; used != 1000 {
			t.Errorf("week %s used = %d", label, used)
		}
	}
}

func TestCreditLiquidity_CapIsPerAccount(t *testing.T) {
	l := NewLedger(1000)
	l.CreditLiquidity("0xaaa", week1, 1000)

	if got := l.CreditLiquidity("0xbbb", week1, 700); got != 700 {
		t.Fatalf("other account must not share the cap, credited %d", got)
	}
}

func TestCreditSwap_NoWeeklyCap(t *testing.T) {
	l := NewLedger(10)

	l.CreditSwap("0xaaa", week1, 500)
	l.CreditSwap("0xaaa", week1+86400, 500)

	s := l.Account("0xaaa")
	if s.TotalSwapPoints != 1000 {
		t.Errorf("swap total = %d, want 1000", s.TotalSwapPoints)
	}
	if b := s.Breakdown("2024-W01"); b == nil || b.SwapPoints != 1000 {
		t.Errorf("week breakdown = %+v", b)
	}
}

func TestTotalCombinesBothKinds(t *testing.T) {
	l := NewLedger(1000)
	l.CreditLiquidity("0xaaa", week1, 100)
	l.CreditSwap("0xaaa", week1, 40)

	if got := l.Account("0xaaa").Total(); got != 140 {
		t.Errorf("total = %d, want 140", got)
	}
}

func TestBreakdownsFollowFirstCreditOrder(t *testing.T) {
	l := NewLedger(1000)
	l.CreditLiquidity("0xaaa", week2, 10)
	l.CreditLiquidity("0xaaa", week1, 10)

	bd := l.Account("0xaaa").Breakdowns()
	if len(bd) != 2 {
		t.Fatalf("expected 2 breakdowns, got %d", len(bd))
	}
	if bd[0].WeekLabel != "2024-W02" || bd[1].WeekLabel != "2024-W01" {
		t.Errorf("breakdown order: %s, %s", bd[0].WeekLabel, bd[1].WeekLabel)
	}
}

func TestAccountsFirstCreditOrder(t *testing.T) {
	l := NewLedger(1000)
	l.CreditSwap("0xccc", week1, 1)
	l.Touch("0xaaa")
	l.CreditLiquidity("0xbbb", week1, 1)

	accts := l.Accounts()
	if len(accts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accts))
	}
	want := []string{"0xccc", "0xaaa", "0xbbb"}
	for i, s := range accts {
		if s.Account != want[i] {
			t.Errorf("account %d = %s, want %s", i, s.Account, want[i])
		}
	}
}

func TestAccountUnknownIsNil(t *testing.T) {
	l := NewLedger(1000)
	if l.Account("0xnobody") != nil {
		t.Error("unknown account must be nil")
	}
}
