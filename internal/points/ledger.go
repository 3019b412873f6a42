// Package points books liquidity and swap awards into per-account state.
// This is the single place where the weekly liquidity cap is enforced, so
// both settlement strategies and the swap aggregator share one cap policy.
package points

import (
	"veswap-points/internal/domain"
	"veswap-points/internal/weektime"
)

// State is the accumulated points position of one account.
type State struct {
	Account              string
	TotalLiquidityPoints int64
	TotalSwapPoints      int64

	// WeeklyLiquidityUsed tracks cap consumption per ISO week label.
	// Invariant: every value is <= the ledger's weekly cap.
	WeeklyLiquidityUsed map[string]int64

	breakdowns map[string]*domain.WeeklyBreakdown
	weekOrder  []string // week labels in first-credit order
}

// Total returns liquidity + swap points.
func (s *State) Total() int64 {
	return s.TotalLiquidityPoints + s.TotalSwapPoints
}

// Breakdowns returns the account's weekly breakdowns in first-credit order.
// The leaderboard builder re-orders them chronologically by week index.
func (s *State) Breakdowns() []*domain.WeeklyBreakdown {
	out := make([]*domain.WeeklyBreakdown, 0, len(s.weekOrder))
	for _, label := range s.weekOrder {
		out = append(out, s.breakdowns[label])
	}
	return out
}

// Breakdown returns the breakdown for one week label, or nil.
func (s *State) Breakdown(label string) *domain.WeeklyBreakdown {
	return s.breakdowns[label]
}

func (s *State) week(label string) *domain.WeeklyBreakdown {
	b, ok := s.breakdowns[label]
	if !ok {
		b = &domain.WeeklyBreakdown{WeekLabel: label}
		s.breakdowns[label] = b
		s.weekOrder = append(s.weekOrder, label)
	}
	return b
}

// Ledger holds the points state of every account seen during a run.
type Ledger struct {
	weeklyCap int64
	accounts  map[string]*State
	order     []string // accounts in first-credit order, leaderboard tie-break
}

// NewLedger creates an empty points ledger with the given weekly liquidity
// cap.
func NewLedger(weeklyCap int64) *Ledger {
	return &Ledger{
		weeklyCap: weeklyCap,
		accounts:  make(map[string]*State),
	}
}

func (l *Ledger) state(account string) *State {
	s, ok := l.accounts[account]
	if !ok {
		s = &State{
			Account:             account,
			WeeklyLiquidityUsed: make(map[string]int64),
			breakdowns:          make(map[string]*domain.WeeklyBreakdown),
		}
		l.accounts[account] = s
		l.order = append(l.order, account)
	}
	return s
}

// CreditLiquidity books a liquidity award into the week containing
// awardTime, truncated to whatever headroom the weekly cap leaves. Returns
// the points actually credited, possibly zero. Cap saturation is the
// designed throttle, not an error.
func (l *Ledger) CreditLiquidity(account string, awardTime, pts int64) int64 {
	s := l.state(account)
	label := weektime.WeekLabelOf(awardTime)

	headroom := l.weeklyCap - s.WeeklyLiquidityUsed[label]
	if headroom < 0 {
		headroom = 0
	}
	actual := pts
	if actual > headroom {
		actual = headroom
	}

	s.TotalLiquidityPoints += actual
	s.WeeklyLiquidityUsed[label] += actual
	s.week(label).LiquidityPoints += actual
	return actual
}

// CreditSwap books a daily swap award into the week containing dayStart.
// Swap points have no weekly cap.
func (l *Ledger) CreditSwap(account string, dayStart, pts int64) {
	s := l.state(account)
	label := weektime.WeekLabelOf(dayStart)
	s.TotalSwapPoints += pts
	s.week(label).SwapPoints += pts
}

// Touch registers an account without crediting anything, preserving
// first-seen ordering for accounts that end the run with zero points.
func (l *Ledger) Touch(account string) {
	l.state(account)
}

// Accounts returns every account state in first-credit order.
func (l *Ledger) Accounts() []*State {
	out := make([]*State, 0, len(l.order))
	for _, acct := range l.order {
		out = append(out, l.accounts[acct])
	}
	return out
}

// Account returns one account's state, or nil if never credited.
func (l *Ledger) Account(account string) *State {
	return l.accounts[account]
}
