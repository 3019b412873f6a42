// Package leaderboard turns the finished points ledger into the three
// read-only output views: total leaderboard, latest-complete-week
// leaderboard, and per-account weekly history. Nothing here mutates ledger
// state.
package leaderboard

import (
	"fmt"
	"sort"

	"veswap-points/internal/domain"
	"veswap-points/internal/points"
	"veswap-points/internal/weektime"
)

// Tables is the full output of one build.
type Tables struct {
	// Total ranks every account with positive points, descending. Ties keep
	// first-credit order.
	Total []domain.LeaderboardEntry

	// WeeklyLabel is the most recent ISO week that fully elapsed before the
	// cutoff; Weekly ranks that week's points only.
	WeeklyLabel string
	Weekly      []domain.LeaderboardEntry

	// AccountLogs holds each account's weekly history, most recent week
	// first, with a chronological running total.
	AccountLogs []domain.AccountLog
}

// Builder assembles output tables from account states.
type Builder struct {
	indexer *weektime.Indexer
	endTime int64
}

// NewBuilder creates a builder for the given cutoff and week indexer.
func NewBuilder(indexer *weektime.Indexer, endTime int64) *Builder {
	return &Builder{indexer: indexer, endTime: endTime}
}

// Build produces all three tables. states must be in first-credit order; the
// stable descending sort uses that order as the tie-break.
func (b *Builder) Build(states []*points.State) (*Tables, error) {
	weeklyLabel := weektime.LatestCompleteWeek(b.endTime)

	tables := &Tables{
		WeeklyLabel: weeklyLabel,
		Total:       rank(states, func(s *points.State) int64 { return s.Total() }),
		Weekly: rank(states, func(s *points.State) int64 {
			if w := s.Breakdown(weeklyLabel); w != nil {
				return w.SwapPoints + w.LiquidityPoints
			}
			return 0
		}),
	}

	for _, s := range states {
		log, err := b.accountLog(s)
		if err != nil {
			return nil, err
		}
		if len(log.Rows) > 0 {
			tables.AccountLogs = append(tables.AccountLogs, log)
		}
	}
	return tables, nil
}

// rank filters accounts with positive scope points and sorts them descending.
// sort.SliceStable keeps insertion order for equal scores.
func rank(states []*points.State, score func(*points.State) int64) []domain.LeaderboardEntry {
	var entries []domain.LeaderboardEntry
	for _, s := range states {
		if pts := score(s); pts > 0 {
			entries = append(entries, domain.LeaderboardEntry{Account: s.Account, Points: pts})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// accountLog builds one account's history: breakdowns ordered by week index,
// cumulative total accumulated oldest-first, rows returned newest-first.
func (b *Builder) accountLog(s *points.State) (domain.AccountLog, error) {
	breakdowns := s.Breakdowns()
	rows := make([]domain.AccountWeekRow, 0, len(breakdowns))
	for _, w := range breakdowns {
		idx, err := b.indexer.IndexOf(w.WeekLabel)
		if err != nil {
			return domain.AccountLog{}, fmt.Errorf("account %s: %w", s.Account, err)
		}
		rows = append(rows, domain.AccountWeekRow{
			WeekIndex:       idx,
			WeekLabel:       w.WeekLabel,
			SwapPoints:      w.SwapPoints,
			LiquidityPoints: w.LiquidityPoints,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].WeekIndex < rows[j].WeekIndex })
	var running int64
	for i := range rows {
		running += rows[i].SwapPoints + rows[i].LiquidityPoints
		rows[i].CumulativeTotal = running
	}

	// Present most recent week first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return domain.AccountLog{Account: s.Account, Rows: rows}, nil
}
