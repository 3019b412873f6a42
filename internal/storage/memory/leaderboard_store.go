package memory

import (
	"context"
	"sync"

	"veswap-points/internal/domain"
	"veswap-points/internal/storage"
)

// PublishedLeaderboard is one published leaderboard snapshot.
type PublishedLeaderboard struct {
	RunAt     int64
	Scope     string
	WeekLabel string
	Entries   []domain.LeaderboardEntry
}

// PublishedAccountLog is one published account history snapshot.
type PublishedAccountLog struct {
	RunAt   int64
	Account string
	Rows    []domain.AccountWeekRow
}

// LeaderboardStore is an in-memory implementation of
// storage.LeaderboardStore, used by tests and fixture mode.
type LeaderboardStore struct {
	mu           sync.RWMutex
	leaderboards []PublishedLeaderboard
	accountLogs  []PublishedAccountLog
}

// NewLeaderboardStore creates a new in-memory leaderboard store.
func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{}
}

// InsertEntries publishes one leaderboard snapshot.
func (s *LeaderboardStore) InsertEntries(_ context.Context, runAt int64, scope, weekLabel string, entries []domain.LeaderboardEntry) error {
	if scope == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.LeaderboardEntry, len(entries))
	copy(copied, entries)
	s.leaderboards = append(s.leaderboards, PublishedLeaderboard{
		RunAt:     runAt,
		Scope:     scope,
		WeekLabel: weekLabel,
		Entries:   copied,
	})
	return nil
}

// InsertAccountRows publishes one account history snapshot.
func (s *LeaderboardStore) InsertAccountRows(_ context.Context, runAt int64, account string, rows []domain.AccountWeekRow) error {
	if account == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]domain.AccountWeekRow, len(rows))
	copy(copied, rows)
	s.accountLogs = append(s.accountLogs, PublishedAccountLog{
		RunAt:   runAt,
		Account: account,
		Rows:    copied,
	})
	return nil
}

// Leaderboards returns all published leaderboard snapshots.
func (s *LeaderboardStore) Leaderboards() []PublishedLeaderboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PublishedLeaderboard, len(s.leaderboards))
	copy(out, s.leaderboards)
	return out
}

// AccountLogs returns all published account history snapshots.
func (s *LeaderboardStore) AccountLogs() []PublishedAccountLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PublishedAccountLog, len(s.accountLogs))
	copy(out, s.accountLogs)
	return out
}

var _ storage.LeaderboardStore = (*LeaderboardStore)(nil)
