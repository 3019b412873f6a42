package memory

import (
	"context"
	"sync"

	"veswap-points/internal/storage"
)

// CursorStore is an in-memory implementation of storage.CursorStore.
type CursorStore struct {
	mu      sync.RWMutex
	cursors map[string]int64
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{cursors: make(map[string]int64)}
}

// Get returns the next unprocessed index for a source, or ErrNotFound.
func (s *CursorStore) Get(_ context.Context, source string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.cursors[source]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return idx, nil
}

// Set saves the next unprocessed index for a source.
func (s *CursorStore) Set(_ context.Context, source string, index int64) error {
	if source == "" || index < 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[source] = index
	return nil
}

var _ storage.CursorStore = (*CursorStore)(nil)
