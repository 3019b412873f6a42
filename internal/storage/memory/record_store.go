package memory

import (
	"context"
	"sort"
	"sync"

	"veswap-points/internal/domain"
	"veswap-points/internal/storage"
)

// RecordStore is an in-memory implementation of storage.RecordStore.
type RecordStore struct {
	mu   sync.RWMutex
	data map[int64]domain.TransactionRecord // keyed by seq
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{data: make(map[int64]domain.TransactionRecord)}
}

// InsertBulk appends records atomically. Fails entire batch on any duplicate
// seq, existing or intra-batch.
func (s *RecordStore) InsertBulk(_ context.Context, records []domain.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[int64]struct{}, len(records))
	for _, rec := range records {
		if rec.Account == "" || !domain.ValidKind(rec.Kind) {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[rec.Seq]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batch[rec.Seq]; exists {
			return storage.ErrDuplicateKey
		}
		batch[rec.Seq] = struct{}{}
	}

	for _, rec := range records {
		s.data[rec.Seq] = rec
	}
	return nil
}

// GetAll retrieves every record ordered by (timestamp ASC, seq ASC).
func (s *RecordStore) GetAll(_ context.Context) ([]domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.TransactionRecord, 0, len(s.data))
	for _, rec := range s.data {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.data)), nil
}

var _ storage.RecordStore = (*RecordStore)(nil)
