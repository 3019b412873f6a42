package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"veswap-points/internal/domain"
	"veswap-points/internal/storage"
)

// RecordStore implements storage.RecordStore using PostgreSQL. Amounts are
// stored as NUMERIC and moved over the wire as text so 18-decimal values
// never pass through float64.
type RecordStore struct {
	pool *Pool
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(pool *Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RecordStore = (*RecordStore)(nil)

// InsertBulk appends records atomically. Fails entire batch on any duplicate
// seq.
func (s *RecordStore) InsertBulk(ctx context.Context, records []domain.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transaction_records (
			seq, kind, timestamp, account, amount, pair_id
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, rec := range records {
		if rec.Account == "" || !domain.ValidKind(rec.Kind) {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			rec.Seq,
			rec.Kind,
			rec.Timestamp,
			rec.Account,
			rec.Amount.String(),
			rec.PairID,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves every record ordered by (timestamp ASC, seq ASC).
func (s *RecordStore) GetAll(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT seq, kind, timestamp, account, amount::text, pair_id
		FROM transaction_records
		ORDER BY timestamp ASC, seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		var amount string
		if err := rows.Scan(&rec.Seq, &rec.Kind, &rec.Timestamp, &rec.Account, &amount, &rec.PairID); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transaction_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
