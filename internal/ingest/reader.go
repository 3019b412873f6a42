// Package ingest reads transaction records from JSON or CSV sources and
// normalizes them for the engine: kinds mapped to canonical values, accounts
// lowercased, amounts parsed as arbitrary-precision decimals, pairs checked
// against the configured multiplier table.
//
// Malformed records and unknown pairs are fatal for the whole batch by
// default; financial data is never dropped silently. The skip policy trades
// that guarantee for progress and logs every record it drops.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"veswap-points/internal/config"
	"veswap-points/internal/domain"
)

// ErrMalformedRecord is returned (wrapped) for a record missing required
// fields or carrying an unparsable timestamp or amount.
var ErrMalformedRecord = errors.New("malformed record")

// ErrUnknownPair is returned (wrapped) for a record naming a pair absent
// from the configured multiplier table.
var ErrUnknownPair = errors.New("unknown pair")

// kindAliases maps source spellings to canonical record kinds.
var kindAliases = map[string]string{
	"swap":             domain.KindSwap,
	"add_liquidity":    domain.KindAddLiquidity,
	"remove_liquidity": domain.KindRemoveLiquidity,
}

// Reader normalizes raw records according to one run's configuration.
type Reader struct {
	cfg     config.Config
	log     *zap.Logger
	skipped int
}

// NewReader creates a reader. A nil logger disables logging.
func NewReader(cfg config.Config, log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reader{cfg: cfg, log: log}
}

// Skipped reports how many records were dropped under the skip policy.
func (r *Reader) Skipped() int { return r.skipped }

// rawRecord is the wire shape shared by the JSON and CSV readers before
// normalization.
type rawRecord struct {
	Kind      string
	Timestamp string
	Account   string
	Amount    string
	PairID    string
}

// normalize validates and converts one raw record. seq is the record's
// position in the source stream, kept as the tie-break ordering key.
func (r *Reader) normalize(raw rawRecord, seq int64) (domain.TransactionRecord, error) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(raw.Kind))]
	if !ok {
		return domain.TransactionRecord{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedRecord, raw.Kind)
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(raw.Timestamp), 10, 64)
	if err != nil || ts <= 0 {
		return domain.TransactionRecord{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedRecord, raw.Timestamp)
	}

	account := strings.ToLower(strings.TrimSpace(raw.Account))
	if account == "" {
		return domain.TransactionRecord{}, fmt.Errorf("%w: missing account", ErrMalformedRecord)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("%w: bad amount %q", ErrMalformedRecord, raw.Amount)
	}
	if amount.IsNegative() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: negative amount %q", ErrMalformedRecord, raw.Amount)
	}

	pairID := strings.TrimSpace(raw.PairID)
	if pairID == "" {
		return domain.TransactionRecord{}, fmt.Errorf("%w: missing pair", ErrMalformedRecord)
	}
	if _, known := r.cfg.Multiplier(pairID); !known {
		return domain.TransactionRecord{}, fmt.Errorf("%w: %q", ErrUnknownPair, pairID)
	}

	return domain.TransactionRecord{
		Kind:      kind,
		Timestamp: ts,
		Account:   account,
		Amount:    amount,
		PairID:    pairID,
		Seq:       seq,
	}, nil
}

// admit applies the malformed-record policy to a normalization failure.
// Under the fail policy the error propagates and aborts the batch; under the
// skip policy the record is logged, counted, and dropped.
func (r *Reader) admit(seq int64, err error) error {
	if r.cfg.OnMalformed == config.OnMalformedSkip {
		r.skipped++
		r.log.Warn("skipping record", zap.Int64("seq", seq), zap.Error(err))
		return nil
	}
	return fmt.Errorf("record %d: %w", seq, err)
}
