package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"veswap-points/internal/domain"
)

// csvColumns is the required header of a CSV record source, in order.
var csvColumns = []string{"kind", "timestamp", "account", "amount", "pair"}

// ReadCSV decodes a CSV record source. The first row must be the header
// kind,timestamp,account,amount,pair. Sequence numbers follow row order.
func (r *Reader) ReadCSV(src io.Reader) ([]domain.TransactionRecord, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []domain.TransactionRecord
	var seq int64
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", seq+1, err)
		}

		rec, err := r.normalize(rawRecord{
			Kind:      row[0],
			Timestamp: row[1],
			Account:   row[2],
			Amount:    row[3],
			PairID:    row[4],
		}, seq)
		if err != nil {
			if err := r.admit(seq, err); err != nil {
				return nil, err
			}
			seq++
			continue
		}
		records = append(records, rec)
		seq++
	}
	return records, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("%w: csv header has %d columns, want %d", ErrMalformedRecord, len(header), len(csvColumns))
	}
	for i, want := range csvColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("%w: csv column %d is %q, want %q", ErrMalformedRecord, i, header[i], want)
		}
	}
	return nil
}
