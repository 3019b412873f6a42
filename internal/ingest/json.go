package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"veswap-points/internal/domain"
)

// jsonRecord is one element of the JSON input array. Amount and Timestamp
// accept both JSON numbers and strings; 18-decimal amounts must round-trip
// without precision loss, so they are never parsed as float64.
type jsonRecord struct {
	Kind      string      `json:"kind"`
	Timestamp json.Number `json:"timestamp"`
	Account   string      `json:"account"`
	Amount    json.Number `json:"amount"`
	PairID    string      `json:"pair"`
}

// ReadJSON decodes a JSON array of records and normalizes each element.
// Sequence numbers follow array order.
func (r *Reader) ReadJSON(src io.Reader) ([]domain.TransactionRecord, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()

	var raws []jsonRecord
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode json records: %w", err)
	}

	records := make([]domain.TransactionRecord, 0, len(raws))
	for i, raw := range raws {
		seq := int64(i)
		rec, err := r.normalize(rawRecord{
			Kind:      raw.Kind,
			Timestamp: raw.Timestamp.String(),
			Account:   raw.Account,
			Amount:    raw.Amount.String(),
			PairID:    raw.PairID,
		}, seq)
		if err != nil {
			if err := r.admit(seq, err); err != nil {
				return nil, err
			}
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
