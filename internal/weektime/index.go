package weektime

import "fmt"

// Indexer maps ISO week labels to a small sequential integer index, anchored
// at one reference (label, index) pair. The mapping is linear in whole weeks,
// so historical ordering survives calendar-year rollovers where the ISO week
// number resets.
type Indexer struct {
	anchorStart int64 // Monday 00:00 UTC of the anchor week
	anchorIndex int   // index assigned to the anchor week
}

// NewIndexer creates an Indexer anchored at anchorLabel = anchorIndex.
func NewIndexer(anchorLabel string, anchorIndex int) (*Indexer, error) {
	start, err := WeekStartOfLabel(anchorLabel)
	if err != nil {
		return nil, fmt.Errorf("indexer anchor: %w", err)
	}
	return &Indexer{anchorStart: start, anchorIndex: anchorIndex}, nil
}

// IndexOf returns the custom week index for an ISO week label. Labels before
// the anchor map to smaller (possibly negative) indices.
func (ix *Indexer) IndexOf(label string) (int, error) {
	start, err := WeekStartOfLabel(label)
	if err != nil {
		return 0, err
	}
	return ix.anchorIndex + int((start-ix.anchorStart)/SecondsPerWeek), nil
}

// IndexOfTime returns the custom week index for the week containing ts.
func (ix *Indexer) IndexOfTime(ts int64) int {
	return ix.anchorIndex + int((WeekStartOf(ts)-ix.anchorStart)/SecondsPerWeek)
}
