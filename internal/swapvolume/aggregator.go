// Package swapvolume buckets swap amounts per account per UTC calendar day
// and converts each day's volume into capped swap points. Swap points carry
// no weekly cap; the only bound is the daily cap times seven.
package swapvolume

import (
	"sort"

	"github.com/shopspring/decimal"

	"veswap-points/internal/domain"
	"veswap-points/internal/weektime"
)

type bucket struct {
	account  string
	dayStart int64
	volume   decimal.Decimal
}

// Aggregator accumulates per-account daily swap volume. Ingest order does not
// affect the computed points; Awards still returns a deterministic ordering.
type Aggregator struct {
	unitSize decimal.Decimal
	maxDaily int64

	buckets map[bucketKey]*bucket
	order   []bucketKey // first-seen order, tie-break for equal days
}

type bucketKey struct {
	account  string
	dayStart int64
}

// New creates an aggregator. unitSize is the volume per point, maxDaily the
// per-day point cap.
func New(unitSize decimal.Decimal, maxDaily int64) *Aggregator {
	return &Aggregator{
		unitSize: unitSize,
		maxDaily: maxDaily,
		buckets:  make(map[bucketKey]*bucket),
	}
}

// Ingest adds one swap amount to the account's bucket for the day containing
// timestamp.
func (a *Aggregator) Ingest(account string, timestamp int64, amount decimal.Decimal) {
	key := bucketKey{account: account, dayStart: weektime.DayStartOf(timestamp)}
	b, ok := a.buckets[key]
	if !ok {
		b = &bucket{account: account, dayStart: key.dayStart}
		a.buckets[key] = b
		a.order = append(a.order, key)
	}
	b.volume = b.volume.Add(amount)
}

// Awards converts every bucket into its daily point credit:
// min(floor(volume / unitSize), maxDaily). Buckets whose volume never reaches
// one unit still appear with zero points so the raw sum stays auditable.
// Results are ordered by day ascending, then first-ingested account.
func (a *Aggregator) Awards() []domain.SwapAward {
	seen := make(map[bucketKey]int, len(a.order))
	for i, key := range a.order {
		seen[key] = i
	}

	keys := make([]bucketKey, len(a.order))
	copy(keys, a.order)
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].dayStart != keys[j].dayStart {
			return keys[i].dayStart < keys[j].dayStart
		}
		return seen[keys[i]] < seen[keys[j]]
	})

	awards := make([]domain.SwapAward, 0, len(keys))
	for _, key := range keys {
		b := a.buckets[key]
		points := b.volume.Div(a.unitSize).Floor().IntPart()
		if points > a.maxDaily {
			points = a.maxDaily
		}
		awards = append(awards, domain.SwapAward{
			Account:  b.account,
			DayStart: b.dayStart,
			DayLabel: weektime.DayLabelOf(b.dayStart),
			Volume:   b.volume,
			Points:   points,
		})
	}
	return awards
}
