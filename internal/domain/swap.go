package domain

import "github.com/shopspring/decimal"

// SwapAward is the daily swap-point credit for one account. Volume keeps the
// raw decimal sum for audit even after the points conversion consumed it.
type SwapAward struct {
	Account  string          // account address (lowercase)
	DayStart int64           // Unix seconds of 00:00 UTC of the volume day
	DayLabel string          // "YYYY-MM-DD" of the volume day
	Volume   decimal.Decimal // summed swap amount for the day
	Points   int64           // capped points awarded for the day
}
