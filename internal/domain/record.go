package domain

import "github.com/shopspring/decimal"

// TransactionRecord is one normalized on-chain event consumed by the engine.
// Records are immutable once ingested. Ordering key is (Timestamp, Seq):
// Seq preserves original ingestion order so that timestamp ties resolve
// deterministically across runs.
type TransactionRecord struct {
	Kind      string          // one of KindSwap, KindAddLiquidity, KindRemoveLiquidity
	Timestamp int64           // Unix timestamp in seconds (UTC)
	Account   string          // account address, normalized to lowercase
	Amount    decimal.Decimal // token amount, arbitrary precision
	PairID    string          // trading pair identifier, e.g. "VVET/B3TR"
	Seq       int64           // original ingestion order, tie-break key
}

// Record kind constants
const (
	KindSwap            = "swap"
	KindAddLiquidity    = "add_liquidity"
	KindRemoveLiquidity = "remove_liquidity"
)

// ValidKind reports whether k is one of the three supported record kinds.
func ValidKind(k string) bool {
	switch k {
	case KindSwap, KindAddLiquidity, KindRemoveLiquidity:
		return true
	}
	return false
}
