package reporting

import (
	"encoding/json"
	"fmt"

	"veswap-points/internal/domain"
	"veswap-points/internal/leaderboard"
)

// jsonTables is the serialized shape of the three output tables. Field order
// is fixed so repeated runs produce byte-identical files.
type jsonTables struct {
	WeeklyLabel string           `json:"weekly_label"`
	Total       []jsonEntry      `json:"total"`
	Weekly      []jsonEntry      `json:"weekly"`
	AccountLogs []jsonAccountLog `json:"account_logs"`
}

type jsonEntry struct {
	Rank    int    `json:"rank"`
	Account string `json:"account"`
	Points  int64  `json:"points"`
}

type jsonAccountLog struct {
	Account string         `json:"account"`
	Rows    []jsonLogEntry `json:"rows"`
}

type jsonLogEntry struct {
	WeekIndex       int    `json:"week_index"`
	WeekLabel       string `json:"week_label"`
	SwapPoints      int64  `json:"swap_points"`
	LiquidityPoints int64  `json:"liquidity_points"`
	CumulativeTotal int64  `json:"cumulative_total"`
}

// RenderJSON renders all three tables as one indented JSON document.
func RenderJSON(t *leaderboard.Tables) (string, error) {
	out := jsonTables{
		WeeklyLabel: t.WeeklyLabel,
		Total:       toEntries(t.Total),
		Weekly:      toEntries(t.Weekly),
	}
	for _, log := range t.AccountLogs {
		rows := make([]jsonLogEntry, 0, len(log.Rows))
		for _, r := range log.Rows {
			rows = append(rows, jsonLogEntry{
				WeekIndex:       r.WeekIndex,
				WeekLabel:       r.WeekLabel,
				SwapPoints:      r.SwapPoints,
				LiquidityPoints: r.LiquidityPoints,
				CumulativeTotal: r.CumulativeTotal,
			})
		}
		out.AccountLogs = append(out.AccountLogs, jsonAccountLog{Account: log.Account, Rows: rows})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal tables: %w", err)
	}
	return string(data) + "\n", nil
}

func toEntries(entries []domain.LeaderboardEntry) []jsonEntry {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{Rank: e.Rank, Account: e.Account, Points: e.Points})
	}
	return out
}
