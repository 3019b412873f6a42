package reporting

import (
	"fmt"
	"strings"

	"veswap-points/internal/leaderboard"
)

// RenderTotalCSV renders the total leaderboard as a CSV string.
func RenderTotalCSV(t *leaderboard.Tables) string {
	var sb strings.Builder
	sb.WriteString("rank,account,points\n")
	for _, e := range t.Total {
		sb.WriteString(fmt.Sprintf("%d,%s,%d\n", e.Rank, e.Account, e.Points))
	}
	return sb.String()
}

// RenderWeeklyCSV renders the latest-complete-week leaderboard as a CSV
// string. The week label repeats per row so the file stands alone.
func RenderWeeklyCSV(t *leaderboard.Tables) string {
	var sb strings.Builder
	sb.WriteString("week_label,rank,account,points\n")
	for _, e := range t.Weekly {
		sb.WriteString(fmt.Sprintf("%s,%d,%s,%d\n", t.WeeklyLabel, e.Rank, e.Account, e.Points))
	}
	return sb.String()
}

// RenderAccountLogCSV renders every account's weekly history as one CSV,
// accounts in ledger order, weeks most recent first within each account.
func RenderAccountLogCSV(t *leaderboard.Tables) string {
	var sb strings.Builder
	sb.WriteString("account,week_index,week_label,swap_points,liquidity_points,cumulative_total\n")
	for _, log := range t.AccountLogs {
		for _, row := range log.Rows {
			sb.WriteString(fmt.Sprintf("%s,%d,%s,%d,%d,%d\n",
				log.Account,
				row.WeekIndex,
				row.WeekLabel,
				row.SwapPoints,
				row.LiquidityPoints,
				row.CumulativeTotal,
			))
		}
	}
	return sb.String()
}
