package reporting

import (
	"fmt"
	"strings"
	"time"

	"veswap-points/internal/domain"
	"veswap-points/internal/leaderboard"
)

// maxMarkdownRows bounds the leaderboard tables embedded in the Markdown
// report; the CSV files carry the full data.
const maxMarkdownRows = 25

// RenderMarkdown renders the run report as a Markdown string.
func RenderMarkdown(info RunInfo, t *leaderboard.Tables) string {
	var sb strings.Builder

	sb.WriteString("# Points Run Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", info.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Strategy: %s | Cutoff: %s\n\n",
		info.Strategy, time.Unix(info.EndTime, 0).UTC().Format(time.RFC3339)))

	sb.WriteString("## Run Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Records Processed | %d |\n", info.Records))
	sb.WriteString(fmt.Sprintf("| Records Skipped | %d |\n", info.SkippedRecords))
	sb.WriteString(fmt.Sprintf("| Liquidity Points | %d |\n", info.LiquidityPoints))
	sb.WriteString(fmt.Sprintf("| Swap Points | %d |\n", info.SwapPoints))
	sb.WriteString(fmt.Sprintf("| Points Withheld By Weekly Cap | %d |\n", info.CappedPoints))
	sb.WriteString(fmt.Sprintf("| Ranked Accounts | %d |\n", len(t.Total)))
	sb.WriteString("\n")

	sb.WriteString("## Total Leaderboard\n\n")
	writeLeaderboard(&sb, t.Total)

	sb.WriteString(fmt.Sprintf("## Weekly Leaderboard (%s)\n\n", t.WeeklyLabel))
	if len(t.Weekly) == 0 {
		sb.WriteString("No points earned in the latest complete week.\n\n")
	} else {
		writeLeaderboard(&sb, t.Weekly)
	}

	return sb.String()
}

func writeLeaderboard(sb *strings.Builder, entries []domain.LeaderboardEntry) {
	sb.WriteString("| Rank | Account | Points |\n")
	sb.WriteString("|------|---------|--------|\n")
	for i, e := range entries {
		if i >= maxMarkdownRows {
			sb.WriteString(fmt.Sprintf("| ... | %d more accounts | |\n", len(entries)-maxMarkdownRows))
			break
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %d |\n", e.Rank, e.Account, e.Points))
	}
	sb.WriteString("\n")
}
