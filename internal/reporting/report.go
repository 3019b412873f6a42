// Package reporting renders the engine's output tables as CSV, JSON and
// Markdown, and publishes them to files and sinks. Rendering is pure string
// building over already-final data; nothing here recomputes points.
package reporting

import "time"

// RunInfo is the metadata block at the top of every generated report.
type RunInfo struct {
	GeneratedAt     time.Time // report generation time (injectable for determinism)
	Strategy        string    // accrual strategy used for the run
	EndTime         int64     // batch cutoff, Unix seconds UTC
	Records         int       // records fed into the engine
	SkippedRecords  int       // records dropped under the skip policy
	LiquidityPoints int64     // total liquidity points credited, post-cap
	SwapPoints      int64     // total swap points credited
	CappedPoints    int64     // liquidity points withheld by the weekly cap
}

// Output file names written by WriteFiles.
const (
	FileTotalCSV      = "leaderboard_total.csv"
	FileWeeklyCSV     = "leaderboard_weekly.csv"
	FileAccountLogCSV = "account_points_log.csv"
	FileTablesJSON    = "points_tables.json"
	FileRunReport     = "RUN_REPORT.md"
)
