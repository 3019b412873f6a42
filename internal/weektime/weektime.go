// Package weektime centralizes all week and day arithmetic for the points
// engine. Week buckets follow the ISO-8601 convention: weeks start Monday
// 00:00 UTC and are labeled by ISO year-week, e.g. "2024-W31". Keeping the
// arithmetic in one place keeps every component on the same boundary rules.
package weektime

import (
	"fmt"
	"time"
)

// SecondsPerDay is one UTC calendar day in seconds.
const SecondsPerDay = 24 * 60 * 60

// SecondsPerWeek is one ISO week in seconds.
const SecondsPerWeek = 7 * SecondsPerDay

// WeekLabelOf returns the ISO year-week label for a Unix timestamp (seconds).
// The ISO year can differ from the calendar year around January 1st.
func WeekLabelOf(ts int64) string {
	year, week := time.Unix(ts, 0).UTC().ISOWeek()
	return FormatWeekLabel(year, week)
}

// FormatWeekLabel formats an ISO (year, week) pair as "YYYY-Www".
func FormatWeekLabel(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeekLabel parses a "YYYY-Www" label into its ISO year and week.
func ParseWeekLabel(label string) (year, week int, err error) {
	if _, err := fmt.Sscanf(label, "%04d-W%02d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("parse week label %q: %w", label, err)
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("parse week label %q: week out of range", label)
	}
	return year, week, nil
}

// WeekStartOf returns the Unix timestamp of Monday 00:00 UTC of the ISO week
// containing ts.
func WeekStartOf(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	// Monday=0 .. Sunday=6
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -daysSinceMonday).Unix()
}

// WeekStartOfLabel returns the Unix timestamp of Monday 00:00 UTC of the ISO
// week named by label.
func WeekStartOfLabel(label string) (int64, error) {
	year, week, err := ParseWeekLabel(label)
	if err != nil {
		return 0, err
	}
	// January 4th is always inside ISO week 1 of its year.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return week1Monday.AddDate(0, 0, (week-1)*7).Unix(), nil
}

// DayStartOf returns the Unix timestamp of 00:00 UTC of the calendar day
// containing ts. Used as the bucket key for daily swap volume.
func DayStartOf(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// DayLabelOf returns the "YYYY-MM-DD" label of the UTC calendar day
// containing ts.
func DayLabelOf(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

// LatestCompleteWeek returns the label of the most recent ISO week that fully
// elapsed before endTime. When endTime sits exactly on a Monday 00:00
// boundary the week that just closed is returned.
func LatestCompleteWeek(endTime int64) string {
	return WeekLabelOf(WeekStartOf(endTime) - 1)
}
