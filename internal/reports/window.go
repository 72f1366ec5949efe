package reports

import (
	"strconv"
	"time"
)

// Period selects the reporting window size.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// IsValid reports whether the period is one of the supported values.
func (p Period) IsValid() bool {
	return p == PeriodDaily || p == PeriodMonthly || p == PeriodYearly
}

const (
	dailyAnchorLayout   = "2006-01-02"
	monthlyAnchorLayout = "2006-01"
)

// ResolveWindow turns a period plus an optional anchor string into a
// half-open [start, end) window in loc. An empty or unparseable anchor
// falls back to the window containing now, so a bad query parameter yields
// the current period rather than an error.
func ResolveWindow(period Period, anchor string, now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	switch period {
	case PeriodMonthly:
		ref := now
		if anchor != "" {
			if parsed, err := time.ParseInLocation(monthlyAnchorLayout, anchor, loc); err == nil {
				ref = parsed
			}
		}
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	case PeriodYearly:
		year := now.Year()
		if anchor != "" {
			if parsed, err := strconv.Atoi(anchor); err == nil && parsed > 0 {
				year = parsed
			}
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default:
		ref := now
		if anchor != "" {
			if parsed, err := time.ParseInLocation(dailyAnchorLayout, anchor, loc); err == nil {
				ref = parsed
			}
		}
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	}
}
