package dateutil

import (
	"fmt"
	"time"
)

// Date truncates t to its calendar day in local time.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// IsNewDay reports whether now falls on a later calendar day than last. A
// zero last value counts as a new day.
func IsNewDay(last, now time.Time) bool {
	if last.IsZero() {
		return true
	}

	return Date(now).After(Date(last))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return !a.IsZero() && Date(a).Equal(Date(b))
}

// PeriodValue renders the bucket identifier of a leaderboard period at the
// given time, for example "week/34/2026" or "month/8/2026". The all-time
// period has an empty bucket.
func PeriodValue(period string, at time.Time) (string, error) {
	switch period {
	case "daily":
		return at.Format("2006-01-02"), nil
	case "weekly":
		year, week := at.ISOWeek()
		return fmt.Sprintf("week/%d/%d", week, year), nil
	case "monthly":
		return fmt.Sprintf("month/%d/%d", int(at.Month()), at.Year()), nil
	case "all_time":
		return "", nil
	default:
		return "", fmt.Errorf("leaderboard period must be daily, weekly, monthly or all_time, but got %s", period)
	}
}
