package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the calendar-date format used for ODK `today` values and
// every rendered date in output tables.
const DateLayout = "2006-01-02"

// ParseDate parses a submission date. Plain dates are preferred; RFC 3339
// timestamps are accepted and truncated to their calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date", goerr.V("value", s))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekStart returns the Sunday on or before d. A Sunday maps to itself.
func WeekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}
