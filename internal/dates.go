package internal

import (
	"errors"
	"strings"
	"time"
)

// CalendarDateLayout renders a date without time of day, e.g. "Sun Jan 01 2023".
const CalendarDateLayout = "Mon Jan 02 2006"

const dateOnlyLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate accepts a calendar date or an ISO-8601 timestamp. The bool
// reports whether the input carried no time of day. Results are in UTC.
func ParseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateOnlyLayout, s); err == nil {
		return d.UTC(), true, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), false, nil
		}
	}
	return time.Time{}, false, ErrInvalidDate
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(CalendarDateLayout)
}

// EndOfDay returns the last representable instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
