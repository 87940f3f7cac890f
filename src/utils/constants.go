package utils

import (
	"fmt"
	"time"
)

const ShortDashDateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a UTC date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(ShortDashDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// TruncateToDate drops the clock part of t, keeping the calendar day in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns January 1st of t's year in UTC.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
