package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format persisted in the parameter store
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as a UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a time as YYYY-MM-DD in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// TruncateToDate drops the clock part of t, keeping the UTC calendar date
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after t
func AddDays(t time.Time, n int) time.Time {
	return TruncateToDate(t).AddDate(0, 0, n)
}

// SameDate reports whether a and b fall on the same UTC calendar day
func SameDate(a, b time.Time) bool {
	return TruncateToDate(a).Equal(TruncateToDate(b))
}

// DaysBetween returns the number of whole calendar days from since to now
func DaysBetween(since, now time.Time) int {
	return int(TruncateToDate(now).Sub(TruncateToDate(since)).Hours() / 24)
}
