package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/dailycheck/internal/constants"
)

// Today returns the calendar date (YYYY-MM-DD) of now in now's location.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// DayOffset returns the calendar date n days after now's date (n may be negative).
// Calendar arithmetic is used so DST transitions never skip or repeat a day.
func DayOffset(now time.Time, n int) string {
	y, m, d := now.Date()
	return time.Date(y, m, d+n, 12, 0, 0, 0, time.UTC).Format(constants.DateFormat)
}

// ParseDate parses a date string (YYYY-MM-DD) as midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ValidateDate checks if the string is a zero-padded YYYY-MM-DD calendar date.
func ValidateDate(dateStr string) bool {
	t, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil && t.Format(constants.DateFormat) == dateStr
}

// AddDays shifts a date string by n days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the number of calendar days from one date to another.
// The result is negative when to is before from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsFuture reports whether dateStr is after now's calendar date.
// Valid because YYYY-MM-DD strings sort lexicographically.
func IsFuture(dateStr string, now time.Time) bool {
	return dateStr > Today(now)
}
