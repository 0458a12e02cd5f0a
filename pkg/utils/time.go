package utils

import (
	"strings"
	"time"
)

// DateOnly is the calendar-date layout used across the storage boundary.
const DateOnly = "2006-01-02"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Day returns the calendar-date representation of t.
func Day(t time.Time) string {
	return t.Format(DateOnly)
}

// DayOf extracts the calendar-date prefix from an ISO-8601 date or
// date-time string. The second return value reports whether the prefix
// is a valid date; callers use it to skip malformed records.
func DayOf(timestamp string) (string, bool) {
	s := strings.TrimSpace(timestamp)
	if len(s) < len(DateOnly) {
		return "", false
	}
	prefix := s[:len(DateOnly)]
	if len(s) > len(DateOnly) && s[len(DateOnly)] != 'T' && s[len(DateOnly)] != ' ' {
		return "", false
	}
	if _, err := time.Parse(DateOnly, prefix); err != nil {
		return "", false
	}
	return prefix, true
}

// IsValidDay reports whether s is a valid calendar date.
func IsValidDay(s string) bool {
	_, err := time.Parse(DateOnly, s)
	return err == nil
}
