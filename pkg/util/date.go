package util

import (
	"strconv"
	"strings"
	"time"
)

// Epoch values above this are taken as milliseconds.
const millisThreshold = 1e11

var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime tries the RFC3339 family, plain date-times, and unix seconds or
// milliseconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if ts, err := strconv.ParseFloat(s, 64); err == nil {
		return FromEpoch(ts)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromEpoch converts unix seconds (or milliseconds when large) to a time.
// Non-positive values are not a time.
func FromEpoch(ts float64) (time.Time, bool) {
	if ts <= 0 {
		return time.Time{}, false
	}
	if ts > millisThreshold {
		return time.UnixMilli(int64(ts)), true
	}
	return time.Unix(int64(ts), 0), true
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}
