package data

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// shortOffset matches a UTC offset written with hours only, e.g. "+00" or "-05".
var shortOffset = regexp.MustCompile(`[+-]\d{2}$`)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp parses the meter export's ISO-8601-like timestamps.
// A trailing hours-only offset ("+00") is widened to "+00:00" first.
// Timestamps without an offset are read as UTC. The returned time keeps the
// offset it was written with, so Hour() is the meter's wall-clock hour.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if shortOffset.MatchString(s) {
		s += ":00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
