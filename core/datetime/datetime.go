// Package datetime holds the calendar helpers shared by the due, week and
// schedule calculators. Everything here works on civil dates so that DST
// transitions never turn a calendar day into 23 or 25 hours.
package datetime

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	Day = 24 * time.Hour

	DateLayout = "2006-01-02"
)

// accepted timestamp layouts, tried in order
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// DateOf returns the calendar date of t (as read in t's location) at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Midnight returns 00:00 of t's calendar date in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// Each date is read in its own location.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / Day)
}

// FloorDiv divides a by b rounding toward negative infinity. b must be > 0.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// ParseTimestamp parses an ISO-8601 timestamp. Timestamps without an offset
// and plain dates are read in `loc` (UTC when nil).
func ParseTimestamp(s string, loc ...*time.Location) (time.Time, error) {
	l := time.UTC
	if len(loc) > 0 && loc[0] != nil {
		l = loc[0]
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, l); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid timestamp %q: expected ISO-8601 (e.g. 2006-01-02T15:04:05Z07:00)", s)
}

// ParseDate parses a calendar date ("2006-01-02") or a full timestamp,
// returning midnight of that date in `loc` (UTC when nil).
func ParseDate(s string, loc ...*time.Location) (time.Time, error) {
	t, err := ParseTimestamp(s, loc...)
	if err != nil {
		return time.Time{}, err
	}
	return Midnight(t), nil
}
