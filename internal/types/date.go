package types

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format exchanged with the invoice API
// and accepted from date inputs.
const DateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayout,
}

// ParseDate parses a calendar date or a timestamp. Timestamps are converted to
// the given location before the time of day is dropped, so an instant stored
// as UTC midnight lands on the calendar day the user sees locally.
// An empty string yields the zero time.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}

	var lastErr error
	for _, layout := range acceptedDateLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == DateLayout {
			t, err = time.ParseInLocation(layout, raw, loc)
		} else {
			t, err = time.Parse(layout, raw)
		}
		if err == nil {
			return TruncateToDate(t.In(loc)), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDate renders a date with DateLayout, or an empty string for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// TruncateToDate drops the time of day while keeping the location
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
