// Package datetime provides date arithmetic and JSON datetime handling for
// the vault. All datetimes are stored and transmitted in UTC using ISO 8601.
package datetime

import (
	"encoding/json"
	"strings"
	"time"
)

// DateFormat is the date-only format (YYYY-MM-DD) accepted as an input
// fallback.
const DateFormat = "2006-01-02"

// DaysRemaining returns the whole days from now until due, rounded up and
// clamped to zero. The round-up matters: remaining hits zero only once the
// due instant has actually passed, so a countdown of zero and "matured" are
// the same condition.
func DaysRemaining(now, due time.Time) int {
	if !now.Before(due) {
		return 0
	}
	d := due.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// DaysBetween returns the whole days from a to b, truncated. Negative when
// b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// DateTime represents a datetime value with timezone.
// It serializes to/from JSON as ISO 8601 / RFC3339 format.
type DateTime struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	if dt.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(dt.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements json.Unmarshaler.
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Try date-only format as fallback
		t, err = time.Parse(DateFormat, s)
		if err != nil {
			return err
		}
	}
	dt.Time = t.UTC()
	return nil
}

// String returns the datetime in RFC3339 format.
func (dt DateTime) String() string {
	if dt.IsZero() {
		return ""
	}
	return dt.UTC().Format(time.RFC3339)
}
