package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      time.Time
		expected int
	}{
		{"due in exactly 28 days", now.AddDate(0, 0, 28), 28},
		{"due in half a day rounds up", now.Add(12 * time.Hour), 1},
		{"due now", now, 0},
		{"due in the past clamps to zero", now.AddDate(0, 0, -3), 0},
		{"one nanosecond remaining", now.Add(time.Nanosecond), 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, DaysRemaining(now, tt.due))
		})
	}
}

func TestDaysRemaining_ZeroMeansMatured(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, time.March, 26, 9, 0, 0, 0, time.UTC)

	// Strictly before due: never zero.
	assert.Positive(t, DaysRemaining(due.Add(-time.Second), due))
	// At or past due: always zero.
	assert.Zero(t, DaysRemaining(due, due))
	assert.Zero(t, DaysRemaining(due.Add(time.Second), due))
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, DaysBetween(a, a.AddDate(0, 0, 90)))
	assert.Equal(t, -5, DaysBetween(a, a.AddDate(0, 0, -5)))
	assert.Equal(t, 0, DaysBetween(a, a.Add(23*time.Hour)))
}

func TestDateTime_JSON(t *testing.T) {
	t.Parallel()

	dt := DateTime{time.Date(2026, time.March, 26, 9, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(dt)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-03-26T09:00:00Z"`, string(data))

	var parsed DateTime
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, dt.Equal(parsed.Time))
}

func TestDateTime_UnmarshalDateOnlyFallback(t *testing.T) {
	t.Parallel()

	var dt DateTime
	assert.NoError(t, json.Unmarshal([]byte(`"2026-03-26"`), &dt))
	assert.Equal(t, "2026-03-26T00:00:00Z", dt.String())
}

func TestDateTime_ZeroMarshalsNull(t *testing.T) {
	t.Parallel()

	var dt DateTime
	data, err := json.Marshal(dt)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
