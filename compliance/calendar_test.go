package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayCalendar(t *testing.T) {
	t.Parallel()

	cal := NewWeekdayCalendar(time.UTC, nil)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"monday", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), true},
		{"friday", time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cal.IsTradingDay(tt.day))
		})
	}
}

func TestWeekdayCalendarHolidays(t *testing.T) {
	t.Parallel()

	newYears := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := NewWeekdayCalendar(time.UTC, []time.Time{newYears})

	assert.False(t, cal.IsTradingDay(newYears))
	assert.False(t, cal.IsTradingDay(newYears.Add(15*time.Hour)))
	assert.True(t, cal.IsTradingDay(newYears.AddDate(0, 0, 1)))
}

func TestWeekdayCalendarTimezone(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	cal := NewWeekdayCalendar(ny, nil)

	// 01:00 UTC Saturday is still Friday evening in New York.
	fridayEvening := time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC)
	assert.True(t, cal.IsTradingDay(fridayEvening))

	// Midday UTC Saturday is Saturday in New York too.
	saturday := time.Date(2024, 1, 6, 17, 0, 0, 0, time.UTC)
	assert.False(t, cal.IsTradingDay(saturday))
}

func TestNilLocationDefaultsToUTC(t *testing.T) {
	t.Parallel()

	cal := NewWeekdayCalendar(nil, nil)
	assert.Equal(t, time.UTC, cal.Location())
}
