package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"today", "this-week", "this-month", "last-month", "this-year", "all-time"} {
		t.Run(valid, func(t *testing.T) {
			p, err := ParsePeriod(valid)
			require.NoError(t, err)
			assert.Equal(t, Period(valid), p)
		})
	}

	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
	_, err = ParsePeriod("")
	assert.Error(t, err)
}

func TestPeriod_Range(t *testing.T) {
	// Wednesday, 2024-06-12.
	now := time.Date(2024, time.June, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "today",
			period:    PeriodToday,
			wantStart: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 12, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:      "this week starts on sunday",
			period:    PeriodThisWeek,
			wantStart: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:      "this month",
			period:    PeriodThisMonth,
			wantStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 30, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:      "last month",
			period:    PeriodLastMonth,
			wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 5, 31, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:      "this year",
			period:    PeriodThisYear,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 12, 31, 23, 59, 59, 999000000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Range(now)
			assert.Equal(t, tt.wantStart, start.Time)
			assert.Equal(t, tt.wantEnd, end.Time)
		})
	}
}

func TestPeriod_RangeOnSunday(t *testing.T) {
	// A Sunday is its own week start.
	now := time.Date(2024, time.June, 9, 8, 0, 0, 0, time.UTC)
	start, end := PeriodThisWeek.Range(now)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), start.Time)
	assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC), end.Time)
}

func TestPeriod_AllTimeUnbounded(t *testing.T) {
	start, end := PeriodAllTime.Range(time.Now())
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

func TestPeriod_Title(t *testing.T) {
	assert.Equal(t, "Today", PeriodToday.Title())
	assert.Equal(t, "This Week", PeriodThisWeek.Title())
	assert.Equal(t, "This Month", PeriodThisMonth.Title())
	assert.Equal(t, "Last Month", PeriodLastMonth.Title())
	assert.Equal(t, "This Year", PeriodThisYear.Title())
	assert.Equal(t, "All Time", PeriodAllTime.Title())
	assert.Equal(t, "Custom", Period("whatever").Title())
}
