package paystub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodFor(t *testing.T) {
	period := periodFor(date(2026, time.January, 2))

	assert.Equal(t, date(2025, time.December, 28), period.End)
	assert.Equal(t, date(2025, time.December, 15), period.Start)
}

func TestBuildScheduleAscendingOrder(t *testing.T) {
	schedule := BuildSchedule(date(2025, time.October, 3), 3, time.Time{})

	require.Len(t, schedule.Periods, 3)
	assert.Equal(t, date(2025, time.September, 5), schedule.Periods[0].PayDate)
	assert.Equal(t, date(2025, time.September, 19), schedule.Periods[1].PayDate)
	assert.Equal(t, date(2025, time.October, 3), schedule.Periods[2].PayDate)
	assert.Zero(t, schedule.Skipped)
	assert.Empty(t, schedule.Warnings)
}

func TestBuildScheduleSkipsPreHirePeriods(t *testing.T) {
	// Hired one week before the most recent pay date: only the latest
	// period's end lands on or after the hire date.
	hire := date(2025, time.September, 26)
	schedule := BuildSchedule(date(2025, time.October, 3), 4, hire)

	require.Len(t, schedule.Periods, 1)
	assert.Equal(t, date(2025, time.October, 3), schedule.Periods[0].PayDate)
	assert.Equal(t, 3, schedule.Skipped)
	require.Len(t, schedule.Warnings, 1)
	assert.Contains(t, schedule.Warnings[0], "before hire date")
}

func TestBuildScheduleWarnsOnNonFriday(t *testing.T) {
	schedule := BuildSchedule(date(2025, time.October, 1), 1, time.Time{}) // a Wednesday

	require.Len(t, schedule.Warnings, 1)
	assert.Contains(t, schedule.Warnings[0], "Wednesday")
	assert.Len(t, schedule.Periods, 1)
}

func TestBuildScheduleZeroHireDateDisablesBoundary(t *testing.T) {
	schedule := BuildSchedule(date(2025, time.October, 3), 6, time.Time{})

	assert.Len(t, schedule.Periods, 6)
	assert.Zero(t, schedule.Skipped)
}
