package paystub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsBadProfiles(t *testing.T) {
	engine := NewEngine(TaxYear2025())

	tests := []struct {
		name    string
		mutate  func(*CompensationProfile)
		problem string
	}{
		{
			name:    "missing name",
			mutate:  func(p *CompensationProfile) { p.EmployeeName = " " },
			problem: "employee name",
		},
		{
			name:    "unknown pay type",
			mutate:  func(p *CompensationProfile) { p.PayType = "weekly" },
			problem: "unknown pay type",
		},
		{
			name:    "zero salary",
			mutate:  func(p *CompensationProfile) { p.AnnualSalary = d("0") },
			problem: "annual salary",
		},
		{
			name:    "missing pay date",
			mutate:  func(p *CompensationProfile) { p.MostRecentPayDate = time.Time{} },
			problem: "most recent pay date",
		},
		{
			name:    "zero period count",
			mutate:  func(p *CompensationProfile) { p.PeriodCount = 0 },
			problem: "period count",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := salaryProfile("130000")
			tc.mutate(&profile)

			err := engine.Validate(profile)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
			assert.Contains(t, err.Error(), tc.problem)
		})
	}
}

func TestValidateHourlyRequiresRateAndHours(t *testing.T) {
	engine := NewEngine(TaxYear2025())
	profile := CompensationProfile{
		EmployeeName:      "Sam Reyes",
		PayType:           PayTypeHourly,
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       1,
	}

	err := engine.Validate(profile)
	require.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "hourly rate")
	assert.Contains(t, err.Error(), "hours per period")
}

func TestPlanRejectsInvalidProfile(t *testing.T) {
	profile := salaryProfile("130000")
	profile.PeriodCount = -1

	_, err := NewEngine(TaxYear2025()).Plan(profile)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRunYieldsOneDraftPerValidPeriod(t *testing.T) {
	profile := CompensationProfile{
		EmployeeName:      "Sam Reyes",
		PayType:           PayTypeHourly,
		HourlyRate:        d("30"),
		HoursPerPeriod:    d("80"),
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       3,
	}

	run, err := NewEngine(TaxYear2025()).Plan(profile)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Total())

	var payDates []time.Time
	for {
		draft, ok := run.Next()
		if !ok {
			break
		}
		payDates = append(payDates, draft.Period.PayDate)
	}

	require.Len(t, payDates, 3)
	assert.True(t, payDates[0].Before(payDates[1]))
	assert.True(t, payDates[1].Before(payDates[2]))
}
