package paystub

import (
	"fmt"
	"sort"
	"time"
)

// Bi-weekly cadence: pay dates are 14 days apart, the period ends 5 days
// before the pay date and spans 14 days.
const (
	periodSpacingDays = 14
	payDateLagDays    = 5
	periodLengthDays  = 13
)

// Schedule is the ordered set of periods a generation run will produce, plus
// non-fatal findings about the requested range.
type Schedule struct {
	Periods  []PayPeriod
	Skipped  int
	Warnings []string
}

func periodFor(payDate time.Time) PayPeriod {
	end := payDate.AddDate(0, 0, -payDateLagDays)
	return PayPeriod{
		PayDate: payDate,
		Start:   end.AddDate(0, 0, -periodLengthDays),
		End:     end,
	}
}

// BuildSchedule walks backward from the most recent pay date in 14-day steps,
// producing periodCount candidates in ascending order. Candidates whose period
// end precedes the hire date are dropped and counted as skipped. A zero
// hireDate disables the hire-date boundary.
func BuildSchedule(mostRecentPayDate time.Time, periodCount int, hireDate time.Time) Schedule {
	var schedule Schedule

	if mostRecentPayDate.Weekday() != time.Friday {
		schedule.Warnings = append(schedule.Warnings, fmt.Sprintf(
			"pay date %s falls on a %s; company policy pays on Fridays",
			mostRecentPayDate.Format("2006-01-02"), mostRecentPayDate.Weekday()))
	}

	candidates := make([]time.Time, 0, periodCount)
	for i := 0; i < periodCount; i++ {
		candidates = append(candidates, mostRecentPayDate.AddDate(0, 0, -periodSpacingDays*i))
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })

	for _, payDate := range candidates {
		period := periodFor(payDate)
		if !hireDate.IsZero() && period.End.Before(hireDate) {
			schedule.Skipped++
			continue
		}
		schedule.Periods = append(schedule.Periods, period)
	}

	if schedule.Skipped > 0 {
		schedule.Warnings = append(schedule.Warnings, fmt.Sprintf(
			"%d period(s) before hire date %s were skipped",
			schedule.Skipped, hireDate.Format("2006-01-02")))
	}

	return schedule
}
