package paystub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProfile wraps profile validation failures. No computation happens
// once validation fails.
var ErrInvalidProfile = errors.New("invalid compensation profile")

// Engine derives paystub drafts from a compensation profile. It is a pure
// function of its inputs: no I/O, no shared mutable state, safe for
// concurrent use across employees.
type Engine struct {
	tables TaxTableProvider
}

func NewEngine(tables TaxTableProvider) *Engine {
	return &Engine{tables: tables}
}

// Validate checks a profile before any computation begins.
func (e *Engine) Validate(profile CompensationProfile) error {
	var problems []string

	if strings.TrimSpace(profile.EmployeeName) == "" {
		problems = append(problems, "employee name is required")
	}
	if !profile.PayType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown pay type %q", profile.PayType))
	}
	if profile.MostRecentPayDate.IsZero() {
		problems = append(problems, "most recent pay date is required")
	}
	if profile.PeriodCount <= 0 {
		problems = append(problems, "period count must be positive")
	}

	switch profile.PayType {
	case PayTypeSalary:
		if !profile.AnnualSalary.GreaterThan(decimal.Zero) {
			problems = append(problems, "annual salary must be positive")
		}
	case PayTypeHourly, PayTypeContractor:
		if !profile.HourlyRate.GreaterThan(decimal.Zero) {
			problems = append(problems, "hourly rate must be positive")
		}
		if !profile.HoursPerPeriod.GreaterThan(decimal.Zero) {
			problems = append(problems, "hours per period must be positive")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}
	return nil
}

// Run iterates over the scheduled periods of one generation request, yielding
// one completed draft at a time so the caller can render and persist each
// independently. Periods with no in-year result are omitted silently.
type Run struct {
	engine   *Engine
	profile  CompensationProfile
	schedule Schedule
	next     int
}

// Plan validates the profile and builds the period schedule.
func (e *Engine) Plan(profile CompensationProfile) (*Run, error) {
	if err := e.Validate(profile); err != nil {
		return nil, err
	}
	schedule := BuildSchedule(profile.MostRecentPayDate, profile.PeriodCount, profile.HireDate)
	return &Run{engine: e, profile: profile, schedule: schedule}, nil
}

// Next computes and returns the next draft, or false when the run is done.
func (r *Run) Next() (*Draft, bool) {
	for r.next < len(r.schedule.Periods) {
		period := r.schedule.Periods[r.next]
		r.next++
		if draft, ok := computeDraft(r.engine.tables, r.profile, period.PayDate); ok {
			return draft, true
		}
	}
	return nil, false
}

// Total is the number of scheduled periods, before any per-period omissions.
func (r *Run) Total() int { return len(r.schedule.Periods) }

// Skipped is the number of candidate periods dropped at the hire-date boundary.
func (r *Run) Skipped() int { return r.schedule.Skipped }

// Warnings returns the non-fatal findings for the run.
func (r *Run) Warnings() []string { return r.schedule.Warnings }

// GenerateAll runs the whole schedule eagerly and returns every draft.
func (e *Engine) GenerateAll(profile CompensationProfile) ([]Draft, *Run, error) {
	run, err := e.Plan(profile)
	if err != nil {
		return nil, nil, err
	}
	var drafts []Draft
	for {
		draft, ok := run.Next()
		if !ok {
			break
		}
		drafts = append(drafts, *draft)
	}
	return drafts, run, nil
}
