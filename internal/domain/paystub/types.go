package paystub

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType selects which earnings and deduction rules apply to an employee.
type PayType string

const (
	PayTypeSalary     PayType = "salary"
	PayTypeHourly     PayType = "hourly"
	PayTypeContractor PayType = "contractor"
)

func (p PayType) Valid() bool {
	switch p {
	case PayTypeSalary, PayTypeHourly, PayTypeContractor:
		return true
	}
	return false
}

// Earnings line descriptions as they appear on the rendered statement.
const (
	EarningRegular    = "Regular Earnings"
	EarningOvertime   = "Overtime Earnings"
	EarningBonus      = "Year-end Bonus"
	EarningContractor = "Contractor Earnings"
)

// Deduction names as they appear on the rendered statement.
const (
	DeductionRetirement    = "401(k)"
	DeductionHealthPlan    = "Health Plan"
	DeductionContractorFee = "Contractor Fee"
	DeductionFederalTax    = "Federal Income Tax"
	DeductionSocialSec     = "Social Security"
	DeductionMedicare      = "Medicare"
	DeductionSDI           = "State Disability"
	DeductionStatePIT      = "State Income Tax"
)

// RateDeduction is a percentage-of-wages deduction that can be switched off.
// A zero rate means "use the engine default" for deductions that have one.
type RateDeduction struct {
	Enabled bool
	Rate    decimal.Decimal // percent
}

// FlatDeduction is a fixed per-period amount, e.g. a health plan premium.
type FlatDeduction struct {
	Enabled bool
	Amount  decimal.Decimal
}

// Deductions holds the per-employee deduction configuration. State income tax
// carries no rate: its per-period amount is derived from the progressive table.
type Deductions struct {
	Retirement      RateDeduction // salary only, pre-tax for federal
	HealthPlan      FlatDeduction // pre-tax for federal, FICA and SDI
	ContractorFee   RateDeduction // contractor only
	FederalTax      RateDeduction // default rate derived from the federal table
	SocialSecurity  RateDeduction
	Medicare        RateDeduction
	StateDisability RateDeduction // default rate from the tax table
	StateIncomeTax  bool
}

// CompensationProfile is the full input to one generation run. Identity fields
// pass through untouched to the drafts.
type CompensationProfile struct {
	EmployeeID   string
	EmployeeName string
	JobTitle     string
	Department   string

	PayType        PayType
	AnnualSalary   decimal.Decimal // salary
	HourlyRate     decimal.Decimal // hourly / contractor
	HoursPerPeriod decimal.Decimal // hourly / contractor

	HireDate          time.Time
	MostRecentPayDate time.Time
	PeriodCount       int

	BonusRate decimal.Decimal // percent of reconciled annual gross, salary only

	Deductions Deductions
}

// PayPeriod is one bi-weekly period. End is always pay date minus 5 days and
// Start is End minus 13 days.
type PayPeriod struct {
	PayDate time.Time
	Start   time.Time
	End     time.Time
}

// EarningsLine is one row of the earnings table. Hours and Rate are nil for
// lines that are a bare amount, such as the year-end bonus.
type EarningsLine struct {
	Description string
	Hours       *decimal.Decimal
	Rate        *decimal.Decimal
	Current     decimal.Decimal
	YTD         decimal.Decimal
}

// DeductionLine is one row of the deductions table.
type DeductionLine struct {
	Name    string
	Current decimal.Decimal
	YTD     decimal.Decimal
}

// Totals carries gross, deduction and net figures at current-period and
// year-to-date granularity. Net equals gross minus deductions at both.
type Totals struct {
	GrossCurrent      decimal.Decimal
	GrossYTD          decimal.Decimal
	DeductionsCurrent decimal.Decimal
	DeductionsYTD     decimal.Decimal
	NetCurrent        decimal.Decimal
	NetYTD            decimal.Decimal
}

// LeaveBalances reports accrued leave in hours. Used is always zero: the
// engine has no usage-tracking input.
type LeaveBalances struct {
	VacationAccrued decimal.Decimal
	VacationUsed    decimal.Decimal
	VacationBalance decimal.Decimal
	SickAccrued     decimal.Decimal
	SickUsed        decimal.Decimal
	SickBalance     decimal.Decimal
}

// Draft is one fully computed paystub, ready for rendering and persistence.
type Draft struct {
	EmployeeID   string
	EmployeeName string
	JobTitle     string
	Department   string

	Period     PayPeriod
	Earnings   []EarningsLine
	Deductions []DeductionLine
	Totals     Totals
	Leave      *LeaveBalances // salary only
}

// round applies the engine's currency rounding: two decimals, half up. It is
// applied after every arithmetic step that produces a monetary amount so that
// accumulated figures are sums of already-rounded increments.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
