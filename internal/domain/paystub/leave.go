package paystub

import "github.com/shopspring/decimal"

// Leave accrues per bi-weekly period and is capped. Usage tracking has no
// input in this engine, so used hours are always zero.
var (
	vacationPerPeriod = decimal.NewFromInt(80).Div(biweeklyPeriods)
	vacationCapHours  = decimal.NewFromInt(120)
	sickPerPeriod     = decimal.NewFromInt(40).Div(biweeklyPeriods)
	sickCapHours      = decimal.NewFromInt(80)
)

// leaveBalancesAt returns the leave balances for the given 1-based period
// index within the calendar year, or nil for pay types that do not accrue.
func leaveBalancesAt(payType PayType, periodIndexInYear int) *LeaveBalances {
	if payType != PayTypeSalary {
		return nil
	}

	index := decimal.NewFromInt(int64(periodIndexInYear))
	vacation := accruedHours(vacationPerPeriod, index, vacationCapHours)
	sick := accruedHours(sickPerPeriod, index, sickCapHours)

	return &LeaveBalances{
		VacationAccrued: vacation,
		VacationUsed:    decimal.Zero,
		VacationBalance: vacation,
		SickAccrued:     sick,
		SickUsed:        decimal.Zero,
		SickBalance:     sick,
	}
}

func accruedHours(perPeriod, periods, capHours decimal.Decimal) decimal.Decimal {
	accrued := perPeriod.Mul(periods).Round(2)
	if accrued.GreaterThan(capHours) {
		return capHours
	}
	return accrued
}
