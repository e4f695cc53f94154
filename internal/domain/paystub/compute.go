package paystub

import (
	"time"

	"github.com/shopspring/decimal"
)

const periodsPerYear = 26

var (
	biweeklyPeriods = decimal.NewFromInt(periodsPerYear)
	workYearHours   = decimal.NewFromInt(2080)
	regularCapHours = decimal.NewFromInt(80)
	overtimeFactor  = decimal.RequireFromString("1.5")

	defaultSocialSecurityRate = decimal.RequireFromString("6.2")
	defaultMedicareRate       = decimal.RequireFromString("1.45")
)

// inYearPayDates walks backward from the target pay date in 14-day steps while
// the dates stay in the target's calendar year and the period end has not
// crossed the hire date, then returns them in chronological order.
func inYearPayDates(profile CompensationProfile, target time.Time) []time.Time {
	var dates []time.Time
	year := target.Year()
	for date := target; date.Year() == year; date = date.AddDate(0, 0, -periodSpacingDays) {
		if !profile.HireDate.IsZero() && periodFor(date).End.Before(profile.HireDate) {
			break
		}
		dates = append(dates, date)
	}
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates
}

// finalPeriodOfYear reports whether the next bi-weekly pay date rolls into the
// next calendar year.
func finalPeriodOfYear(payDate time.Time) bool {
	return payDate.AddDate(0, 0, periodSpacingDays).Year() != payDate.Year()
}

type currentLine struct {
	description string
	hours       *decimal.Decimal
	rate        *decimal.Decimal
	amount      decimal.Decimal
}

type currentDeduction struct {
	name   string
	amount decimal.Decimal
}

// earningsFor builds the current-period earnings lines. periodsInYear is the
// number of bi-weekly periods in the employee's year up to and including this
// one; it sizes the true-up at the final period so the year's gross reconciles
// to the annual salary.
func earningsFor(profile CompensationProfile, payDate time.Time, periodsInYear int) []currentLine {
	switch profile.PayType {
	case PayTypeSalary:
		base := round(profile.AnnualSalary.Div(biweeklyPeriods))
		amount := base
		final := finalPeriodOfYear(payDate)
		annualTotal := decimal.Zero
		if final {
			n := decimal.NewFromInt(int64(periodsInYear))
			annualTotal = round(profile.AnnualSalary.Div(biweeklyPeriods).Mul(n))
			amount = annualTotal.Sub(base.Mul(n.Sub(decimal.NewFromInt(1))))
		}
		hours := regularCapHours
		rate := round(profile.AnnualSalary.Div(workYearHours))
		lines := []currentLine{{
			description: EarningRegular,
			hours:       &hours,
			rate:        &rate,
			amount:      amount,
		}}
		if final && profile.BonusRate.GreaterThan(decimal.Zero) {
			lines = append(lines, currentLine{
				description: EarningBonus,
				amount:      round(profile.BonusRate.Mul(annualTotal).Div(hundred)),
			})
		}
		return lines

	case PayTypeHourly:
		worked := profile.HoursPerPeriod
		regular := worked
		if regular.GreaterThan(regularCapHours) {
			regular = regularCapHours
		}
		overtime := worked.Sub(regularCapHours)

		var lines []currentLine
		if regular.GreaterThan(decimal.Zero) {
			hours, rate := regular, profile.HourlyRate
			lines = append(lines, currentLine{
				description: EarningRegular,
				hours:       &hours,
				rate:        &rate,
				amount:      round(regular.Mul(profile.HourlyRate)),
			})
		}
		if overtime.GreaterThan(decimal.Zero) {
			otRate := round(profile.HourlyRate.Mul(overtimeFactor))
			hours := overtime
			lines = append(lines, currentLine{
				description: EarningOvertime,
				hours:       &hours,
				rate:        &otRate,
				amount:      round(overtime.Mul(otRate)),
			})
		}
		return lines

	case PayTypeContractor:
		hours, rate := profile.HoursPerPeriod, profile.HourlyRate
		return []currentLine{{
			description: EarningContractor,
			hours:       &hours,
			rate:        &rate,
			amount:      round(hours.Mul(rate)),
		}}
	}
	return nil
}

func sumLines(lines []currentLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.amount)
	}
	return total
}

// deductionsFor builds the current-period deduction lines in statement order
// and returns the period's PIT-taxable wages. Withholding categories never
// apply to contractors; disabled toggles are omitted entirely.
func deductionsFor(tables TaxTableProvider, profile CompensationProfile, gross, ytdPITTaxable decimal.Decimal) ([]currentDeduction, decimal.Decimal) {
	cfg := profile.Deductions
	var out []currentDeduction

	if profile.PayType == PayTypeContractor {
		if cfg.ContractorFee.Enabled {
			out = append(out, currentDeduction{
				name:   DeductionContractorFee,
				amount: round(gross.Mul(cfg.ContractorFee.Rate).Div(hundred)),
			})
		}
		return out, decimal.Zero
	}

	health := decimal.Zero
	if cfg.HealthPlan.Enabled {
		health = round(cfg.HealthPlan.Amount)
	}
	retirement := decimal.Zero
	if cfg.Retirement.Enabled && profile.PayType == PayTypeSalary {
		retirement = round(gross.Mul(cfg.Retirement.Rate).Div(hundred))
	}

	// Health premiums are pre-tax across the board; the 401(k) contribution
	// only reduces the federal base in this model.
	federalTaxable := clampZero(gross.Sub(health).Sub(retirement))
	ficaTaxable := clampZero(gross.Sub(health))
	pitTaxable := clampZero(gross.Sub(health))

	if cfg.Retirement.Enabled && profile.PayType == PayTypeSalary {
		out = append(out, currentDeduction{name: DeductionRetirement, amount: retirement})
	}
	if cfg.HealthPlan.Enabled {
		out = append(out, currentDeduction{name: DeductionHealthPlan, amount: health})
	}
	if cfg.FederalTax.Enabled {
		rate := cfg.FederalTax.Rate
		if rate.IsZero() {
			rate = tables.FederalRateFor(annualizedPay(profile, gross))
		}
		out = append(out, currentDeduction{
			name:   DeductionFederalTax,
			amount: round(federalTaxable.Mul(rate).Div(hundred)),
		})
	}
	if cfg.SocialSecurity.Enabled {
		rate := cfg.SocialSecurity.Rate
		if rate.IsZero() {
			rate = defaultSocialSecurityRate
		}
		out = append(out, currentDeduction{
			name:   DeductionSocialSec,
			amount: round(ficaTaxable.Mul(rate).Div(hundred)),
		})
	}
	if cfg.Medicare.Enabled {
		rate := cfg.Medicare.Rate
		if rate.IsZero() {
			rate = defaultMedicareRate
		}
		out = append(out, currentDeduction{
			name:   DeductionMedicare,
			amount: round(ficaTaxable.Mul(rate).Div(hundred)),
		})
	}
	if cfg.StateDisability.Enabled {
		rate := cfg.StateDisability.Rate
		if rate.IsZero() {
			rate = tables.SDIRate()
		}
		out = append(out, currentDeduction{
			name:   DeductionSDI,
			amount: round(ficaTaxable.Mul(rate).Div(hundred)),
		})
	}
	if cfg.StateIncomeTax {
		// Marginal delta of the cumulative progressive tax. Summed over the
		// year this reproduces the annual tax bill exactly, regardless of
		// bracket crossings mid-year.
		before := tables.StatePITTax(ytdPITTaxable)
		after := tables.StatePITTax(ytdPITTaxable.Add(pitTaxable))
		out = append(out, currentDeduction{
			name:   DeductionStatePIT,
			amount: clampZero(after.Sub(before)),
		})
	}

	return out, pitTaxable
}

func annualizedPay(profile CompensationProfile, gross decimal.Decimal) decimal.Decimal {
	if profile.PayType == PayTypeSalary {
		return profile.AnnualSalary
	}
	return round(gross.Mul(biweeklyPeriods))
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

// computeDraft reconstructs the employee's pay history for the calendar year
// of the target pay date and emits the draft for that period with
// year-to-date figures attached. It returns false when no valid in-year
// period exists for the target (hired after it, or zero pay).
func computeDraft(tables TaxTableProvider, profile CompensationProfile, target time.Time) (*Draft, bool) {
	if zeroPay(profile) {
		return nil, false
	}
	dates := inYearPayDates(profile, target)
	if len(dates) == 0 {
		return nil, false
	}

	ytdGross := decimal.Zero
	ytdDeductions := decimal.Zero
	ytdPITTaxable := decimal.Zero
	earningsYTD := map[string]decimal.Decimal{}
	deductionsYTD := map[string]decimal.Decimal{}

	var draft *Draft
	for index, payDate := range dates {
		lines := earningsFor(profile, payDate, len(dates))
		gross := round(sumLines(lines))
		deductions, pitTaxable := deductionsFor(tables, profile, gross, ytdPITTaxable)

		deducted := decimal.Zero
		for _, item := range deductions {
			deducted = deducted.Add(item.amount)
			deductionsYTD[item.name] = deductionsYTD[item.name].Add(item.amount)
		}
		deducted = round(deducted)
		for _, line := range lines {
			earningsYTD[line.description] = earningsYTD[line.description].Add(line.amount)
		}

		ytdGross = ytdGross.Add(gross)
		ytdDeductions = ytdDeductions.Add(deducted)
		ytdPITTaxable = ytdPITTaxable.Add(pitTaxable)

		if index != len(dates)-1 {
			continue
		}

		draft = &Draft{
			EmployeeID:   profile.EmployeeID,
			EmployeeName: profile.EmployeeName,
			JobTitle:     profile.JobTitle,
			Department:   profile.Department,
			Period:       periodFor(payDate),
			Totals: Totals{
				GrossCurrent:      gross,
				GrossYTD:          ytdGross,
				DeductionsCurrent: deducted,
				DeductionsYTD:     ytdDeductions,
				NetCurrent:        gross.Sub(deducted),
				NetYTD:            ytdGross.Sub(ytdDeductions),
			},
			Leave: leaveBalancesAt(profile.PayType, index+1),
		}
		for _, line := range lines {
			draft.Earnings = append(draft.Earnings, EarningsLine{
				Description: line.description,
				Hours:       line.hours,
				Rate:        line.rate,
				Current:     line.amount,
				YTD:         earningsYTD[line.description],
			})
		}
		for _, item := range deductions {
			draft.Deductions = append(draft.Deductions, DeductionLine{
				Name:    item.name,
				Current: item.amount,
				YTD:     deductionsYTD[item.name],
			})
		}
	}

	return draft, draft != nil
}

func zeroPay(profile CompensationProfile) bool {
	switch profile.PayType {
	case PayTypeSalary:
		return !profile.AnnualSalary.GreaterThan(decimal.Zero)
	default:
		return !profile.HourlyRate.GreaterThan(decimal.Zero) ||
			!profile.HoursPerPeriod.GreaterThan(decimal.Zero)
	}
}
