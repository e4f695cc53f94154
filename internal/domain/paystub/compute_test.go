package paystub

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salaryProfile(annual string) CompensationProfile {
	return CompensationProfile{
		EmployeeID:        "emp-1",
		EmployeeName:      "Dana Okafor",
		JobTitle:          "Staff Engineer",
		Department:        "Engineering",
		PayType:           PayTypeSalary,
		AnnualSalary:      d(annual),
		HireDate:          date(2024, time.June, 7),
		MostRecentPayDate: date(2025, time.December, 26),
		PeriodCount:       1,
	}
}

func TestSalaryExampleScenario(t *testing.T) {
	profile := CompensationProfile{
		EmployeeName:      "Dana Okafor",
		PayType:           PayTypeSalary,
		AnnualSalary:      d("130000"),
		HireDate:          date(2025, time.January, 3),
		MostRecentPayDate: date(2026, time.January, 2), // a Friday
		PeriodCount:       1,
	}

	drafts, run, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Zero(t, run.Skipped())
	assert.Empty(t, run.Warnings())

	draft := drafts[0]
	assert.Equal(t, date(2025, time.December, 28), draft.Period.End)
	assert.Equal(t, date(2025, time.December, 15), draft.Period.Start)

	require.Len(t, draft.Earnings, 1)
	line := draft.Earnings[0]
	assert.Equal(t, EarningRegular, line.Description)
	require.NotNil(t, line.Hours)
	require.NotNil(t, line.Rate)
	assert.True(t, d("80").Equal(*line.Hours))
	assert.True(t, d("62.50").Equal(*line.Rate), "got %s", line.Rate)
	assert.True(t, d("5000.00").Equal(line.Current), "got %s", line.Current)

	assert.True(t, draft.Totals.NetCurrent.Equal(draft.Totals.GrossCurrent.Sub(draft.Totals.DeductionsCurrent)))
	require.NotNil(t, draft.Leave)
	assert.True(t, d("3.08").Equal(draft.Leave.VacationBalance))
}

func TestSalaryYearReconciliation(t *testing.T) {
	// 123456.78 does not divide evenly by 26; the final period absorbs the
	// rounding drift so the year's gross matches the annual salary exactly.
	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(salaryProfile("123456.78"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.True(t, d("123456.78").Equal(draft.Totals.GrossYTD), "got %s", draft.Totals.GrossYTD)
	assert.True(t, d("4748.28").Equal(draft.Totals.GrossCurrent), "got %s", draft.Totals.GrossCurrent)
}

func TestSalaryTrueUpWithBonus(t *testing.T) {
	profile := salaryProfile("123456.78")
	profile.BonusRate = d("10")

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	require.Len(t, draft.Earnings, 2)
	assert.Equal(t, EarningRegular, draft.Earnings[0].Description)
	assert.True(t, d("4748.28").Equal(draft.Earnings[0].Current), "got %s", draft.Earnings[0].Current)

	bonus := draft.Earnings[1]
	assert.Equal(t, EarningBonus, bonus.Description)
	assert.Nil(t, bonus.Hours)
	assert.True(t, d("12345.68").Equal(bonus.Current), "got %s", bonus.Current)
}

func TestStatePITAdditivity(t *testing.T) {
	tables := TaxYear2025()
	profile := salaryProfile("130000")
	profile.Deductions.HealthPlan = FlatDeduction{Enabled: true, Amount: d("150")}
	profile.Deductions.StateIncomeTax = true

	drafts, _, err := NewEngine(tables).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	var pitYTD decimal.Decimal
	for _, item := range drafts[0].Deductions {
		if item.Name == DeductionStatePIT {
			pitYTD = item.YTD
		}
	}

	// 26 periods of (5000 - 150) taxable wages.
	annualTaxable := d("126100")
	assert.True(t, tables.StatePITTax(annualTaxable).Equal(pitYTD),
		"want %s got %s", tables.StatePITTax(annualTaxable), pitYTD)
}

func TestNetInvariantWithFullDeductions(t *testing.T) {
	profile := salaryProfile("130000")
	profile.Deductions = Deductions{
		Retirement:      RateDeduction{Enabled: true, Rate: d("6")},
		HealthPlan:      FlatDeduction{Enabled: true, Amount: d("150")},
		FederalTax:      RateDeduction{Enabled: true}, // bracket default
		SocialSecurity:  RateDeduction{Enabled: true}, // 6.2 default
		Medicare:        RateDeduction{Enabled: true}, // 1.45 default
		StateDisability: RateDeduction{Enabled: true}, // table default
		StateIncomeTax:  true,
	}

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	totals := drafts[0].Totals
	assert.True(t, totals.NetCurrent.Equal(totals.GrossCurrent.Sub(totals.DeductionsCurrent)))
	assert.True(t, totals.NetYTD.Equal(totals.GrossYTD.Sub(totals.DeductionsYTD)))

	sum := decimal.Zero
	for _, item := range drafts[0].Deductions {
		sum = sum.Add(item.Current)
	}
	assert.True(t, totals.DeductionsCurrent.Equal(sum.Round(2)))
}

func TestFederalDefaultRateFromBracket(t *testing.T) {
	profile := salaryProfile("130000")
	profile.Deductions.FederalTax = RateDeduction{Enabled: true}

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	require.Len(t, drafts[0].Deductions, 1)
	federal := drafts[0].Deductions[0]
	assert.Equal(t, DeductionFederalTax, federal.Name)
	// 130000 annualized lands in the 24% bracket: 5000 * 24%.
	assert.True(t, d("1200.00").Equal(federal.Current), "got %s", federal.Current)
}

func TestHourlyOvertimeSplit(t *testing.T) {
	profile := CompensationProfile{
		EmployeeName:      "Sam Reyes",
		PayType:           PayTypeHourly,
		HourlyRate:        d("40"),
		HoursPerPeriod:    d("90"),
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       1,
	}

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	require.Len(t, draft.Earnings, 2)

	regular := draft.Earnings[0]
	assert.Equal(t, EarningRegular, regular.Description)
	assert.True(t, d("80").Equal(*regular.Hours))
	assert.True(t, d("3200.00").Equal(regular.Current))

	overtime := draft.Earnings[1]
	assert.Equal(t, EarningOvertime, overtime.Description)
	assert.True(t, d("10").Equal(*overtime.Hours))
	assert.True(t, d("60.00").Equal(*overtime.Rate), "time-and-a-half of 40, got %s", overtime.Rate)
	assert.True(t, d("600.00").Equal(overtime.Current))

	assert.True(t, d("3800.00").Equal(draft.Totals.GrossCurrent))
	assert.Nil(t, draft.Leave)
}

func TestContractorExclusions(t *testing.T) {
	profile := CompensationProfile{
		EmployeeName:      "Lin Baptiste",
		PayType:           PayTypeContractor,
		HourlyRate:        d("100"),
		HoursPerPeriod:    d("50"),
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       1,
		Deductions: Deductions{
			// Withholding toggles are all on; none of them may apply.
			Retirement:      RateDeduction{Enabled: true, Rate: d("6")},
			HealthPlan:      FlatDeduction{Enabled: true, Amount: d("150")},
			ContractorFee:   RateDeduction{Enabled: true, Rate: d("5")},
			FederalTax:      RateDeduction{Enabled: true},
			SocialSecurity:  RateDeduction{Enabled: true},
			Medicare:        RateDeduction{Enabled: true},
			StateDisability: RateDeduction{Enabled: true},
			StateIncomeTax:  true,
		},
	}

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	require.Len(t, draft.Earnings, 1)
	assert.Equal(t, EarningContractor, draft.Earnings[0].Description)
	assert.True(t, d("5000.00").Equal(draft.Totals.GrossCurrent))

	require.Len(t, draft.Deductions, 1)
	assert.Equal(t, DeductionContractorFee, draft.Deductions[0].Name)
	assert.True(t, d("250.00").Equal(draft.Deductions[0].Current))
	assert.Nil(t, draft.Leave)
}

func TestRetirementOnlyReducesFederalBase(t *testing.T) {
	profile := salaryProfile("130000")
	profile.Deductions = Deductions{
		Retirement:     RateDeduction{Enabled: true, Rate: d("10")},
		FederalTax:     RateDeduction{Enabled: true, Rate: d("20")},
		SocialSecurity: RateDeduction{Enabled: true},
	}

	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	byName := map[string]decimal.Decimal{}
	for _, item := range drafts[0].Deductions {
		byName[item.Name] = item.Current
	}

	// 401(k) of 500 comes out of the 5000 federal base, not the FICA base.
	assert.True(t, d("500.00").Equal(byName[DeductionRetirement]))
	assert.True(t, d("900.00").Equal(byName[DeductionFederalTax]), "20%% of 4500, got %s", byName[DeductionFederalTax])
	assert.True(t, d("310.00").Equal(byName[DeductionSocialSec]), "6.2%% of 5000, got %s", byName[DeductionSocialSec])
}

func TestHiredAfterTargetYieldsNoDraft(t *testing.T) {
	profile := CompensationProfile{
		EmployeeName:      "Noor Haddad",
		PayType:           PayTypeHourly,
		HourlyRate:        d("30"),
		HoursPerPeriod:    d("80"),
		HireDate:          date(2025, time.November, 1),
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       2,
	}

	drafts, run, err := NewEngine(TaxYear2025()).GenerateAll(profile)
	require.NoError(t, err)
	assert.Empty(t, drafts)
	assert.Equal(t, 2, run.Skipped())
}
