package paystub

import "github.com/shopspring/decimal"

// TaxTableProvider supplies the withholding tables for one tax year and
// jurisdiction. Swapping years or jurisdictions means substituting the
// provider, not the computation.
type TaxTableProvider interface {
	// FederalRateFor returns the flat bracket rate (percent) for an
	// annualized pay figure, or zero when no bracket matches.
	FederalRateFor(annualizedPay decimal.Decimal) decimal.Decimal

	// StatePITTax returns the cumulative progressive state income tax owed
	// on annual taxable wages, rounded to currency precision.
	StatePITTax(annualTaxableWages decimal.Decimal) decimal.Decimal

	// StatePITEffectiveRate returns the blended percentage the progressive
	// tax works out to, or zero for non-positive wages.
	StatePITEffectiveRate(annualTaxableWages decimal.Decimal) decimal.Decimal

	// SDIRate returns the flat state disability rate (percent).
	SDIRate() decimal.Decimal
}

// FederalBracket taxes the whole annualized amount at a single rate. A nil Max
// marks the open-ended top bracket.
type FederalBracket struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal // percent
}

// StateBracket is a progressive bracket: tax owed is Base plus Rate percent of
// the wages above Min.
type StateBracket struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Base decimal.Decimal
	Rate decimal.Decimal // percent
}

// StaticTaxTable is a fixed bracket table implementing TaxTableProvider.
type StaticTaxTable struct {
	Federal    []FederalBracket
	State      []StateBracket
	Disability decimal.Decimal // percent
}

var hundred = decimal.NewFromInt(100)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	out := d(v)
	return &out
}

// TaxYear2025 returns the supported table: 2025 federal single-filer brackets
// and California single-filer progressive brackets with a 1.2% SDI rate.
func TaxYear2025() *StaticTaxTable {
	return &StaticTaxTable{
		Federal: []FederalBracket{
			{Min: d("0"), Max: dp("11925"), Rate: d("10")},
			{Min: d("11925"), Max: dp("48475"), Rate: d("12")},
			{Min: d("48475"), Max: dp("103350"), Rate: d("22")},
			{Min: d("103350"), Max: dp("197300"), Rate: d("24")},
			{Min: d("197300"), Max: dp("250525"), Rate: d("32")},
			{Min: d("250525"), Max: dp("626350"), Rate: d("35")},
			{Min: d("626350"), Max: nil, Rate: d("37")},
		},
		State: []StateBracket{
			{Min: d("0"), Max: dp("10756"), Base: d("0"), Rate: d("1")},
			{Min: d("10756"), Max: dp("25499"), Base: d("107.56"), Rate: d("2")},
			{Min: d("25499"), Max: dp("40245"), Base: d("402.42"), Rate: d("4")},
			{Min: d("40245"), Max: dp("55866"), Base: d("992.26"), Rate: d("6")},
			{Min: d("55866"), Max: dp("70606"), Base: d("1929.52"), Rate: d("8")},
			{Min: d("70606"), Max: dp("360659"), Base: d("3108.72"), Rate: d("9.3")},
			{Min: d("360659"), Max: dp("432787"), Base: d("30083.65"), Rate: d("10.3")},
			{Min: d("432787"), Max: dp("721314"), Base: d("37512.83"), Rate: d("11.3")},
			{Min: d("721314"), Max: nil, Base: d("70116.38"), Rate: d("12.3")},
		},
		Disability: d("1.2"),
	}
}

func (t *StaticTaxTable) FederalRateFor(annualizedPay decimal.Decimal) decimal.Decimal {
	for _, bracket := range t.Federal {
		if annualizedPay.LessThan(bracket.Min) {
			continue
		}
		if bracket.Max == nil || annualizedPay.LessThanOrEqual(*bracket.Max) {
			return bracket.Rate
		}
	}
	return decimal.Zero
}

func (t *StaticTaxTable) StatePITTax(annualTaxableWages decimal.Decimal) decimal.Decimal {
	if annualTaxableWages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for _, bracket := range t.State {
		if annualTaxableWages.LessThan(bracket.Min) {
			continue
		}
		if bracket.Max == nil || annualTaxableWages.LessThanOrEqual(*bracket.Max) {
			over := annualTaxableWages.Sub(bracket.Min)
			return round(bracket.Base.Add(over.Mul(bracket.Rate).Div(hundred)))
		}
	}
	return decimal.Zero
}

func (t *StaticTaxTable) StatePITEffectiveRate(annualTaxableWages decimal.Decimal) decimal.Decimal {
	if annualTaxableWages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	tax := t.StatePITTax(annualTaxableWages)
	return tax.Div(annualTaxableWages).Mul(hundred).Round(2)
}

func (t *StaticTaxTable) SDIRate() decimal.Decimal {
	return t.Disability
}
