package paystub

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFederalRateFor(t *testing.T) {
	tables := TaxYear2025()

	tests := []struct {
		pay  string
		rate string
	}{
		{"0", "10"},
		{"11925", "10"},
		{"11926", "12"},
		{"50000", "22"},
		{"130000", "24"},
		{"200000", "32"},
		{"300000", "35"},
		{"700000", "37"},
	}
	for _, tc := range tests {
		got := tables.FederalRateFor(d(tc.pay))
		assert.True(t, d(tc.rate).Equal(got), "pay %s: want %s got %s", tc.pay, tc.rate, got)
	}
}

func TestStatePITTax(t *testing.T) {
	tables := TaxYear2025()

	tests := []struct {
		wages string
		tax   string
	}{
		{"0", "0"},
		{"-100", "0"},
		{"10756", "107.56"},
		// 992.26 + 6% of (50000 - 40245)
		{"50000", "1577.56"},
		// 3108.72 + 9.3% of (130000 - 70606)
		{"130000", "8632.36"},
	}
	for _, tc := range tests {
		got := tables.StatePITTax(d(tc.wages))
		assert.True(t, d(tc.tax).Equal(got), "wages %s: want %s got %s", tc.wages, tc.tax, got)
	}
}

func TestStatePITEffectiveRate(t *testing.T) {
	tables := TaxYear2025()

	assert.True(t, tables.StatePITEffectiveRate(decimal.Zero).IsZero())

	// 1577.56 / 50000 = 3.1551...%
	got := tables.StatePITEffectiveRate(d("50000"))
	assert.True(t, d("3.16").Equal(got), "got %s", got)
}

func TestSDIRate(t *testing.T) {
	assert.True(t, d("1.2").Equal(TaxYear2025().SDIRate()))
}
