package verification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterFilename(t *testing.T) {
	generated := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "KYRONIX_EMPLOYMENT_VERIFICATION_OKAFOR_20260314.pdf", LetterFilename("Okafor", generated))
	assert.Equal(t, "KYRONIX_EMPLOYMENT_VERIFICATION_OBRIEN_20260314.pdf", LetterFilename("O'Brien", generated))
	assert.Equal(t, "KYRONIX_EMPLOYMENT_VERIFICATION_EMPLOYEE_20260314.pdf", LetterFilename("", generated))
}

func TestRenderLetter(t *testing.T) {
	pdf, err := RenderLetter(LetterInput{
		EmployeeName:     "Dana Okafor",
		JobTitle:         "Staff Engineer",
		Department:       "Engineering",
		EmploymentStatus: "active",
		HireDate:         time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC),

		VerifierName:    "First Bay Mortgage",
		VerifierCompany: "First Bay",
		Purpose:         "mortgage application",

		IncludeSalary: true,
		SalaryAmount:  decimal.RequireFromString("130000"),

		CompanyName:         "Kyronix LLC",
		CompanyAddress:      "2261 Market Street, San Francisco, CA 94114",
		PayrollContactEmail: "payroll@kyronix.ai",

		RequestID:   "req-1",
		GeneratedAt: time.Now().UTC(),
	})

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
