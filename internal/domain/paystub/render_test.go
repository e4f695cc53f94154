package paystub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilename(t *testing.T) {
	payDate := date(2026, time.January, 2)

	tests := []struct {
		name string
		want string
	}{
		{"Dana Okafor", "KYRONIX_PAYSTUB_OKAFOR_20260102.pdf"},
		{"Ada Lovelace-Smith", "KYRONIX_PAYSTUB_LOVELACESMITH_20260102.pdf"},
		{"Prince", "KYRONIX_PAYSTUB_PRINCE_20260102.pdf"},
		{"  ", "KYRONIX_PAYSTUB_EMPLOYEE_20260102.pdf"},
		{"José Muñoz!!", "KYRONIX_PAYSTUB_MUOZ_20260102.pdf"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, BuildFilename(tc.name, payDate))
	}
}

func TestRenderProducesPDF(t *testing.T) {
	drafts, _, err := NewEngine(TaxYear2025()).GenerateAll(salaryProfile("130000"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	renderer := NewRenderer(CompanyInfo{
		Name:                "Kyronix LLC",
		Address:             "2261 Market Street, San Francisco, CA 94114",
		PayrollContactEmail: "payroll@kyronix.ai",
	})

	pdf, err := renderer.Render(drafts[0],
		PaymentInfo{Method: "Direct Deposit", BankNameMasked: "****1234", Status: "Paid"},
		RenderMeta{PaystubID: "stub-1", GeneratedAt: time.Now().UTC()})

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
