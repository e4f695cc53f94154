package verification

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// LetterInput is everything the verification letter needs, already resolved.
type LetterInput struct {
	EmployeeName     string
	JobTitle         string
	Department       string
	EmploymentStatus string
	HireDate         time.Time

	VerifierName    string
	VerifierCompany string
	Purpose         string

	IncludeSalary bool
	SalaryAmount  decimal.Decimal

	CompanyName         string
	CompanyAddress      string
	PayrollContactEmail string

	RequestID   string
	GeneratedAt time.Time
}

// LetterFilename follows the document convention:
// KYRONIX_EMPLOYMENT_VERIFICATION_<LASTNAME>_<YYYYMMDD>.pdf.
func LetterFilename(employeeLastName string, generatedAt time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(employeeLastName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	last := b.String()
	if last == "" {
		last = "EMPLOYEE"
	}
	return fmt.Sprintf("KYRONIX_EMPLOYMENT_VERIFICATION_%s_%s.pdf", last, generatedAt.Format("20060102"))
}

// RenderLetter produces the employment-verification letter PDF.
func RenderLetter(input LetterInput) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(input.CompanyName+" Employment Verification", false)
	pdf.SetAuthor(input.CompanyName, false)
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 50

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentWidth, 8, input.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, input.CompanyAddress, "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.Line(25, pdf.GetY(), pageWidth-25, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 7, "EMPLOYMENT VERIFICATION", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 6, input.GeneratedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	addressee := input.VerifierName
	if input.VerifierCompany != "" {
		addressee += ", " + input.VerifierCompany
	}
	pdf.CellFormat(contentWidth, 6, "To: "+addressee, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	body := fmt.Sprintf(
		"This letter confirms that %s is employed by %s as %s in the %s department, with a hire date of %s. Their current employment status is %s.",
		input.EmployeeName, input.CompanyName, input.JobTitle, input.Department,
		input.HireDate.Format("January 2, 2006"), strings.ReplaceAll(input.EmploymentStatus, "_", " "))
	if input.IncludeSalary {
		body += fmt.Sprintf(" Their current annual compensation is $%s.", input.SalaryAmount.StringFixed(2))
	}
	body += fmt.Sprintf(" This verification was requested for the following purpose: %s.", input.Purpose)

	pdf.MultiCell(contentWidth, 6, body, "", "L", false)
	pdf.Ln(6)

	pdf.MultiCell(contentWidth, 6, fmt.Sprintf(
		"Questions about this letter may be directed to %s.", input.PayrollContactEmail), "", "L", false)
	pdf.Ln(10)

	pdf.CellFormat(contentWidth, 6, "Sincerely,", "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 6, input.CompanyName+" Payroll", "", 1, "L", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Reference: %s | Generated %s",
		input.RequestID, input.GeneratedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
