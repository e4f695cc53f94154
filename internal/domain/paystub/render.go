package paystub

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// CompanyInfo is printed in the statement header.
type CompanyInfo struct {
	Name                string
	Address             string
	PayrollContactEmail string
}

// PaymentInfo is printed in the payment block.
type PaymentInfo struct {
	Method         string
	BankNameMasked string
	Status         string
}

// RenderMeta identifies one rendered statement.
type RenderMeta struct {
	PaystubID   string
	GeneratedAt time.Time
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

func lastNameToken(employeeName string) string {
	parts := strings.Fields(strings.TrimSpace(employeeName))
	last := ""
	if len(parts) > 0 {
		last = parts[len(parts)-1]
	}
	cleaned := strings.ToUpper(nonAlnum.ReplaceAllString(last, ""))
	if cleaned == "" {
		return "EMPLOYEE"
	}
	return cleaned
}

// BuildFilename returns the document name for a generated paystub:
// KYRONIX_PAYSTUB_<LASTNAME>_<YYYYMMDD>.pdf.
func BuildFilename(employeeName string, payDate time.Time) string {
	return fmt.Sprintf("KYRONIX_PAYSTUB_%s_%s.pdf", lastNameToken(employeeName), payDate.Format("20060102"))
}

// Renderer produces the earnings-statement PDF for a draft. The engine treats
// rendering as an opaque collaborator; this is the in-process implementation.
type Renderer struct {
	Company CompanyInfo
}

func NewRenderer(company CompanyInfo) *Renderer {
	return &Renderer{Company: company}
}

func money(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

func optional(v *decimal.Decimal) string {
	if v == nil {
		return "-"
	}
	return v.StringFixed(2)
}

// Render lays the draft out as an earnings statement: header, employee and
// payment blocks, earnings and deductions tables with current and YTD
// columns, net-pay box, YTD summary and, for salaried staff, leave balances.
func (r *Renderer) Render(draft Draft, payment PaymentInfo, meta RenderMeta) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(r.Company.Name+" Paystub", false)
	pdf.SetAuthor(r.Company.Name, false)
	pdf.SetSubject("Paystub ID: "+meta.PaystubID, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 40

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth/2, 8, r.Company.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth/2, 8, "EARNINGS STATEMENT", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth/2, 5, r.Company.Address, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/2, 5, "Pay date: "+draft.Period.PayDate.Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentWidth/2, 5, "Payroll contact: "+r.Company.PayrollContactEmail, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/2, 5, fmt.Sprintf("Pay period: %s to %s",
		draft.Period.Start.Format("2006-01-02"), draft.Period.End.Format("2006-01-02")), "", 1, "R", false, 0, "")
	pdf.Ln(4)
	pdf.Line(20, pdf.GetY(), pageWidth-20, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 5, "Employee", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, draft.EmployeeName, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 5, draft.JobTitle+" - "+draft.Department, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 5, "Payment", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, "Pay frequency: Bi-Weekly", "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 5, "Payment method: "+payment.Method, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 5, "Payment status: "+payment.Status, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 5, "Bank: "+payment.BankNameMasked, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	descWidth := contentWidth - 4*25
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 5, "Earnings", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descWidth, 5, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, "Hours", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, "Current", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, "YTD", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range draft.Earnings {
		pdf.CellFormat(descWidth, 5, line.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, optional(line.Hours), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, optional(line.Rate), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, money(line.Current), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, money(line.YTD), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descWidth+50, 5, "Gross Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, money(draft.Totals.GrossCurrent), "T", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, money(draft.Totals.GrossYTD), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 5, "Deductions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descWidth+50, 5, "Deduction", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, "Current", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, "YTD", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range draft.Deductions {
		pdf.CellFormat(descWidth+50, 5, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, money(item.Current), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, money(item.YTD), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descWidth+50, 5, "Total Deductions", "T", 0, "L", false, 0, "")
	pdf.CellFormat(25, 5, money(draft.Totals.DeductionsCurrent), "T", 0, "R", false, 0, "")
	pdf.CellFormat(25, 5, money(draft.Totals.DeductionsYTD), "T", 1, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth/2, 10, "Net Pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/2, 10, money(draft.Totals.NetCurrent), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 5, "Year-to-Date Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth/3, 5, "Gross: "+money(draft.Totals.GrossYTD), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/3, 5, "Deductions: "+money(draft.Totals.DeductionsYTD), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/3, 5, "Net: "+money(draft.Totals.NetYTD), "", 1, "L", false, 0, "")

	if draft.Leave != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth, 5, "Leave Balances (Hours)", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(descWidth+25, 5, "Type", "B", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, "Accrued", "B", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, "Used", "B", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, "Balance", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(descWidth+25, 5, "Vacation", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.VacationAccrued.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.VacationUsed.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.VacationBalance.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(descWidth+25, 5, "Sick", "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.SickAccrued.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.SickUsed.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 5, draft.Leave.SickBalance.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Generated %s | %s",
		meta.GeneratedAt.UTC().Format(time.RFC3339), meta.PaystubID), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
