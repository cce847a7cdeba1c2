package report

import (
	"bytes"
	"fmt"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"

	"github.com/jung-kurt/gofpdf"
)

// PayslipDocument is the render input. It carries plain values so callers
// decide how their view state maps onto the page.
type PayslipDocument struct {
	EmployeeID   string
	EmployeeName string
	Month        string
	Summary      salary.SlipSummary
	Attendance   *salary.Attendance
	Preview      bool
}

// RenderPayslipPDF lays out one employee's payslip on an A4 page. Preview
// documents are watermarked as such so a pre-generation figure can never be
// mistaken for a generated one.
func RenderPayslipPDF(doc PayslipDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if doc.EmployeeName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", doc.EmployeeName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", doc.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", doc.Month))
	pdf.Ln(7)

	label := "Generated"
	if doc.Preview {
		label = "Preview (excludes tax and attendance deductions)"
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", label))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", doc.Summary.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", doc.Summary.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %.2f", doc.Summary.TaxAmount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", doc.Summary.NetSalary))

	if att := doc.Attendance; att != nil {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Attendance")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Present: %.1f  Paid leaves: %.1f  Half days: %.1f  Unpaid: %.1f",
			att.PresentDays, att.PaidLeaves, att.HalfDays, att.UnpaidLeaves))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Leave deduction: %.2f", att.LeaveDeduction))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
