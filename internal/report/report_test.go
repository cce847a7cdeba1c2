package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/report"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"

	"github.com/stretchr/testify/assert"
)

func TestRenderPayslipPDF(t *testing.T) {
	doc := report.PayslipDocument{
		EmployeeID:   "e1",
		EmployeeName: "Asha Rao",
		Month:        "2026-08",
		Summary: salary.SlipSummary{
			GrossSalary:     60000,
			TotalDeductions: 8000,
			TaxAmount:       4000,
			NetSalary:       48000,
		},
		Attendance: &salary.Attendance{PresentDays: 20, UnpaidLeaves: 1, LeaveDeduction: 2000},
	}

	pdfBytes, err := report.RenderPayslipPDF(doc)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(pdfBytes), 500)
}

func TestRenderPayslipPDFPreview(t *testing.T) {
	doc := report.PayslipDocument{EmployeeID: "e2", Month: "2026-08", Preview: true}

	pdfBytes, err := report.RenderPayslipPDF(doc)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestWritePayrollCSV(t *testing.T) {
	records := []normalize.PayrollRecord{
		{ID: "p1", EmployeeID: "e1", Month: "2026-08", GrossSalary: 60000, TotalDeductions: 8000, NetSalary: 52000},
		{ID: "p2", EmployeeID: "e2", Month: "2026-08", NetSalary: 30000},
	}

	var buf bytes.Buffer
	err := report.WritePayrollCSV(&buf, records)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "payroll_id,employee_id,month,gross_salary,total_deductions,net_salary", lines[0])
	assert.Contains(t, lines[1], "52000.00")
	assert.Contains(t, lines[2], "30000.00")
}
