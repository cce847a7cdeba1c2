package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"
)

// WritePayrollCSV exports the payroll collection in the column layout the
// dashboard's download button expects.
func WritePayrollCSV(w io.Writer, records []normalize.PayrollRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"payroll_id", "employee_id", "month", "gross_salary", "total_deductions", "net_salary"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.EmployeeID,
			r.Month,
			strconv.FormatFloat(r.GrossSalary, 'f', 2, 64),
			strconv.FormatFloat(r.TotalDeductions, 'f', 2, 64),
			strconv.FormatFloat(r.NetSalary, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
