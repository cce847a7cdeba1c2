package salary

// Attendance is the optional attendance summary on a generated slip.
type Attendance struct {
	PresentDays    float64 `json:"presentDays"`
	PaidLeaves     float64 `json:"paidLeaves"`
	HalfDays       float64 `json:"halfDays"`
	UnpaidLeaves   float64 `json:"unpaidLeaves"`
	LeaveDeduction float64 `json:"leaveDeductionAmount"`
}

// Slip is a server-computed, month-scoped payslip read model. It is consumed
// as-is: tax policy lives upstream and this layer never re-derives it.
type Slip struct {
	EmployeeID      string      `json:"employeeId"`
	Month           string      `json:"month"`
	GrossSalary     float64     `json:"grossSalary"`
	TotalDeductions float64     `json:"totalDeductions"`
	TaxAmount       float64     `json:"TaxAmount"`
	NetSalary       float64     `json:"netSalary"`
	Attendance      *Attendance `json:"attendance,omitempty"`
}

// SlipSummary is the display shape shared by generated slips and previews.
type SlipSummary struct {
	GrossSalary     float64 `json:"grossSalary"`
	TotalDeductions float64 `json:"totalDeductions"`
	TaxAmount       float64 `json:"taxAmount"`
	NetSalary       float64 `json:"netSalary"`
}

// Summarize passes a generated slip's precomputed figures through untouched.
func Summarize(s *Slip) SlipSummary {
	if s == nil {
		return SlipSummary{}
	}
	return SlipSummary{
		GrossSalary:     s.GrossSalary,
		TotalDeductions: s.TotalDeductions,
		TaxAmount:       s.TaxAmount,
		NetSalary:       s.NetSalary,
	}
}

// PreviewSummary derives a pre-generation approximation from configured line
// items. It excludes tax and attendance deductions, which only exist on a
// generated slip; callers must label it as a preview.
func PreviewSummary(cfg *Config) SlipSummary {
	t := CalculateTotals(cfg)
	return SlipSummary{
		GrossSalary:     t.Earnings,
		TotalDeductions: t.Deductions,
		TaxAmount:       0,
		NetSalary:       t.Net,
	}
}
