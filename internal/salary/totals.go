package salary

import (
	"strings"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/normalize"
)

const (
	TypeEarnings   = "Earnings"
	TypeDeductions = "Deductions"
)

// HeadRef is the populated salary-head reference on a line item. The head's
// type may arrive under either field name depending on which endpoint
// populated it.
type HeadRef struct {
	ID              string `json:"_id"`
	Title           string `json:"title"`
	ShortName       string `json:"shortName"`
	HeadType        string `json:"HeadType"`
	SalaryHeadsType string `json:"SalaryHeadsType"`
	CalcMethod      string `json:"calculationMethod"`
	DependsOn       string `json:"dependsOn"`
}

// LineItem is one configured salary component. Amount fields are kept loose
// (any) because upstream sends them as numbers or numeric strings; coercion
// collapses everything unparseable to 0.
type LineItem struct {
	ApplicableValue any      `json:"applicableValue"`
	Amount          any      `json:"Amount"`
	Head            *HeadRef `json:"SalaryHeadId"`
}

// Config is one employee's salary configuration.
type Config struct {
	EmployeeID string     `json:"employeeId"`
	CompanyID  string     `json:"companyId"`
	Items      []LineItem `json:"SalaryHeads"`
}

type Totals struct {
	Earnings   float64 `json:"earnings"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
}

// CalculateTotals folds a configuration's line items into earnings,
// deductions and net. An absent configuration or item list is not an error:
// it is the zero summary. Net may be negative and is deliberately not
// clamped; deductions exceeding earnings is a signal to surface.
func CalculateTotals(cfg *Config) Totals {
	if cfg == nil || cfg.Items == nil {
		return Totals{}
	}

	var t Totals
	for _, item := range cfg.Items {
		amount := itemAmount(item)
		if strings.EqualFold(itemType(item), TypeDeductions) {
			t.Deductions += amount
		} else {
			t.Earnings += amount
		}
	}

	t.Net = t.Earnings - t.Deductions
	return t
}

// itemAmount resolves the numeric amount, trying applicableValue then Amount.
func itemAmount(item LineItem) float64 {
	if n, ok := normalize.ToNumber(item.ApplicableValue); ok {
		return n
	}
	if n, ok := normalize.ToNumber(item.Amount); ok {
		return n
	}
	return 0
}

// itemType resolves the effective type by dereferencing the head, trying
// HeadType then SalaryHeadsType. An unpopulated reference or unset type
// defaults to Earnings: an ambiguous component must never silently become a
// deduction.
func itemType(item LineItem) string {
	if item.Head == nil {
		return TypeEarnings
	}
	if item.Head.HeadType != "" {
		return item.Head.HeadType
	}
	if item.Head.SalaryHeadsType != "" {
		return item.Head.SalaryHeadsType
	}
	return TypeEarnings
}
