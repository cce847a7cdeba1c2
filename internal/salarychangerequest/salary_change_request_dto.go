package salarychangerequest

import "encoding/json"

type CreateSalaryChangeRequest struct {
	EmployeeID    string          `json:"employee_id" binding:"required"`
	ProposedItems json.RawMessage `json:"proposed_items" binding:"required"`
	Reason        string          `json:"reason"`
}

type ListSalaryChangeFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

type SalaryChangeResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	ProposedItems json.RawMessage `json:"proposed_items"`
	Reason        string          `json:"reason,omitempty"`
	Status        string          `json:"status"`
	RequestedBy   string          `json:"requested_by"`
	DecidedBy     string          `json:"decided_by,omitempty"`
	DecidedAt     string          `json:"decided_at,omitempty"`
	CreatedAt     string          `json:"created_at"`

	// Projected totals for the proposed configuration, so reviewers see the
	// net effect without opening the item list.
	ProjectedEarnings   float64 `json:"projected_earnings"`
	ProjectedDeductions float64 `json:"projected_deductions"`
	ProjectedNet        float64 `json:"projected_net"`
}
