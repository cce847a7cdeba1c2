package events

import "time"

const SalaryChangeDecidedTopic = "payroll.salary_change.decided.v1"

type SalaryChangeDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	DecidedBy  string    `json:"decided_by"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
