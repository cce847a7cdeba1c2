package salarychangerequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// SalaryChangeRequest is the approval-queue row for a proposed salary
// configuration. EmployeeID is the upstream payroll API identifier, not a
// local foreign key, so it stays a plain string.
type SalaryChangeRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     string    `gorm:"index"`
	EmployeeID    string    `gorm:"index"`
	ProposedItems []byte    `gorm:"type:jsonb"`
	Reason        string
	Status        string `gorm:"index"`
	RequestedBy   string
	DecidedBy     *string
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
