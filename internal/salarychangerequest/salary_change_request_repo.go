package salarychangerequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *SalaryChangeRequest) error
	FindAllByCompany(ctx context.Context, companyID string, status string) ([]SalaryChangeRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryChangeRequest, error)
	UpdateDecision(ctx context.Context, req *SalaryChangeRequest) error
	CountPendingByCompany(ctx context.Context, companyID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// Writes issued through WithTx run on the sql.Tx directly so they commit or
// roll back together with the outbox insert.
func (r *repository) Create(ctx context.Context, req *SalaryChangeRequest) error {
	if r.tx != nil {
		now := time.Now().UTC()
		req.CreatedAt = now
		req.UpdatedAt = now

		query := `
INSERT INTO salary_change_requests (
	id, company_id, employee_id, proposed_items, reason, status, requested_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
		_, err := r.tx.ExecContext(
			ctx, query,
			req.ID, req.CompanyID, req.EmployeeID, req.ProposedItems,
			req.Reason, req.Status, req.RequestedBy, req.CreatedAt, req.UpdatedAt,
		)
		return err
	}

	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, status string) ([]SalaryChangeRequest, error) {
	var requests []SalaryChangeRequest
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.Find(&requests).Error
	return requests, err
}

// FindByIDAndCompany inside a transaction locks the row, so two racing
// decisions on the same request serialize instead of both passing the
// pending-status check.
func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryChangeRequest, error) {
	if r.tx != nil {
		query := `
SELECT id, company_id, employee_id, proposed_items, reason, status, requested_by, decided_by, decided_at, created_at, updated_at
FROM salary_change_requests
WHERE id = $1 AND company_id = $2
FOR UPDATE
`
		var req SalaryChangeRequest
		err := r.tx.QueryRowContext(ctx, query, id, companyID).Scan(
			&req.ID,
			&req.CompanyID,
			&req.EmployeeID,
			&req.ProposedItems,
			&req.Reason,
			&req.Status,
			&req.RequestedBy,
			&req.DecidedBy,
			&req.DecidedAt,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &req, nil
	}

	var req SalaryChangeRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) UpdateDecision(ctx context.Context, req *SalaryChangeRequest) error {
	if r.tx != nil {
		query := `
UPDATE salary_change_requests
SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
WHERE id = $4
`
		_, err := r.tx.ExecContext(ctx, query, req.Status, req.DecidedBy, req.DecidedAt, req.ID)
		return err
	}

	return r.db.WithContext(ctx).
		Model(&SalaryChangeRequest{}).
		Where("id = ?", req.ID).
		Updates(map[string]any{
			"status":     req.Status,
			"decided_by": req.DecidedBy,
			"decided_at": req.DecidedAt,
		}).Error
}

func (r *repository) CountPendingByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SalaryChangeRequest{}).
		Where("company_id = ?", companyID).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}
