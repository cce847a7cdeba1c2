package salarychangerequest_test

import (
	"context"
	"testing"
	"time"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoryCreate_JoinsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO salary_change_requests").
		WithArgs(
			sqlmock.AnyArg(), "comp-1", "emp-1", []byte(`[]`),
			"annual revision", salarychangerequest.StatusPending, "hr-1",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := salarychangerequest.NewRepository(nil).WithTx(tx)
	req := &salarychangerequest.SalaryChangeRequest{
		ID:            uuid.New(),
		CompanyID:     "comp-1",
		EmployeeID:    "emp-1",
		ProposedItems: []byte(`[]`),
		Reason:        "annual revision",
		Status:        salarychangerequest.StatusPending,
		RequestedBy:   "hr-1",
	}

	require.NoError(t, repo.Create(context.Background(), req))
	assert.False(t, req.CreatedAt.IsZero())
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDecide_LocksRowAndUpdatesInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	now := time.Now().UTC()

	columns := []string{
		"id", "company_id", "employee_id", "proposed_items", "reason",
		"status", "requested_by", "decided_by", "decided_at", "created_at", "updated_at",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(id.String(), "comp-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id.String(), "comp-1", "emp-1", []byte(`[]`), "",
			salarychangerequest.StatusPending, "hr-1", nil, nil, now, now,
		))
	mock.ExpectExec("UPDATE salary_change_requests").
		WithArgs(salarychangerequest.StatusApproved, sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := salarychangerequest.NewRepository(nil).WithTx(tx)

	found, err := repo.FindByIDAndCompany(context.Background(), "comp-1", id.String())
	require.NoError(t, err)
	assert.Equal(t, salarychangerequest.StatusPending, found.Status)
	assert.Nil(t, found.DecidedBy)

	decidedBy := "admin-1"
	found.Status = salarychangerequest.StatusApproved
	found.DecidedBy = &decidedBy
	found.DecidedAt = &now

	require.NoError(t, repo.UpdateDecision(context.Background(), found))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByID_TxMissingRowMapsToRecordNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("missing", "comp-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := salarychangerequest.NewRepository(nil).WithTx(tx)

	_, err = repo.FindByIDAndCompany(context.Background(), "comp-1", "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
