package salarychangerequest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/messaging/kafka"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest"
	salarychangerequesterrors "github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepository struct {
	withTxFn                func(tx *sql.Tx) salarychangerequest.Repository
	createFn                func(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error
	findAllByCompanyFn      func(ctx context.Context, companyID string, status string) ([]salarychangerequest.SalaryChangeRequest, error)
	findByIDAndCompanyFn    func(ctx context.Context, companyID string, id string) (*salarychangerequest.SalaryChangeRequest, error)
	updateDecisionFn        func(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error
	countPendingByCompanyFn func(ctx context.Context, companyID string) (int64, error)
}

func (f *fakeRequestRepository) WithTx(tx *sql.Tx) salarychangerequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRequestRepository) Create(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return nil
}

func (f *fakeRequestRepository) FindAllByCompany(ctx context.Context, companyID string, status string) ([]salarychangerequest.SalaryChangeRequest, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, status)
	}
	return nil, nil
}

func (f *fakeRequestRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*salarychangerequest.SalaryChangeRequest, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeRequestRepository) UpdateDecision(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, req)
	}
	return nil
}

func (f *fakeRequestRepository) CountPendingByCompany(ctx context.Context, companyID string) (int64, error) {
	if f.countPendingByCompanyFn != nil {
		return f.countPendingByCompanyFn(ctx, companyID)
	}
	return 0, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, _ string) error { return nil }

type fakeApplier struct {
	applyFn func(ctx context.Context, companyID, employeeID string, items json.RawMessage) error
	calls   int
}

func (f *fakeApplier) ApplySalaryChange(ctx context.Context, companyID, employeeID string, items json.RawMessage) error {
	f.calls++
	if f.applyFn != nil {
		return f.applyFn(ctx, companyID, employeeID, items)
	}
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service salarychangerequest.Service
	repo    *fakeRequestRepository
	outbox  *fakeOutboxRepository
	applier *fakeApplier
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRequestRepository{}
	outbox := &fakeOutboxRepository{}
	applier := &fakeApplier{}
	svc := salarychangerequest.NewService(db, repo, outbox, applier)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outbox,
		applier: applier,
	}
}

const proposedItems = `[{"SalaryHeadId":{"HeadType":"Earnings"},"applicableValue":50000},{"SalaryHeadId":{"HeadType":"Deductions"},"applicableValue":5000}]`

func pendingRequest(id uuid.UUID) *salarychangerequest.SalaryChangeRequest {
	return &salarychangerequest.SalaryChangeRequest{
		ID:            id,
		CompanyID:     "comp-1",
		EmployeeID:    "emp-1",
		ProposedItems: []byte(proposedItems),
		Status:        salarychangerequest.StatusPending,
		RequestedBy:   "hr-1",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestCreate_PersistsRequestAndOutboxEventInOneTx(t *testing.T) {
	deps := setupServiceTest(t)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.Create(context.Background(), "comp-1", "hr-1", salarychangerequest.CreateSalaryChangeRequest{
		EmployeeID:    "emp-1",
		ProposedItems: json.RawMessage(proposedItems),
		Reason:        "annual revision",
	})
	require.NoError(t, err)

	assert.Equal(t, salarychangerequest.StatusPending, resp.Status)
	assert.Equal(t, "hr-1", resp.RequestedBy)
	assert.Equal(t, 50000.0, resp.ProjectedEarnings)
	assert.Equal(t, 5000.0, resp.ProjectedDeductions)
	assert.Equal(t, 45000.0, resp.ProjectedNet)

	require.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "salary_change_requested", deps.outbox.created[0].EventType)
	assert.Equal(t, kafka.OutboxStatusPending, deps.outbox.created[0].Status)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestCreate_RejectsMalformedItems(t *testing.T) {
	deps := setupServiceTest(t)

	_, err := deps.service.Create(context.Background(), "comp-1", "hr-1", salarychangerequest.CreateSalaryChangeRequest{
		EmployeeID:    "emp-1",
		ProposedItems: json.RawMessage(`{"not":"a list"`),
	})
	assert.ErrorIs(t, err, salarychangerequesterrors.ErrInvalidProposedItems)
}

func TestCreate_DuplicatePendingMapsToConflict(t *testing.T) {
	deps := setupServiceTest(t)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.createFn = func(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error {
		return errors.New(`ERROR: duplicate key value violates unique constraint "uq_salary_change_pending"`)
	}

	_, err := deps.service.Create(context.Background(), "comp-1", "hr-1", salarychangerequest.CreateSalaryChangeRequest{
		EmployeeID:    "emp-1",
		ProposedItems: json.RawMessage(proposedItems),
	})
	assert.ErrorIs(t, err, salarychangerequesterrors.ErrPendingRequestExists)
	assert.Empty(t, deps.outbox.created)
}

func TestApprove_AppliesUpstreamBeforeCommit(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, reqID string) (*salarychangerequest.SalaryChangeRequest, error) {
		return pendingRequest(id), nil
	}

	resp, err := deps.service.Approve(context.Background(), "comp-1", "admin-1", id.String())
	require.NoError(t, err)

	assert.Equal(t, salarychangerequest.StatusApproved, resp.Status)
	assert.Equal(t, "admin-1", resp.DecidedBy)
	assert.Equal(t, 1, deps.applier.calls)

	require.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "salary_change_decided", deps.outbox.created[0].EventType)
}

func TestApprove_UpstreamFailureLeavesRequestPending(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, reqID string) (*salarychangerequest.SalaryChangeRequest, error) {
		return pendingRequest(id), nil
	}
	deps.applier.applyFn = func(ctx context.Context, companyID, employeeID string, items json.RawMessage) error {
		return errors.New("upstream rejected the configuration")
	}

	updateCalled := false
	deps.repo.updateDecisionFn = func(ctx context.Context, req *salarychangerequest.SalaryChangeRequest) error {
		updateCalled = true
		return nil
	}

	_, err := deps.service.Approve(context.Background(), "comp-1", "admin-1", id.String())
	assert.Error(t, err)
	assert.False(t, updateCalled)
	assert.Empty(t, deps.outbox.created)
}

func TestApprove_AlreadyDecidedIsRejected(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, reqID string) (*salarychangerequest.SalaryChangeRequest, error) {
		req := pendingRequest(id)
		req.Status = salarychangerequest.StatusApproved
		return req, nil
	}

	_, err := deps.service.Approve(context.Background(), "comp-1", "admin-1", id.String())
	assert.ErrorIs(t, err, salarychangerequesterrors.ErrAlreadyDecided)
	assert.Equal(t, 0, deps.applier.calls)
}

func TestReject_SkipsUpstreamApply(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.New()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, reqID string) (*salarychangerequest.SalaryChangeRequest, error) {
		return pendingRequest(id), nil
	}

	resp, err := deps.service.Reject(context.Background(), "comp-1", "admin-1", id.String())
	require.NoError(t, err)

	assert.Equal(t, salarychangerequest.StatusRejected, resp.Status)
	assert.Equal(t, 0, deps.applier.calls)
	require.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "salary_change_decided", deps.outbox.created[0].EventType)
}

func TestGetAll_PassesStatusFilter(t *testing.T) {
	deps := setupServiceTest(t)

	var gotStatus string
	deps.repo.findAllByCompanyFn = func(ctx context.Context, companyID, status string) ([]salarychangerequest.SalaryChangeRequest, error) {
		gotStatus = status
		return []salarychangerequest.SalaryChangeRequest{*pendingRequest(uuid.New())}, nil
	}

	resp, err := deps.service.GetAll(context.Background(), "comp-1", salarychangerequest.ListSalaryChangeFilterRequest{Status: "PENDING"})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", gotStatus)
	require.Len(t, resp, 1)
	assert.Equal(t, 45000.0, resp[0].ProjectedNet)
}
