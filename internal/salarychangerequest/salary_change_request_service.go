package salarychangerequest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/events"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/messaging/kafka"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"
	salarychangerequesterrors "github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest/errors"

	"github.com/google/uuid"
)

// Applier pushes an approved configuration to the upstream payroll API.
// Approval only commits locally after the upstream accepted the change.
type Applier interface {
	ApplySalaryChange(ctx context.Context, companyID, employeeID string, items json.RawMessage) error
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateSalaryChangeRequest) (SalaryChangeResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListSalaryChangeFilterRequest) ([]SalaryChangeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryChangeResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (SalaryChangeResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string) (SalaryChangeResponse, error)
	CountPending(ctx context.Context, companyID string) (int64, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	applier Applier
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, applier Applier) Service {
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outbox,
		applier: applier,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateSalaryChangeRequest,
) (SalaryChangeResponse, error) {
	var cfg salary.Config
	if err := json.Unmarshal(configEnvelope(req.ProposedItems), &cfg); err != nil {
		return SalaryChangeResponse{}, salarychangerequesterrors.ErrInvalidProposedItems
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryChangeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request := &SalaryChangeRequest{
		ID:            uuid.New(),
		CompanyID:     companyID,
		EmployeeID:    req.EmployeeID,
		ProposedItems: req.ProposedItems,
		Reason:        req.Reason,
		Status:        StatusPending,
		RequestedBy:   actorID,
	}

	if err := qtx.Create(ctx, request); err != nil {
		return SalaryChangeResponse{}, mapRepositoryError(err)
	}

	event := events.SalaryChangeRequestedEvent{
		EventType:   "salary_change_requested",
		RequestID:   request.ID.String(),
		EmployeeID:  request.EmployeeID,
		CompanyID:   companyID,
		RequestedBy: actorID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.enqueueEvent(ctx, tx, request, event.EventType, events.SalaryChangeRequestedTopic, event); err != nil {
		return SalaryChangeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryChangeResponse{}, err
	}

	return mapToResponse(*request), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListSalaryChangeFilterRequest,
) ([]SalaryChangeResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID, filter.Status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(requests), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (SalaryChangeResponse, error) {
	request, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryChangeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*request), nil
}

func (s *service) Approve(
	ctx context.Context,
	companyID, actorID, id string,
) (SalaryChangeResponse, error) {
	return s.decide(ctx, companyID, actorID, id, StatusApproved)
}

func (s *service) Reject(
	ctx context.Context,
	companyID, actorID, id string,
) (SalaryChangeResponse, error) {
	return s.decide(ctx, companyID, actorID, id, StatusRejected)
}

func (s *service) CountPending(ctx context.Context, companyID string) (int64, error) {
	return s.repo.CountPendingByCompany(ctx, companyID)
}

func (s *service) decide(
	ctx context.Context,
	companyID, actorID, id, status string,
) (SalaryChangeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryChangeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryChangeResponse{}, mapRepositoryError(err)
	}

	if request.Status != StatusPending {
		return SalaryChangeResponse{}, salarychangerequesterrors.ErrAlreadyDecided
	}

	// Materialize the change upstream before committing the local decision.
	// If the upstream rejects it the request stays pending.
	if status == StatusApproved {
		if err := s.applier.ApplySalaryChange(ctx, companyID, request.EmployeeID, request.ProposedItems); err != nil {
			return SalaryChangeResponse{}, err
		}
	}

	now := time.Now().UTC()
	request.Status = status
	request.DecidedBy = &actorID
	request.DecidedAt = &now

	if err := qtx.UpdateDecision(ctx, request); err != nil {
		return SalaryChangeResponse{}, mapRepositoryError(err)
	}

	event := events.SalaryChangeDecidedEvent{
		EventType:  "salary_change_decided",
		RequestID:  request.ID.String(),
		EmployeeID: request.EmployeeID,
		CompanyID:  companyID,
		DecidedBy:  actorID,
		Status:     status,
		OccurredAt: now,
	}
	if err := s.enqueueEvent(ctx, tx, request, event.EventType, events.SalaryChangeDecidedTopic, event); err != nil {
		return SalaryChangeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryChangeResponse{}, err
	}

	return mapToResponse(*request), nil
}

func (s *service) enqueueEvent(
	ctx context.Context,
	tx *sql.Tx,
	request *SalaryChangeRequest,
	eventType, topic string,
	payload any,
) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     request.ID.String(),
		AggregateType: "salary_change_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       encoded,
		Status:        kafka.OutboxStatusPending,
	})
}

// configEnvelope wraps a bare item array in the envelope CalculateTotals
// expects. Items already wrapped pass through.
func configEnvelope(items json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(items)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		wrapped := append([]byte(`{"SalaryHeads":`), trimmed...)
		return append(wrapped, '}')
	}
	return trimmed
}

func mapToResponse(req SalaryChangeRequest) SalaryChangeResponse {
	resp := SalaryChangeResponse{
		ID:            req.ID.String(),
		EmployeeID:    req.EmployeeID,
		ProposedItems: json.RawMessage(req.ProposedItems),
		Reason:        req.Reason,
		Status:        req.Status,
		RequestedBy:   req.RequestedBy,
		CreatedAt:     req.CreatedAt.UTC().Format(time.RFC3339),
	}

	if req.DecidedBy != nil {
		resp.DecidedBy = *req.DecidedBy
	}
	if req.DecidedAt != nil {
		resp.DecidedAt = req.DecidedAt.UTC().Format(time.RFC3339)
	}

	var cfg salary.Config
	if err := json.Unmarshal(configEnvelope(req.ProposedItems), &cfg); err == nil {
		totals := salary.CalculateTotals(&cfg)
		resp.ProjectedEarnings = totals.Earnings
		resp.ProjectedDeductions = totals.Deductions
		resp.ProjectedNet = totals.Net
	}

	return resp
}

func mapToListResponse(requests []SalaryChangeRequest) []SalaryChangeResponse {
	responses := make([]SalaryChangeResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapToResponse(req))
	}
	return responses
}
