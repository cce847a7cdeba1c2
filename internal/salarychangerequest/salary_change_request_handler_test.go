package salarychangerequest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest"
	salarychangerequesterrors "github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRequestService struct {
	createFn       func(ctx context.Context, companyID, actorID string, req salarychangerequest.CreateSalaryChangeRequest) (salarychangerequest.SalaryChangeResponse, error)
	getAllFn       func(ctx context.Context, companyID string, filter salarychangerequest.ListSalaryChangeFilterRequest) ([]salarychangerequest.SalaryChangeResponse, error)
	getByIDFn      func(ctx context.Context, companyID, id string) (salarychangerequest.SalaryChangeResponse, error)
	approveFn      func(ctx context.Context, companyID, actorID, id string) (salarychangerequest.SalaryChangeResponse, error)
	rejectFn       func(ctx context.Context, companyID, actorID, id string) (salarychangerequest.SalaryChangeResponse, error)
	countPendingFn func(ctx context.Context, companyID string) (int64, error)
}

func (f *fakeRequestService) Create(ctx context.Context, companyID, actorID string, req salarychangerequest.CreateSalaryChangeRequest) (salarychangerequest.SalaryChangeResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}
func (f *fakeRequestService) GetAll(ctx context.Context, companyID string, filter salarychangerequest.ListSalaryChangeFilterRequest) ([]salarychangerequest.SalaryChangeResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}
func (f *fakeRequestService) GetByID(ctx context.Context, companyID, id string) (salarychangerequest.SalaryChangeResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeRequestService) Approve(ctx context.Context, companyID, actorID, id string) (salarychangerequest.SalaryChangeResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}
func (f *fakeRequestService) Reject(ctx context.Context, companyID, actorID, id string) (salarychangerequest.SalaryChangeResponse, error) {
	return f.rejectFn(ctx, companyID, actorID, id)
}
func (f *fakeRequestService) CountPending(ctx context.Context, companyID string) (int64, error) {
	if f.countPendingFn != nil {
		return f.countPendingFn(ctx, companyID)
	}
	return 0, nil
}

func TestSalaryChangeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeRequestService{
			createFn: func(ctx context.Context, cid, actorID string, req salarychangerequest.CreateSalaryChangeRequest) (salarychangerequest.SalaryChangeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "hr-1", actorID)
				assert.Equal(t, "emp-1", req.EmployeeID)
				return salarychangerequest.SalaryChangeResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Status:     salarychangerequest.StatusPending,
				}, nil
			},
		}

		h := salarychangerequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"emp-1","proposed_items":[{"applicableValue":1000}],"reason":"promotion"}`
		req := httptest.NewRequest(http.MethodPost, "/salary-change-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)
		c.Set("user_id", "hr-1")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "emp-1")
		assert.Contains(t, w.Body.String(), salarychangerequest.StatusPending)
	})

	t.Run("validation error", func(t *testing.T) {
		h := salarychangerequest.NewHandler(&fakeRequestService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/salary-change-requests", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pending conflict", func(t *testing.T) {
		svc := &fakeRequestService{
			createFn: func(ctx context.Context, cid, actorID string, req salarychangerequest.CreateSalaryChangeRequest) (salarychangerequest.SalaryChangeResponse, error) {
				return salarychangerequest.SalaryChangeResponse{}, salarychangerequesterrors.ErrPendingRequestExists
			},
		}

		h := salarychangerequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"emp-1","proposed_items":[]}`
		req := httptest.NewRequest(http.MethodPost, "/salary-change-requests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())
		c.Set("user_id", "hr-1")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestSalaryChangeHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeRequestService{
			approveFn: func(ctx context.Context, cid, actorID, reqID string) (salarychangerequest.SalaryChangeResponse, error) {
				assert.Equal(t, id, reqID)
				assert.Equal(t, "admin-1", actorID)
				return salarychangerequest.SalaryChangeResponse{
					ID:        reqID,
					Status:    salarychangerequest.StatusApproved,
					DecidedBy: actorID,
				}, nil
			},
		}

		h := salarychangerequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/salary-change-requests/"+id+"/approve", nil)
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())
		c.Set("user_id", "admin-1")

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), salarychangerequest.StatusApproved)
	})

	t.Run("already decided", func(t *testing.T) {
		svc := &fakeRequestService{
			approveFn: func(ctx context.Context, cid, actorID, reqID string) (salarychangerequest.SalaryChangeResponse, error) {
				return salarychangerequest.SalaryChangeResponse{}, salarychangerequesterrors.ErrAlreadyDecided
			},
		}

		h := salarychangerequest.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/salary-change-requests/abc/approve", nil)
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("company_id", uuid.New().String())
		c.Set("user_id", "admin-1")

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestSalaryChangeHandler_GetAll(t *testing.T) {
	svc := &fakeRequestService{
		getAllFn: func(ctx context.Context, cid string, filter salarychangerequest.ListSalaryChangeFilterRequest) ([]salarychangerequest.SalaryChangeResponse, error) {
			assert.Equal(t, "PENDING", filter.Status)
			return []salarychangerequest.SalaryChangeResponse{
				{ID: uuid.New().String(), Status: salarychangerequest.StatusPending},
			}, nil
		},
	}

	h := salarychangerequest.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodGet, "/salary-change-requests?status=PENDING", nil)
	c.Request = req
	c.Set("company_id", uuid.New().String())

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), salarychangerequest.StatusPending)
}

func TestSalaryChangeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeRequestService{
		getByIDFn: func(ctx context.Context, cid, id string) (salarychangerequest.SalaryChangeResponse, error) {
			return salarychangerequest.SalaryChangeResponse{}, salarychangerequesterrors.ErrRequestNotFound
		},
	}

	h := salarychangerequest.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodGet, "/salary-change-requests/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set("company_id", uuid.New().String())

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
