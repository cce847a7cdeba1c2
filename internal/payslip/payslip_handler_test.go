package payslip_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/payslip"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salary"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/snapshot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticFetcher struct {
	slip *salary.Slip
	cfg  *salary.Config
}

func (f *staticFetcher) FetchSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error) {
	return f.slip, nil
}

func (f *staticFetcher) GenerateSlip(ctx context.Context, companyID, employeeID, month string) (*salary.Slip, error) {
	return f.slip, nil
}

func (f *staticFetcher) FetchConfig(ctx context.Context, companyID, employeeID string) (*salary.Config, error) {
	return f.cfg, nil
}

func TestHandlerExpand_PreviewFallback(t *testing.T) {
	fetcher := &staticFetcher{
		cfg: &salary.Config{
			Items: []salary.LineItem{{ApplicableValue: 30000.0}},
		},
	}
	view := payslip.NewView(fetcher, "2026-08", zap.NewNop())
	h := payslip.NewHandler(view, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/e1", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "e1"}}
	c.Set("company_id", "comp-1")

	h.Expand(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"preview"`)
	assert.Contains(t, w.Body.String(), `"month":"2026-08"`)
}

func TestHandlerExpand_MonthQuerySwitchesView(t *testing.T) {
	view := payslip.NewView(&staticFetcher{}, "2026-07", zap.NewNop())
	h := payslip.NewHandler(view, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/e1?month=2026-08", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "e1"}}
	c.Set("company_id", "comp-1")

	h.Expand(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-08", view.Month())
}

func TestHandlerGenerate_UpstreamSilence(t *testing.T) {
	view := payslip.NewView(&staticFetcher{}, "2026-08", zap.NewNop())
	h := payslip.NewHandler(view, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips/e1/generate", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "e1"}}
	c.Set("company_id", "comp-1")

	h.Generate(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
}

func TestHandlerDownloadPDF(t *testing.T) {
	fetcher := &staticFetcher{
		slip: &salary.Slip{
			EmployeeID:  "e1",
			Month:       "2026-08",
			GrossSalary: 60000,
			NetSalary:   48000,
		},
	}
	view := payslip.NewView(fetcher, "2026-08", zap.NewNop())
	h := payslip.NewHandler(view, snapshot.NewSnapshot())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/e1/pdf", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "e1"}}
	c.Set("company_id", "comp-1")

	h.DownloadPDF(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-e1-2026-08")
}

func TestHandlerCollapse(t *testing.T) {
	view := payslip.NewView(&staticFetcher{}, "2026-08", zap.NewNop())
	h := payslip.NewHandler(view, nil)

	view.Expand(context.Background(), "comp-1", "e1")
	require.True(t, view.IsExpanded("e1"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips/e1/collapse", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "e1"}}

	h.Collapse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, view.IsExpanded("e1"))
}
