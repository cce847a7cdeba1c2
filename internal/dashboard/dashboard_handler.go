package dashboard

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/report"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/response"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/snapshot"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	loader *snapshot.Loader
	api    *upstream.Client
}

func NewHandler(loader *snapshot.Loader, api *upstream.Client) *Handler {
	return &Handler{loader: loader, api: api}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetSummary(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Totals(), nil)
}

// Reload refreshes every resource concurrently. Partial failures come back
// per resource; the endpoint itself never fails wholesale.
func (h *Handler) Reload(c *gin.Context) {
	companyID := c.GetString("company_id")

	outcomes := h.loader.ReloadAll(c.Request.Context(), companyID)

	result := make(map[string]reloadOutcomeResponse, len(outcomes))
	for res, outcome := range outcomes {
		entry := reloadOutcomeResponse{
			Count:  outcome.Count,
			Failed: outcome.Failed(),
		}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		result[string(res)] = entry
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) GetBranches(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Branches(), nil)
}

func (h *Handler) GetDepartments(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Departments(), nil)
}

func (h *Handler) GetDesignations(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Designations(), nil)
}

func (h *Handler) GetEmployees(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Employees(), nil)
}

func (h *Handler) GetPayroll(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().Payroll(), nil)
}

func (h *Handler) GetDepartmentCounts(c *gin.Context) {
	response.Success(c, http.StatusOK, h.loader.Snapshot().DepartmentCounts(), nil)
}

func (h *Handler) CreateBranch(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	branch, err := h.loader.AddBranch(c.Request.Context(), companyID, req.payload())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, branch, nil)
}

func (h *Handler) DeleteBranch(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.loader.DeleteBranch(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	dept, err := h.loader.AddDepartment(c.Request.Context(), companyID, req.payload())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dept, nil)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.loader.DeleteDepartment(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// ExportPayrollCSV streams the current payroll snapshot as a CSV download.
func (h *Handler) ExportPayrollCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := report.WritePayrollCSV(&buf, h.loader.Snapshot().Payroll()); err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s.csv", time.Now().UTC().Format("2006-01"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ProxyUpstreamReport forwards a report request to the upstream API and
// relays whatever binary it answers with (PDF or spreadsheet).
func (h *Handler) ProxyUpstreamReport(c *gin.Context) {
	companyID := c.GetString("company_id")
	reportType := c.Param("type")

	var req UpstreamReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	payload, contentType, err := h.api.PostBinary(c.Request.Context(), "/reports/"+reportType, companyID, req.Params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, payload)
}
