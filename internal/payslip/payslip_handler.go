package payslip

import (
	"net/http"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/report"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/response"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/snapshot"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	view *View
	snap *snapshot.Snapshot
}

func NewHandler(view *View, snap *snapshot.Snapshot) *Handler {
	return &Handler{view: view, snap: snap}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Expand switches the row open and returns the cached or freshly loaded
// entry. A month query parameter scopes the view first.
func (h *Handler) Expand(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	if month := c.Query("month"); month != "" {
		h.view.SetMonth(month)
	}

	entry := h.view.Expand(c.Request.Context(), companyID, employeeID)
	response.Success(c, http.StatusOK, entry, nil)
}

func (h *Handler) Collapse(c *gin.Context) {
	h.view.Collapse(c.Param("employeeId"))
	response.Success(c, http.StatusOK, gin.H{"expanded": false}, nil)
}

func (h *Handler) Generate(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	if month := c.Query("month"); month != "" {
		h.view.SetMonth(month)
	}

	entry, err := h.view.Generate(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entry, nil)
}

// DownloadPDF renders the cached entry for an employee; it expands first if
// nothing is cached yet so the download works without a prior click.
func (h *Handler) DownloadPDF(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	entry, ok := h.view.Cached(employeeID)
	if !ok {
		entry = h.view.Expand(c.Request.Context(), companyID, employeeID)
	}

	pdf, err := report.RenderPayslipPDF(report.PayslipDocument{
		EmployeeID:   entry.EmployeeID,
		EmployeeName: h.employeeName(employeeID),
		Month:        entry.Month,
		Summary:      entry.Summary,
		Attendance:   entry.Attendance,
		Preview:      entry.Source == SourcePreview,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="payslip-`+employeeID+`-`+entry.Month+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) employeeName(employeeID string) string {
	for _, emp := range h.snap.Employees() {
		if emp.ID == employeeID {
			return emp.Name
		}
	}
	return employeeID
}
