package notification

import (
	"net/http"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	badges BadgeService
}

func NewHandler(badges BadgeService) *Handler {
	return &Handler{badges: badges}
}

type pendingCountResponse struct {
	PendingSalaryRequests int64 `json:"pendingSalaryRequests"`
}

func (h *Handler) GetPendingCount(c *gin.Context) {
	companyID := c.GetString("company_id")

	count, err := h.badges.PendingCount(c.Request.Context(), companyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not read notification counters", nil)
		return
	}

	response.Success(c, http.StatusOK, pendingCountResponse{PendingSalaryRequests: count}, nil)
}
