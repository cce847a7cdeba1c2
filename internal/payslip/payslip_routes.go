package payslip

import (
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/middleware"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	payslips := r.Group("/payslips")

	payslips.Use(middleware.AuthMiddleware(jwtSecret))

	{
		payslips.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.Expand)
		payslips.POST("/:employeeId/collapse", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.Collapse)
		payslips.POST("/:employeeId/generate", middleware.RBACAuthorize(rbacService, "payslip", "generate"), h.Generate)
		payslips.GET("/:employeeId/pdf", middleware.RBACAuthorize(rbacService, "payslip", "read"), h.DownloadPDF)
	}
}
