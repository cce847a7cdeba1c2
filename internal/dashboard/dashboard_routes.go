package dashboard

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
	dashboard := r.Group("/dashboard")

	dashboard.Use(middleware.AuthMiddleware(jwtSecret))

	{
		dashboard.GET("/summary", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetSummary)
		dashboard.GET("/branches", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetBranches)
		dashboard.GET("/departments", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetDepartments)
		dashboard.GET("/designations", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetDesignations)
		dashboard.GET("/employees", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetEmployees)
		dashboard.GET("/payroll", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetPayroll)
		dashboard.GET("/department-counts", middleware.RBACAuthorize(rbacService, "snapshot", "read"), h.GetDepartmentCounts)

		dashboard.POST("/reload", middleware.RBACAuthorize(rbacService, "snapshot", "write"), h.Reload)
		dashboard.POST("/branches", middleware.RBACAuthorize(rbacService, "snapshot", "write"), h.CreateBranch)
		dashboard.DELETE("/branches/:id", middleware.RBACAuthorize(rbacService, "snapshot", "write"), h.DeleteBranch)
		dashboard.POST("/departments", middleware.RBACAuthorize(rbacService, "snapshot", "write"), h.CreateDepartment)
		dashboard.DELETE("/departments/:id", middleware.RBACAuthorize(rbacService, "snapshot", "write"), h.DeleteDepartment)

		dashboard.GET("/payroll/export", middleware.RBACAuthorize(rbacService, "report", "read"), h.ExportPayrollCSV)
		dashboard.POST("/reports/:type", middleware.RBACAuthorize(rbacService, "report", "read"), h.ProxyUpstreamReport)
	}
}
