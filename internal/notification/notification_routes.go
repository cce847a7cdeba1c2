package notification

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
	notifications := r.Group("/notifications")

	notifications.Use(middleware.AuthMiddleware(jwtSecret))

	{
		notifications.GET("/pending-salary-requests", middleware.RBACAuthorize(rbacService, "notification", "read"), h.GetPendingCount)
	}
}
