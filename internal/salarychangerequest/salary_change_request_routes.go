package salarychangerequest

import (
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/middleware"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	rdb *redis.Client,
) {
	requests := r.Group("/salary-change-requests")

	requests.Use(middleware.AuthMiddleware(jwtSecret))
	requests.Use(middleware.RateLimitByUser(5, 10))

	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "salary_request", "read"), h.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_request", "read"), h.GetByID)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "salary_request", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		requests.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, "salary_request", "decide"),
			middleware.Idempotency(rdb),
			h.Approve,
		)
		requests.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "salary_request", "decide"),
			middleware.Idempotency(rdb),
			h.Reject,
		)
	}
}
