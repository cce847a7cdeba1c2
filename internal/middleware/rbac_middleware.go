package middleware

import (
	"net/http"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/rbac"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on the caller's role being allowed the given
// resource/action pair.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				map[string]string{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
