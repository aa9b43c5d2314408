package middleware

import (
	"net/http"

	"auracare/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through only when the authenticated role is one of roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(CtxRole)] {
			utils.AbortWithError(c, http.StatusForbidden, "You do not have access to this resource")
			return
		}
		c.Next()
	}
}
