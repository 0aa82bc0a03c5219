package middleware

import (
	"chargesphere/models"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := Role(c)
		if !ok {
			utils.RespondError(c, errNotAuthenticated)
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.NewForbiddenError("Access denied"))
	}
}
