package middleware

import (
	"net/http"

	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects actors whose role is not in roles. It is a coarse
// route guard; ownership rules are enforced by the services.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor.ID == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !allowed[actor.Role] {
			common.ErrorResponse(c, http.StatusForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
