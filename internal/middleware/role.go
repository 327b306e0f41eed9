package middleware

import (
	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the actor has one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Only company admins can perform this action")
	}
}
