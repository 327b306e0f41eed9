package middleware

import (
	"context"
	"errors"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/constants"
	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/models"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserResolver loads the user behind a session.
type UserResolver interface {
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

// RequireAuth resolves the session user and stores the Actor in the context.
// The role is always re-read from storage, never taken from the cookie.
func RequireAuth(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if errors.Is(err, services.ErrUserNotFound) {
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "")
			return
		}
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}

		actor := services.NewActor(user)
		if !actor.Role.IsValid() {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID and actor in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetActor retrieves the actor resolved by RequireAuth
func GetActor(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := value.(services.Actor)
	return actor, ok
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
