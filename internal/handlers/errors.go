package handlers

import (
	"errors"
	"strconv"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/middleware"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-gonic/gin"

	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
)

// respondError maps a service error onto the API error envelope. Storage
// details never reach the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrValidationFailed):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// currentActor returns the actor set by middleware.RequireAuth, writing a
// 401 when it is missing.
func currentActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Actor{}, false
	}
	return actor, true
}

// paramID parses a positive numeric path parameter, writing a 400 otherwise.
func paramID(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label)
		return 0, false
	}
	return id, true
}
