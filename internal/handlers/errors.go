package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/middleware"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/validation"
)

// respondError maps service errors onto API error responses.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.UnprocessableEntity(c, "", verr.Fields)
	case errors.Is(err, validation.ErrInvalidPayload):
		apierrors.BadRequest(c, "Invalid request body")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrTaskDeleteDenied),
		errors.Is(err, services.ErrProjectPermissionDenied),
		errors.Is(err, services.ErrCommentPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		apierrors.RespondWithError(c, http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrInactiveUser):
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInactiveUser, "Inactive user"))
	default:
		apierrors.Unexpected(c, err)
	}
}

// respondBindError answers a failed ShouldBind: 422 for rule violations and
// wrong-typed fields, 400 for bodies that could not be decoded at all.
func respondBindError(c *gin.Context, err error) {
	if fields, ok := validation.FieldErrors(err); ok {
		apierrors.UnprocessableEntity(c, "", fields)
		return
	}
	if fields, ok := validation.TypeErrors(err); ok {
		apierrors.UnprocessableEntity(c, "", fields)
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// requireUser returns the authenticated user or answers 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}
