package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so errcheck is suppressed.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps application error kinds to status codes.
// Unknown errors become a 500 carrying only fallback, never the internal reason.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", err.Error(), err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, apperrors.ErrForbidden):
		respondErrorWithDetails(c, http.StatusForbidden, "Access denied", err.Error(), err)
	case errors.Is(err, apperrors.ErrNotFound):
		respondErrorWithDetails(c, http.StatusNotFound, "Not found", err.Error(), err)
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		respondErrorWithDetails(c, http.StatusConflict, "Mentorship request already exists", err.Error(), err)
	case errors.Is(err, apperrors.ErrInvalidTransition):
		respondErrorWithDetails(c, http.StatusConflict, "Invalid status transition", err.Error(), err)
	case errors.Is(err, apperrors.ErrInvalidState):
		respondErrorWithDetails(c, http.StatusConflict, "Invalid state", err.Error(), err)
	default:
		respondError(c, http.StatusInternalServerError, fallback, err)
	}
}
