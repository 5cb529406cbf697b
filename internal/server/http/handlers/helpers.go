package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentUserRole extracts the authenticated role from context.
func CurrentUserRole(c *gin.Context) string {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return ""
	}
	role, _ := val.(string)
	return role
}

// respondError maps domain errors to HTTP status codes with a short body.
func respondError(c *gin.Context, err error) {
	var (
		validation *domainErrors.ValidationError
		transition *domainErrors.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrNotEditable),
		errors.Is(err, domainErrors.ErrNotDeletable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
