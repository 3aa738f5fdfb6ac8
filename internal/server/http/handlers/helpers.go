package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/server/http/dto"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// CurrentOwnerID extracts the authenticated owner identifier from context.
func CurrentOwnerID(c *gin.Context) string {
	return c.GetString(middleware.OwnerIDContextKey)
}

// errorStatus maps domain errors to HTTP status codes and caller-facing messages.
func errorStatus(err error) (int, string) {
	var validation *domainErrors.ValidationError
	var configuration *domainErrors.ConfigurationError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.As(err, &configuration):
		return http.StatusServiceUnavailable, configuration.Error()
	case errors.Is(err, domainErrors.ErrInvalidAvailability),
		errors.Is(err, domainErrors.ErrInvalidDecision):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, domainErrors.ErrNotConfigured):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	default:
		return http.StatusInternalServerError, "internal failure"
	}
}

func writeError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
