package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes. Anything unclassified
// is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// safeMessage returns a client-facing message that never includes the
// wrapped cause.
func safeMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Caller email is not available in the token"
	case http.StatusNotFound:
		return "Task not found"
	case http.StatusForbidden:
		return "You are not allowed to perform this action on the task"
	default:
		return "An unexpected error occurred"
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", middleware.RequestID(c),
			"path", c.FullPath(),
			"error", err)
	}
	c.JSON(status, gin.H{"error": safeMessage(status)})
}
