package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
	"github.com/oksasatya/agrosphere-api/pkg/response"
	"github.com/oksasatya/agrosphere-api/pkg/validation"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorTable = []errorMapping{
	{application.ErrInvalidTitle, http.StatusBadRequest, "Invalid title"},
	{application.ErrInvalidDescription, http.StatusBadRequest, "Invalid description"},
	{application.ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{application.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{application.ErrInvalidPrompt, http.StatusBadRequest, "Please provide a valid prompt."},
	{application.ErrInvalidOTP, http.StatusBadRequest, "Invalid or expired code"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{application.ErrForbidden, http.StatusForbidden, "Forbidden access"},
	{application.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found."},
	{application.ErrNoPendingRequest, http.StatusNotFound, "No pending role request"},
	{application.ErrDocumentNotFound, http.StatusNotFound, "Document not found"},
	{application.ErrStorageUnavailable, http.StatusServiceUnavailable, "Service unavailable"},
}

// writeError maps a service error to its status. Unknown errors are logged and
// reported as a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	if errors.Is(err, application.ErrInvalidInput) {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.message, nil)
			return
		}
	}
	fields := logrus.Fields{"request_id": c.GetString("request_id"), "path": c.FullPath()}
	if errors.Is(err, application.ErrAIUnavailable) {
		if logger != nil {
			logger.WithError(err).WithFields(fields).Error("ai request failed")
		}
		response.Error(c, http.StatusInternalServerError, "AI processing failed. Please try again later.", nil)
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(fields).Error("request failed")
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

func badPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// caller returns the authenticated identity or writes 401.
func caller(c *gin.Context) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized access", nil)
	}
	return id, ok
}

// requireSelf writes 403 unless email is the caller's own.
func requireSelf(c *gin.Context, email string) (middleware.Identity, bool) {
	id, ok := caller(c)
	if !ok {
		return id, false
	}
	if email != id.Email {
		response.Error(c, http.StatusForbidden, "Forbidden access", nil)
		return id, false
	}
	return id, true
}
