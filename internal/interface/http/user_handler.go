package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type roleChangeRequest struct {
	SelectedRole string `json:"selectedRole" binding:"required"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

// Register stores the posted user unless the email already exists.
func (h *UserHandler) Register(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), payload)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !res.Created {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": res.InsertedID})
}

func (h *UserHandler) List(c *gin.Context) {
	h.writeUsers(c, h.Svc.List)
}

func (h *UserHandler) Sellers(c *gin.Context) {
	h.writeUsers(c, h.Svc.Sellers)
}

func (h *UserHandler) IncomingRequests(c *gin.Context) {
	h.writeUsers(c, h.Svc.IncomingRequests)
}

func (h *UserHandler) writeUsers(c *gin.Context, list func(ctx context.Context) ([]entity.User, error)) {
	users, err := list(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CheckUserRole returns the caller's own user document.
func (h *UserHandler) CheckUserRole(c *gin.Context) {
	email := c.Query("email")
	if _, ok := requireSelf(c, email); !ok {
		return
	}
	u, err := h.Svc.CheckUserRole(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RequestRoleChange flags the caller as wanting selectedRole.
func (h *UserHandler) RequestRoleChange(c *gin.Context) {
	email := c.Query("email")
	if _, ok := requireSelf(c, email); !ok {
		return
	}
	var req roleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.RequestRoleChange(c.Request.Context(), email, entity.Role(req.SelectedRole))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "matchedCount": res.Matched, "modifiedCount": res.Modified})
}

// ApproveRole grants the pending role request of :email.
func (h *UserHandler) ApproveRole(c *gin.Context) {
	role, err := h.Svc.ApproveRoleRequest(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "role": role})
}

// UpdatePassword replaces the caller's own password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	email := c.Param("email")
	if _, ok := requireSelf(c, email); !ok {
		return
	}
	var req updatePasswordRequest
	_ = c.ShouldBindJSON(&req)
	err := h.Svc.UpdatePassword(c.Request.Context(), email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
	case errors.Is(err, application.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "Email or password missing.", nil)
	default:
		writeError(c, h.Logger, err)
	}
}

// UserRole reports the valid role of :email; unknown users get a null role.
func (h *UserHandler) UserRole(c *gin.Context) {
	role, err := h.Svc.RoleOf(c.Request.Context(), c.Param("email"))
	if err != nil && !errors.Is(err, application.ErrUserNotFound) {
		writeError(c, h.Logger, err)
		return
	}
	if role == "" {
		c.JSON(http.StatusOK, gin.H{"userRole": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userRole": role})
}
