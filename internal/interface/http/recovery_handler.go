package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type RecoveryHandler struct {
	Svc    *application.RecoveryService
	Logger *logrus.Logger
}

func NewRecoveryHandler(svc *application.RecoveryService, logger *logrus.Logger) *RecoveryHandler {
	return &RecoveryHandler{Svc: svc, Logger: logger}
}

type sendRecoveryRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
}

type resetPasswordRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	OTP            string `json:"otp" binding:"required,otp"`
	Password       string `json:"password" binding:"required,pwd"`
}

// SendRecoveryEmail answers the same way whether or not the email is registered.
func (h *RecoveryHandler) SendRecoveryEmail(c *gin.Context) {
	var req sendRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.SendRecoveryEmail(c.Request.Context(), req.RecipientEmail, middleware.ClientIP(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

func (h *RecoveryHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.RecipientEmail, req.OTP, req.Password); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}
