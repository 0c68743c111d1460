package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
)

type AssistantHandler struct {
	Svc    *application.AssistantService
	Logger *logrus.Logger
}

func NewAssistantHandler(svc *application.AssistantService, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{Svc: svc, Logger: logger}
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	_ = c.ShouldBindJSON(&req)
	answer, err := h.Svc.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
