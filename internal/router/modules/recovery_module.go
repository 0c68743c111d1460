package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type RecoveryModule struct {
	Handler *handlers.RecoveryHandler
	C       *container.Container
}

func NewRecoveryModule(h *handlers.RecoveryHandler, c *container.Container) *RecoveryModule {
	return &RecoveryModule{Handler: h, C: c}
}

func (m *RecoveryModule) Register(rg *gin.RouterGroup) {
	cfg := m.C.Config
	limiter := middleware.RateLimit(m.C.Redis, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIPAndPath(), nil)

	rg.POST("/send_recovery_email", limiter, m.Handler.SendRecoveryEmail)
	rg.POST("/reset-password", limiter, m.Handler.ResetPassword)
}
