package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type AssistantModule struct {
	Handler *handlers.AssistantHandler
	C       *container.Container
}

func NewAssistantModule(h *handlers.AssistantHandler, c *container.Container) *AssistantModule {
	return &AssistantModule{Handler: h, C: c}
}

func (m *AssistantModule) Register(rg *gin.RouterGroup) {
	cfg := m.C.Config
	rg.POST("/ai-response",
		middleware.RequireAuthenticated(m.C.JWT),
		middleware.RateLimit(m.C.Redis, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByEmail(), nil),
		m.Handler.Ask,
	)
}
