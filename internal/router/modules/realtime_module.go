package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type RealtimeModule struct {
	Handler *handlers.RealtimeHandler
	C       *container.Container
}

func NewRealtimeModule(h *handlers.RealtimeHandler, c *container.Container) *RealtimeModule {
	return &RealtimeModule{Handler: h, C: c}
}

func (m *RealtimeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ws", middleware.RequireAuthenticated(m.C.JWT), m.Handler.Connect)
}
