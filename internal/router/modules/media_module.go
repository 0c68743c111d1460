package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type MediaModule struct {
	Handler *handlers.MediaHandler
	C       *container.Container
}

func NewMediaModule(h *handlers.MediaHandler, c *container.Container) *MediaModule {
	return &MediaModule{Handler: h, C: c}
}

func (m *MediaModule) Register(rg *gin.RouterGroup) {
	rg.POST("/videos/upload",
		middleware.RequireAuthenticated(m.C.JWT),
		middleware.RequireRole(m.C.Users, entity.RoleTrainer, m.C.Logger),
		m.Handler.UploadVideo,
	)
}
