package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

// DebugModule exposes expvar metrics to private networks only.
type DebugModule struct {
	C *container.Container
}

func NewDebugModule(c *container.Container) *DebugModule { return &DebugModule{C: c} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", middleware.RequireAllowed(middleware.AllowPrivateIP()), gin.WrapH(expvar.Handler()))
}
