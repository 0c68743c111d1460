package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type TaskModule struct {
	Handler *handlers.TaskHandler
	C       *container.Container
}

func NewTaskModule(h *handlers.TaskHandler, c *container.Container) *TaskModule {
	return &TaskModule{Handler: h, C: c}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuthenticated(m.C.JWT))
	{
		auth.POST("/records", m.Handler.Create)
		auth.GET("/records/:email", m.Handler.List)
		auth.PUT("/records/:id", m.Handler.Replace)
		auth.DELETE("/records/:id", m.Handler.Delete)
		auth.PATCH("/tasks/:id", m.Handler.Patch)
	}
}
