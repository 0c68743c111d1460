package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "AgroSphere server is running")
	})
}
