package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	C       *container.Container
}

func NewAuthModule(h *handlers.AuthHandler, c *container.Container) *AuthModule {
	return &AuthModule{Handler: h, C: c}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	cfg := m.C.Config
	loginLimiter := middleware.RateLimit(m.C.Redis, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIPAndPath(), nil)

	rg.POST("/jwt", m.Handler.IssueToken)
	rg.GET("/logout", m.Handler.Logout)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
