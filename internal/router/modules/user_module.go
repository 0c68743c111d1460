package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/internal/container"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/interface/middleware"
)

// UserModule wires registration, role workflow and password routes.
// Public: POST /users, GET /sellers, GET /user/role/:email
// Self: GET /check-user-role, PATCH /request-change-role, PUT /users/:email
// Admin: GET /users, GET /incomming-requests, PATCH /users/:email/approve-role
type UserModule struct {
	Handler *handlers.UserHandler
	C       *container.Container
}

func NewUserModule(h *handlers.UserHandler, c *container.Container) *UserModule {
	return &UserModule{Handler: h, C: c}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
	rg.GET("/sellers", m.Handler.Sellers)
	rg.GET("/user/role/:email", m.Handler.UserRole)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuthenticated(m.C.JWT))
	{
		auth.GET("/check-user-role", m.Handler.CheckUserRole)
		auth.PATCH("/request-change-role", m.Handler.RequestRoleChange)
		auth.PUT("/users/:email", m.Handler.UpdatePassword)
	}

	admin := rg.Group("/")
	admin.Use(
		middleware.RequireAuthenticated(m.C.JWT),
		middleware.RequireRole(m.C.Users, entity.RoleAdmin, m.C.Logger),
	)
	{
		admin.GET("/users", m.Handler.List)
		admin.GET("/incomming-requests", m.Handler.IncomingRequests)
		admin.PATCH("/users/:email/approve-role", m.Handler.ApproveRole)
	}
}
