package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
	"github.com/oksasatya/agrosphere-api/pkg/response"
)

// TokenVerifier validates the identity token.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// RoleLookup resolves the stored role of a user.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (entity.Role, error)
}

// RequireAuthenticated validates the token cookie and stores the caller's Identity.
func RequireAuthenticated(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.TokenCookie)
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}
		SetIdentity(c, Identity{Email: claims.Email})
		c.Next()
	}
}

// RequireRole must run after RequireAuthenticated. It lets the request through
// only when the caller's stored role equals role.
func RequireRole(users RoleLookup, role entity.Role, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}
		got, err := users.RoleOf(c.Request.Context(), id.Email)
		if err != nil && !errors.Is(err, application.ErrUserNotFound) {
			helpers.LogError(logger, "role lookup failed", err, logrus.Fields{"email": id.Email, "request_id": c.GetString("request_id")})
			response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
			return
		}
		if err != nil || got != role {
			response.Error(c, http.StatusForbidden, "Access denied for role: "+role.String(), nil)
			return
		}
		c.Next()
	}
}
