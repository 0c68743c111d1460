package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/agrosphere-api/pkg/response"
)

// AllowFunc reports whether a request is exempt (rate limiting) or admitted (RequireAllowed).
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP admits loopback and private-range clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// RequireAllowed rejects requests allow does not admit with 403.
func RequireAllowed(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c) {
			response.Error(c, http.StatusForbidden, "Forbidden", nil)
			return
		}
		c.Next()
	}
}
