package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const realIPKey = "real_ip"

// RealIP sets the client IP into the Gin context (key: "real_ip").
// Forwarding headers are only honoured when trustHeaders is true:
// CF-Connecting-IP first, then the left-most X-Forwarded-For entry.
func RealIP(trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(realIPKey, clientIP(c, trustHeaders))
		c.Next()
	}
}

func clientIP(c *gin.Context, trustHeaders bool) string {
	if trustHeaders {
		if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
			if ip := net.ParseIP(cf); ip != nil {
				return ip.String()
			}
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				return ip.String()
			}
		}
	}
	return c.ClientIP()
}

// ClientIP returns the address stored by RealIP, falling back to Gin's view.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(realIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}
