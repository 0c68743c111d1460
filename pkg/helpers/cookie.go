package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie carrying the identity token.
const TokenCookie = "token"

// Manager writes the identity cookie. In production the cookie is sent
// cross-site (Secure, SameSite=None); otherwise it is SameSite=Strict.
type Manager struct {
	Domain     string
	Production bool
}

func NewCookie(domain string, production bool) *Manager {
	return &Manager{Domain: domain, Production: production}
}

func (m *Manager) SetToken(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(TokenCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Production, true)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(TokenCookie, "", -1, "/", m.Domain, m.Production, true)
}

func (m *Manager) sameSite() http.SameSite {
	if m.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
