package middleware

import "github.com/gin-gonic/gin"

const identityKey = "identity"

// Identity is the authenticated caller decoded from the token cookie.
type Identity struct {
	Email string
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller set by RequireAuthenticated.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || id.Email == "" {
		return Identity{}, false
	}
	return id, true
}
