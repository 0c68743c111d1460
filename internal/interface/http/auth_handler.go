package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/application"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
	"github.com/oksasatya/agrosphere-api/pkg/response"
)

type AuthHandler struct {
	Users   *application.UserService
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(users *application.UserService, jwt *helpers.JWTManager, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt, Cookies: cookies, Logger: logger}
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IssueToken signs a token for the posted email and sets it as the session cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if !h.setSession(c, req.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Login verifies the password before issuing the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if !h.setSession(c, u.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email": u.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setSession(c *gin.Context, email string) bool {
	token, exp, err := h.JWT.Issue(email)
	if err != nil {
		helpers.LogError(h.Logger, "issue token failed", err, logrus.Fields{"email": email})
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return false
	}
	h.Cookies.SetToken(c, token, exp)
	return true
}
