package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger       *zap.Logger
	users        *service.UserService
	sessions     *service.SessionService
	cookieSecure bool
}

func NewAuthHandler(logger *zap.Logger, users *service.UserService, sessions *service.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		users:        users,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

func publicUser(user domain.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.Name,
	}
}

// Register maneja POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTooShort),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register"})
			return
		}
	}

	if err := h.setSessionCookie(c, user); err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": publicUser(user)})
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": publicUser(user)})
}

// Logout maneja POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me maneja GET /api/auth/me. Sin sesión responde 200 con authenticated=false
// para que el cliente pueda decidir sin tratarlo como error.
func (h *AuthHandler) Me(c *gin.Context) {
	anonymous := gin.H{"authenticated": false, "user": nil}

	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, anonymous)
		return
	}
	claims, err := h.sessions.Parse(token)
	if err != nil {
		c.JSON(http.StatusOK, anonymous)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, "", -1, "/", "", h.cookieSecure, true)
			c.JSON(http.StatusOK, anonymous)
			return
		}
		h.logger.Error("session lookup failed", zap.Error(err))
		c.JSON(http.StatusOK, anonymous)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": publicUser(user)})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, user domain.User) error {
	token, err := h.sessions.Issue(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.cookieSecure, true)
	return nil
}
