package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moodtown/internal/service"
)

const (
	sessionCookieName = "moodtown_session"
	sessionClaimsKey  = "session_claims"
)

// SessionAuthMiddleware valida la cookie de sesión y guarda los claims en el
// contexto. Sin sesión válida la petición se corta con 401.
func SessionAuthMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session not configured"})
			c.Abort()
			return
		}

		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			c.Abort()
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			c.Abort()
			return
		}

		c.Set(sessionClaimsKey, claims)
		c.Next()
	}
}

// GetSessionClaims obtiene los claims de sesión desde el contexto.
func GetSessionClaims(c *gin.Context) (service.SessionClaims, bool) {
	val, ok := c.Get(sessionClaimsKey)
	if !ok {
		return service.SessionClaims{}, false
	}
	claims, ok := val.(service.SessionClaims)
	return claims, ok
}

// sessionUserID es un atajo para handlers dentro del grupo autenticado.
func sessionUserID(c *gin.Context) string {
	claims, _ := GetSessionClaims(c)
	return claims.UserID
}
