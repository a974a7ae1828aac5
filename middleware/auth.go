package middleware

import (
	"net/http"

	"quizhub/services"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "session_id"

// AuthMiddleware resolves the session cookie into a user and stores
// user_id/username in the request context. Requests without a valid session
// are rejected with 401.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := ResolveSession(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("username", username)
		c.Next()
	}
}

// ResolveSession looks up the session cookie without aborting the request,
// for endpoints that serve both anonymous and logged-in callers.
func ResolveSession(c *gin.Context, authService *services.AuthService) (uint, string, bool) {
	sessionID, err := c.Cookie(SessionCookie)
	if err != nil || sessionID == "" {
		return 0, "", false
	}

	userID, err := authService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		return 0, "", false
	}

	user, err := authService.GetUserByID(userID)
	if err != nil {
		return 0, "", false
	}

	return user.ID, user.Username, true
}
