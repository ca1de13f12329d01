package middleware

import (
	"net/http"
	"strings"

	"foodbank/internal/auth"

	"github.com/gin-gonic/gin"
)

// Context keys set for authenticated requests.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

func unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": reason})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware rejects requests without a valid session token and
// stores the caller's id and email on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			unauthorized(c, "authorization header must be 'Bearer <token>'")
			return
		}

		userID, email, err := auth.ValidateToken(token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserEmailKey, email)
		c.Next()
	}
}
