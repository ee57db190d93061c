package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gracepoint/church-admin-backend/internal/token"
)

// AuthMiddleware gates protected routes. A missing token is Unauthorized;
// a token that fails verification (bad signature, expired) is Forbidden.
// The two are distinct so clients can tell "log in" from "log in again".
func AuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.ID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or "" on public routes.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get("user_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// GetClaims returns the verified token claims set by AuthMiddleware.
func GetClaims(c *gin.Context) *token.Claims {
	if raw, exists := c.Get("claims"); exists {
		if claims, ok := raw.(*token.Claims); ok {
			return claims
		}
	}
	return nil
}
