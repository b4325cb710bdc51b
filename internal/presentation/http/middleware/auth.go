package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/services"
)

// roleContextKey is where RequireAuth stores the authenticated role.
const roleContextKey = "authRole"

// RequireAuth gates mutating endpoints behind a valid bearer token.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		role, err := auth.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// RequireAdmin further restricts an endpoint to the admin role. Must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFrom(c) != services.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// RoleFrom returns the authenticated role set by RequireAuth, empty when the
// request is unauthenticated.
func RoleFrom(c *gin.Context) string {
	if role, ok := c.Get(roleContextKey); ok {
		if s, ok := role.(string); ok {
			return s
		}
	}
	return ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
