package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/auth"
)

const PrincipalKey = "principal"

// RequireSession validates the bearer token and stores the principal in the
// request context.
func RequireSession(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	principal, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set(PrincipalKey, principal)
	c.Set("user_id", principal.ID)
	c.Next()
}

// RequireAdmin gates admin screens. Any principal with the admin role
// passes, whichever provider issued the session.
func RequireAdmin(c *gin.Context) {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}
	principal := val.(*auth.Principal)
	if principal.Role != auth.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// Principal returns the authenticated principal, if any.
func Principal(c *gin.Context) (*auth.Principal, bool) {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	return val.(*auth.Principal), true
}
