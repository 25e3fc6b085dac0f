package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ValidateExchangeKey protects the identity-exchange endpoint: only the
// trusted frontend server, which has already verified the user against the
// hosted auth provider, may trade a profile for a storefront session.
func ValidateExchangeKey(c *gin.Context) {
	key := c.GetHeader("X-API-KEY")
	want := os.Getenv("AUTH_EXCHANGE_KEY")
	if want == "" || subtle.ConstantTimeCompare([]byte(key), []byte(want)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}
