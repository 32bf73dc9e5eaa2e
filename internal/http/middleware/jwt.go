package middleware

import (
	"net/http"
	"strings"

	"rpsduel/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates requests via "Authorization: Bearer <token>" and puts
// the caller's address into the gin context under "address".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		addr, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("address", addr)
		c.Next()
	}
}

// CallerAddress extracts the authenticated address set by JWT.
func CallerAddress(c *gin.Context) (string, bool) {
	v, ok := c.Get("address")
	if !ok {
		return "", false
	}
	addr, ok := v.(string)
	return addr, ok && addr != ""
}
