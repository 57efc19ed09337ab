package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthPassthroughMiddleware creates a Gin middleware handler that requires an
// Authorization header and stores it for the upstream client. The engine does
// not validate the credential itself; the upstream ERP API is the authority
// and rejects bad tokens on its own.
func AuthPassthroughMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		// Store the full header value; the upstream client forwards it as-is.
		c.Set(string(authTokenKey), authHeader)
		c.Request = c.Request.WithContext(WithAuthToken(c.Request.Context(), authHeader))

		c.Next()
	}
}
