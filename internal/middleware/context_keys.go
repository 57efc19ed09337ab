package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// authTokenKey is the key used to store the caller's Authorization header in
// the request context. Using a custom type prevents collisions.
const authTokenKey = contextKey("authToken")

// WithAuthToken returns a context carrying the upstream Authorization value.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// GetAuthTokenFromCtx retrieves the Authorization value stored by the
// passthrough middleware. It returns the token and a boolean indicating if it
// was found.
func GetAuthTokenFromCtx(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// GetAuthTokenFromContext retrieves the Authorization value from the Gin
// context, falling back to the request context.
func GetAuthTokenFromContext(c *gin.Context) (string, bool) {
	tokenVal, exists := c.Get(string(authTokenKey))
	if !exists {
		return GetAuthTokenFromCtx(c.Request.Context())
	}

	token, ok := tokenVal.(string)
	if !ok || token == "" {
		return "", false
	}

	return token, true
}
