package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware rejects requests without a valid bearer token and puts the
// caller's identity on the request context.
func JWTMiddleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abort(c, "authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			abort(c, "invalid or expired token")
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), claims.UserID, claims.Username))
		c.Set(string(userIDKey), claims.UserID)
		c.Next()
	}
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized", "error": msg})
}
