package middleware

import (
	"strings"

	"geocheckin/response"
	"geocheckin/services"

	"github.com/gin-gonic/gin"
)

// TokenParser verifies an access token.
type TokenParser interface {
	ParseToken(tokenString string) (services.UserInfo, error)
}

// AuthMiddleware requires a valid bearer token and, when roles are given,
// one of those roles.
func AuthMiddleware(tokens TokenParser, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		info, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("userID", info.UserId)
		c.Set("userRole", info.Role)
		c.Set("userEmail", info.Email)
		c.Next()
	}
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
