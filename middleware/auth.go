package middleware

import (
	"Moodboard/pkg/context"
	"Moodboard/pkg/jwt"
	"Moodboard/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer 访问令牌, 通过后写入审核员用户名
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "bearer token not found")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(context.CtxUsername, claims.Username)

		c.Next()
	}
}
