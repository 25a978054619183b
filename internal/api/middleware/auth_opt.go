package middleware

import (
	"Inkwell/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware(tokenManager *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Set(UserIDKey, uint64(0))
			c.Next()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			c.Set(UserIDKey, uint64(0))
		} else {
			c.Set(UserIDKey, claims.UserID)
			c.Set(RolesKey, claims.Roles)
		}

		c.Next()
	}
}
