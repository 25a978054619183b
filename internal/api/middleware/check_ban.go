package middleware

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckBanStatus 封禁中的用户不能发帖、评论、点赞
func CheckBanStatus(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		banned, err := userService.IsBanned(c.Request.Context(), c.GetUint64(UserIDKey))
		if err != nil {
			response.Error(c, err)
			return
		}
		if banned {
			response.Error(c, service.ErrUserBan)
			return
		}
		c.Next()
	}
}
