package api

import (
	"Inkwell/internal/api/handler"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	UserFollowHandler   *handler.UserFollowHandler
	PostHandler         *handler.PostHandler
	AuthorHandler       *handler.AuthorHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler
	UserOverviewHandler *handler.UserOverviewHandler
	ExploreHandler      *handler.ExploreHandler
}

// Guards 路由使用的鉴权中间件
type Guards struct {
	Auth         gin.HandlerFunc
	AuthOptional gin.HandlerFunc
	NotBanned    gin.HandlerFunc
	Admin        gin.HandlerFunc
}

func NewGuards(tokenManager *security.TokenManager, cache redis.Cache, userService service.UserService) *Guards {
	return &Guards{
		Auth:         middleware.AuthMiddleware(tokenManager, cache),
		AuthOptional: middleware.AuthOptionalMiddleware(tokenManager),
		NotBanned:    middleware.CheckBanStatus(userService),
		Admin:        middleware.CheckRoles(model.RoleAdmin),
	}
}
