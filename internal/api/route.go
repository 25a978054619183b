package api

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, group *HandlersGroup, guards *Guards) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(cfg.Server.TrustedProxies)

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r, cfg.Logstash)
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    200,
			"message": "pong",
			"data":    nil,
		})
	})

	apiGroup := r.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.POST("/logout", guards.Auth, group.UserHandler.Logout)
			authGroup.GET("/profile", guards.Auth, group.UserHandler.GetProfile)
		}

		profileGroup := apiGroup.Group("/profile")
		profileGroup.Use(guards.Auth)
		{
			profileGroup.GET("", group.UserHandler.GetProfile)
			profileGroup.PUT("", group.UserHandler.UpdateProfile)
		}

		userGroup := apiGroup.Group("/users")
		userGroup.Use(guards.Auth)
		{
			userGroup.PATCH("/follow/:id", group.UserFollowHandler.ToggleFollow)
			userGroup.GET("/followers-following", group.UserFollowHandler.GetFollowLists)
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(guards.AuthOptional)
			{
				authOptGroup.GET("", group.PostHandler.GetPosts)
				authOptGroup.GET("/:id", group.PostHandler.GetPost)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(guards.Auth)
			{
				authGroup.GET("/my-posts", group.PostHandler.GetMyPosts)
				authGroup.PUT("/:id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:id", group.PostHandler.DeletePost)
			}

			// 封禁用户不能发帖、点赞
			writeGroup := authGroup.Group("")
			writeGroup.Use(guards.NotBanned)
			{
				writeGroup.POST("", group.PostHandler.CreatePost)
				writeGroup.PATCH("/:id/like", group.PostHandler.ToggleLike)
			}
		}

		exploreGroup := apiGroup.Group("/explore")
		{
			exploreGroup.GET("/public", group.ExploreHandler.ExplorePublic)
			exploreGroup.GET("/private", guards.Auth, group.ExploreHandler.ExplorePrivate)
		}

		// 个人数据面板
		overviewGroup := apiGroup.Group("/overview/me")
		overviewGroup.Use(guards.Auth)
		{
			overviewGroup.GET("/overview", group.UserOverviewHandler.GetOverview)
			overviewGroup.GET("/top-blogs", group.UserOverviewHandler.GetTopPosts)
			overviewGroup.GET("/category-stats", group.UserOverviewHandler.GetCategoryStats)
			overviewGroup.GET("/trends", group.UserOverviewHandler.GetPublishingTrends)
			overviewGroup.GET("/stale-drafts", group.UserOverviewHandler.GetStaleDrafts)
			overviewGroup.GET("/word-stats", group.UserOverviewHandler.GetWordStats)
			overviewGroup.GET("/liked-posts", group.UserOverviewHandler.GetRecentlyLikedPosts)
			overviewGroup.GET("/milestones", group.UserOverviewHandler.GetMilestones)
		}

		apiGroup.GET("/authors/:id", group.AuthorHandler.GetAuthorPage)

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/:postId", group.CommentHandler.GetComments)
			commentGroup.GET("/:postId/tree", group.CommentHandler.GetCommentTree)
			commentGroup.POST("", guards.Auth, guards.NotBanned, group.CommentHandler.CreateComment)
			commentGroup.DELETE("/:id", guards.Auth, group.CommentHandler.DeleteComment)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(guards.Auth)
		{
			notificationGroup.GET("", group.NotificationHandler.GetNotifications)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.PUT("/:id/read", group.NotificationHandler.MarkRead)
			notificationGroup.POST("/read-all", group.NotificationHandler.MarkAllRead)
			notificationGroup.DELETE("/:id", group.NotificationHandler.DeleteNotification)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(guards.Auth, guards.Admin)
		{
			adminGroup.GET("/overview", group.AdminHandler.GetOverview)

			adminUserGroup := adminGroup.Group("/users")
			{
				adminUserGroup.GET("", group.AdminHandler.ListUsers)
				adminUserGroup.GET("/:id", group.AdminHandler.GetUser)
				adminUserGroup.PUT("/:id", group.AdminHandler.UpdateUser)
				adminUserGroup.DELETE("/:id", group.AdminHandler.DeleteUser)
				adminUserGroup.PUT("/:id/ban", group.AdminHandler.BanUser)
				adminUserGroup.PUT("/:id/unban", group.AdminHandler.UnbanUser)

				adminUserGroup.DELETE("/posts/:postId", group.AdminHandler.DeletePost)
				adminUserGroup.GET("/posts/:postId/full", group.AdminHandler.GetPostModerationView)
				adminUserGroup.GET("/posts/:postId/comments", group.AdminHandler.GetPostComments)
				adminUserGroup.DELETE("/comments/:commentId", group.AdminHandler.DeleteComment)
			}
		}
	}

	return r
}
