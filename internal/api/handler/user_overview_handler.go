package handler

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// UserOverviewHandler 个人数据面板
type UserOverviewHandler struct {
	userOverviewService service.UserOverviewService
}

func NewUserOverviewHandler(userOverviewService service.UserOverviewService) *UserOverviewHandler {
	return &UserOverviewHandler{userOverviewService: userOverviewService}
}

// forCurrentUser 以当前登录用户调用 fn 并返回其结果
func forCurrentUser[T any](c *gin.Context, fn func(ctx context.Context, userID uint64) (T, error)) {
	res, err := fn(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserOverviewHandler) GetOverview(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetOverview)
}

func (s *UserOverviewHandler) GetTopPosts(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetTopPosts)
}

func (s *UserOverviewHandler) GetCategoryStats(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetCategoryStats)
}

func (s *UserOverviewHandler) GetPublishingTrends(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetPublishingTrends)
}

func (s *UserOverviewHandler) GetStaleDrafts(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetStaleDrafts)
}

func (s *UserOverviewHandler) GetWordStats(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetWordStats)
}

func (s *UserOverviewHandler) GetRecentlyLikedPosts(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetRecentlyLikedPosts)
}

func (s *UserOverviewHandler) GetMilestones(c *gin.Context) {
	forCurrentUser(c, s.userOverviewService.GetMilestones)
}
