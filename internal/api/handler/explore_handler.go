package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type ExploreHandler struct {
	exploreService service.ExploreService
}

func NewExploreHandler(exploreService service.ExploreService) *ExploreHandler {
	return &ExploreHandler{exploreService: exploreService}
}

// ExplorePublic 公开探索页
func (s *ExploreHandler) ExplorePublic(c *gin.Context) {
	var q dto.ExploreQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.exploreService.ExplorePublic(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// ExplorePrivate 按兴趣与关注排序的个性化探索页
func (s *ExploreHandler) ExplorePrivate(c *gin.Context) {
	var q dto.ExploreQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.exploreService.ExplorePrivate(c.Request.Context(), c.GetUint64(middleware.UserIDKey), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
