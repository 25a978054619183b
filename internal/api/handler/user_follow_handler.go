package handler

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowService service.UserFollowService
}

func NewUserFollowHandler(userFollowService service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowService: userFollowService}
}

// ToggleFollow 关注/取消关注
func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	targetID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	state, err := s.userFollowService.ToggleFollow(c.Request.Context(), c.GetUint64(middleware.UserIDKey), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *UserFollowHandler) GetFollowLists(c *gin.Context) {
	lists, err := s.userFollowService.GetFollowLists(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lists)
}
