package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUserService  service.AdminUserService
	moderationService service.ModerationService
	overviewService   service.OverviewService
}

func NewAdminHandler(
	adminUserService service.AdminUserService,
	moderationService service.ModerationService,
	overviewService service.OverviewService,
) *AdminHandler {
	return &AdminHandler{
		adminUserService:  adminUserService,
		moderationService: moderationService,
		overviewService:   overviewService,
	}
}

// GetOverview 后台概览
func (s *AdminHandler) GetOverview(c *gin.Context) {
	res, err := s.overviewService.GetOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.AdminUserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.adminUserService.ListUsers(c.Request.Context(), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) GetUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.adminUserService.GetUserDetail(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.AdminUserUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.adminUserService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteUser 删除用户以及其全部内容
func (s *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.adminUserService.DeleteUser(c.Request.Context(), c.GetUint64(middleware.UserIDKey), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) BanUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.BanDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.adminUserService.BanUser(c.Request.Context(), c.GetUint64(middleware.UserIDKey), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) UnbanUser(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.adminUserService.UnbanUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeletePost 管理员删除帖子
func (s *AdminHandler) DeletePost(c *gin.Context) {
	postID, ok := uintParam(c, "postId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.moderationService.DeletePost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetPostModerationView 帖子与完整评论树
func (s *AdminHandler) GetPostModerationView(c *gin.Context) {
	postID, ok := uintParam(c, "postId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.moderationService.GetPostModerationView(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) GetPostComments(c *gin.Context) {
	postID, ok := uintParam(c, "postId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.moderationService.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteComment 管理员删除评论，并通知评论作者与帖子作者
func (s *AdminHandler) DeleteComment(c *gin.Context) {
	commentID, ok := uintParam(c, "commentId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.moderationService.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
