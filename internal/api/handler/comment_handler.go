package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment 发表评论或回复
func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	comment, err := s.commentService.CreateComment(c.Request.Context(), c.GetUint64(middleware.UserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedWith(c, comment)
}

// GetComments 扁平评论列表
func (s *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := uintParam(c, "postId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	comments, err := s.commentService.GetComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// GetCommentTree 嵌套评论
func (s *CommentHandler) GetCommentTree(c *gin.Context) {
	postID, ok := uintParam(c, "postId")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	tree, err := s.commentService.GetCommentTree(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

// DeleteComment 删除评论及其全部回复
func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	actor := service.Actor{
		UserID:  c.GetUint64(middleware.UserIDKey),
		IsAdmin: slices.Contains(c.GetStringSlice(middleware.RolesKey), model.RoleAdmin),
	}
	if err := s.commentService.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
