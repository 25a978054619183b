package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost 发布帖子或保存草稿
func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	post, err := s.postService.CreatePost(c.Request.Context(), c.GetUint64(middleware.UserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedWith(c, post)
}

// GetPosts 已发布帖子列表
func (s *PostHandler) GetPosts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", consts.DefaultPageSize)
	posts, err := s.postService.GetPublishedPosts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 帖子详情，非作者访问时浏览量加一
func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	post, err := s.postService.GetPost(c.Request.Context(), c.GetUint64(middleware.UserIDKey), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// GetMyPosts 当前用户的帖子，包含草稿
func (s *PostHandler) GetMyPosts(c *gin.Context) {
	posts, err := s.postService.GetMyPosts(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	post, err := s.postService.UpdatePost(c.Request.Context(), c.GetUint64(middleware.UserIDKey), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.postService.DeletePost(c.Request.Context(), c.GetUint64(middleware.UserIDKey), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleLike 点赞/取消点赞
func (s *PostHandler) ToggleLike(c *gin.Context) {
	postID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	state, err := s.postService.ToggleLike(c.Request.Context(), c.GetUint64(middleware.UserIDKey), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}
