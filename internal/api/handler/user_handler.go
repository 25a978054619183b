package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register 注册
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user, err := s.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedWith(c, user)
}

// Login 邮箱密码登录
func (s *UserHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	token, err := s.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// Logout 注销当前 Token
func (s *UserHandler) Logout(c *gin.Context) {
	if err := s.userService.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProfile 当前登录用户信息
func (s *UserHandler) GetProfile(c *gin.Context) {
	user, err := s.userService.GetProfile(c.Request.Context(), c.GetUint64(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile 修改个人资料
func (s *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user, err := s.userService.UpdateProfile(c.Request.Context(), c.GetUint64(middleware.UserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
