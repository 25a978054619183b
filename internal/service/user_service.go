package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) (*dto.UserDTO, error)
	IsBanned(ctx context.Context, userID uint64) (bool, error)
}

type userServiceImpl struct {
	userRepo     repository.UserRepo
	postESRepo   es.PostRepo
	tokenManager *security.TokenManager
	cache        redis.Cache
}

func NewUserService(userRepo repository.UserRepo, postESRepo es.PostRepo, tokenManager *security.TokenManager, cache redis.Cache) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		postESRepo:   postESRepo,
		tokenManager: tokenManager,
		cache:        cache,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exist, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     model.RoleUser,
		Status:   model.UserStatusActive,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if isDuplicateError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return toUserDTO(user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := s.tokenManager.GenerateToken(user.ID, []string{user.Role})
	if err != nil {
		return nil, err
	}
	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, User: userDTO}, nil
}

// Logout 将 Token 签名加入黑名单直到其自然过期
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		return UnauthorizedError
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	ttl := s.tokenManager.Remaining(claims)
	if ttl <= 0 {
		return nil
	}
	return s.cache.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}

func (s *userServiceImpl) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return true, nil
	}
	return s.cache.Exists(ctx, consts.TokenBlacklistKey+signature)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

// UpdateProfile 只更新请求中携带的字段，改名后同步搜索索引中的作者名
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) (*dto.UserDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParamInvalid, err)
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := make(map[string]interface{})
	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrParamInvalid
		}
		renamed = name != user.Name
		fields["name"] = name
		user.Name = name
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
		user.Location = *req.Location
	}
	if req.Website != nil {
		fields["website"] = *req.Website
		user.Website = *req.Website
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = *req.ProfileImage
		user.ProfileImage = *req.ProfileImage
	}
	if req.SocialLinks != nil {
		fields["social_links"] = req.SocialLinks
		user.SocialLinks = req.SocialLinks
	}
	if req.Interests != nil {
		interests := util.NormalizeTags(req.Interests)
		fields["interests"] = interests
		user.Interests = interests
	}

	if err = s.userRepo.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	if renamed {
		if err = s.postESRepo.UpdateAuthorName(ctx, userID, user.Name); err != nil {
			log.WarnContext(ctx, "sync author name to es failed", "user_id", userID, "err", err)
		}
	}
	return toUserDTO(user)
}

// IsBanned 封禁状态以 bannedUntil 为准，过期的封禁视为未封禁
func (s *userServiceImpl) IsBanned(ctx context.Context, userID uint64) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	return user.BanActive(time.Now()), nil
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

func toUserBrief(user *model.User) *dto.UserBriefDTO {
	return &dto.UserBriefDTO{
		ID:           user.ID,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
	}
}
