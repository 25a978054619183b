package dto

import "time"

// RegisterDTO 注册请求
type RegisterDTO struct {
	Name     string `json:"name" binding:"required,min=2,max=50" validate:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=6" validate:"required,min=6"`
}

// CredentialDTO 登录请求
type CredentialDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 登录返回
type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户信息，不包含密码
type UserDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Role         string            `json:"role"`
	Bio          string            `json:"bio"`
	Location     string            `json:"location"`
	Website      string            `json:"website"`
	ProfileImage string            `json:"profile_image"`
	SocialLinks  map[string]string `json:"social_links"`
	Interests    []string          `json:"interests"`
	Status       string            `json:"status"`
	IsBanned     bool              `json:"is_banned"`
	BannedUntil  *time.Time        `json:"banned_until"`
	BanReason    string            `json:"ban_reason"`
	CreatedAt    time.Time         `json:"created_at"`
}

// UserBriefDTO 列表中展示的用户
type UserBriefDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// ProfileUpdateDTO 用户修改个人资料，未传的字段保持不变
type ProfileUpdateDTO struct {
	Name         *string           `json:"name" validate:"omitempty,min=2,max=50"`
	Bio          *string           `json:"bio" validate:"omitempty,max=500"`
	Location     *string           `json:"location" validate:"omitempty,max=100"`
	Website      *string           `json:"website" validate:"omitempty,max=255"`
	ProfileImage *string           `json:"profile_image" validate:"omitempty,max=512"`
	SocialLinks  map[string]string `json:"social_links"`
	Interests    []string          `json:"interests" validate:"omitempty,max=20"`
}

// FollowStateDTO 关注操作结果
type FollowStateDTO struct {
	Following bool `json:"following"`
}

// FollowListsDTO 关注与粉丝列表
type FollowListsDTO struct {
	Followers []*UserBriefDTO `json:"followers"`
	Following []*UserBriefDTO `json:"following"`
}

// AuthorProfileDTO 作者主页的公开资料
type AuthorProfileDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Bio          string            `json:"bio"`
	Location     string            `json:"location"`
	Website      string            `json:"website"`
	ProfileImage string            `json:"profile_image"`
	SocialLinks  map[string]string `json:"social_links"`
	Followers    int64             `json:"followers"`
	Following    int64             `json:"following"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AuthorPageDTO 作者主页
type AuthorPageDTO struct {
	Author *AuthorProfileDTO `json:"author"`
	Posts  []*PostDTO        `json:"posts"`
}
