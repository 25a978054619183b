package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

type User struct {
	ID           uint64            `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:varchar(50);not null" json:"name"`
	Email        string            `gorm:"type:varchar(255);uniqueIndex:idx_email;not null" json:"email"`
	Password     string            `gorm:"type:varchar(255);not null" json:"-"`
	Role         string            `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	Bio          string            `gorm:"type:varchar(500);default:''" json:"bio"`
	Location     string            `gorm:"type:varchar(100);default:''" json:"location"`
	Website      string            `gorm:"type:varchar(255);default:''" json:"website"`
	ProfileImage string            `gorm:"type:varchar(512);default:''" json:"profileImage"`
	SocialLinks  map[string]string `gorm:"type:json;serializer:json" json:"socialLinks"`
	Interests    []string          `gorm:"type:json;serializer:json" json:"interests"`
	Status       string            `gorm:"type:varchar(10);not null;default:'active';index:idx_status" json:"status"`
	IsBanned     bool              `gorm:"type:tinyint(1);not null;default:0" json:"isBanned"`
	BannedUntil  *time.Time        `json:"bannedUntil"`
	BanReason    string            `gorm:"type:varchar(255);default:''" json:"banReason"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BanActive 封禁标记存在且未过期
func (u *User) BanActive(now time.Time) bool {
	return u.IsBanned && u.BannedUntil != nil && now.Before(*u.BannedUntil)
}
