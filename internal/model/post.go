package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

	DefaultCategory = "Uncategorized"
)

type Post struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	AuthorID     uint64    `gorm:"not null;index:idx_author_id" json:"authorId"`
	Title        string    `gorm:"type:varchar(200);not null" json:"title"`
	Content      string    `gorm:"type:longtext;not null" json:"content"`
	CoverImage   string    `gorm:"type:varchar(512);default:''" json:"coverImage"`
	ImageGallery []string  `gorm:"type:json;serializer:json" json:"imageGallery"`
	Tags         []string  `gorm:"type:json;serializer:json" json:"tags"`
	Category     string    `gorm:"type:varchar(50);not null;default:'Uncategorized';index:idx_category" json:"category"`
	Status       string    `gorm:"type:varchar(10);not null;default:'draft';index:idx_status" json:"status"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	LikesCount   int64     `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// 关联关系
	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"author"`
}

func (Post) TableName() string {
	return "posts"
}
