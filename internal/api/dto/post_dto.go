package dto

import "time"

// PostCreateDTO 创建或修改帖子
type PostCreateDTO struct {
	Title      string   `json:"title" binding:"required,min=1,max=200"`
	Content    string   `json:"content" binding:"required"`
	CoverImage string   `json:"cover_image" binding:"omitempty,max=512"`
	Tags       []string `json:"tags" binding:"omitempty,max=20"`
	Category   string   `json:"category" binding:"omitempty,max=50"`
	Status     string   `json:"status" binding:"omitempty,oneof=draft published"`
}

// AuthorDTO 帖子作者的公开信息
type AuthorDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type PostDTO struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Excerpt      string     `json:"excerpt,omitempty"`
	CoverImage   string     `json:"cover_image"`
	ImageGallery []string   `json:"image_gallery"`
	Tags         []string   `json:"tags"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Views        int64      `json:"views"`
	LikesCount   int64      `json:"likes_count"`
	CommentCount int64      `json:"comment_count"`
	Author       *AuthorDTO `json:"author"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PostLikeStateDTO 点赞切换后的状态
type PostLikeStateDTO struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// ExploreQuery 探索页查询参数
type ExploreQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=50"`
	Sort     string `form:"sort" binding:"omitempty,oneof=recent popular views"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ExploreResultDTO 探索页结果
type ExploreResultDTO struct {
	Posts   []*PostDTO `json:"posts"`
	HasMore bool       `json:"has_more"`
}
