package dto

import "time"

// CommentCreateDTO 创建评论请求，parent_id 为空表示一级评论，内容由 service 校验
type CommentCreateDTO struct {
	PostID   uint64  `json:"post_id" binding:"required"`
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parent_id"`
}

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"post_id"`
	AuthorID   uint64    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	ParentID   *uint64   `json:"parent_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentNodeDTO 线程树中的评论
type CommentNodeDTO struct {
	CommentDTO
	Replies []*CommentNodeDTO `json:"replies"`
}

// ModerationViewDTO 管理员审核帖子时看到的视图
type ModerationViewDTO struct {
	Post     *PostDTO          `json:"post"`
	Comments []*CommentNodeDTO `json:"comments"`
}
