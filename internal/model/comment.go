package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;index:idx_post_created,priority:1" json:"postId"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_id" json:"authorId"`
	ParentID  *uint64   `gorm:"index:idx_parent_id" json:"parentId"` // nil 表示一级评论
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_post_created,priority:2" json:"createdAt"`

	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// ThreadKey 返回评论在线程中的 id 与父 id
func (c *Comment) ThreadKey() (uint64, *uint64) {
	return c.ID, c.ParentID
}
