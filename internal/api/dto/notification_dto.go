package dto

import "time"

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	SenderKind string    `json:"sender_kind"`
	SenderID   uint64    `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name"`
	PostID     *uint64   `json:"post_id,omitempty"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationUnreadDTO 未读数
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// NotificationReadAllDTO 一键已读结果
type NotificationReadAllDTO struct {
	Updated int64 `json:"updated"`
}
