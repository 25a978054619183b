package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType 通知类型
type NotificationType string

const (
	TypeLike                      NotificationType = "like"
	TypeComment                   NotificationType = "comment"
	TypeFollow                    NotificationType = "follow"
	TypeAdminPostDeleted          NotificationType = "admin_post_deleted"
	TypeAdminCommentDeleted       NotificationType = "admin_comment_deleted"
	TypeAdminDeletedCommentOnPost NotificationType = "admin_deleted_comment_on_post"
	TypeBanNotice                 NotificationType = "ban_notice"
	TypeUnbanNotice               NotificationType = "unban_notice"
)

// SenderKind 区分系统通知与用户触发的通知
type SenderKind string

const (
	SenderSystem SenderKind = "system"
	SenderUser   SenderKind = "user"
)

// NotificationSender 发送方，Kind 为 system 时 UserID 恒为 0
type NotificationSender struct {
	Kind   SenderKind `bson:"kind" json:"kind"`
	UserID uint64     `bson:"user_id,omitempty" json:"userId,omitempty"`
}

func SystemSender() NotificationSender {
	return NotificationSender{Kind: SenderSystem}
}

func UserSender(userID uint64) NotificationSender {
	return NotificationSender{Kind: SenderUser, UserID: userID}
}

// NotificationModel 通知模型
type NotificationModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"`
	Sender      NotificationSender `bson:"sender" json:"sender"`
	Type        NotificationType   `bson:"type" json:"type"`
	PostID      *uint64            `bson:"post_id,omitempty" json:"postId,omitempty"`
	Message     string             `bson:"message" json:"message"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
