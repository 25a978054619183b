package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// Notice 待发送的通知
type Notice struct {
	RecipientID uint64
	Sender      mongo.NotificationSender
	Type        mongo.NotificationType
	PostID      *uint64
	Message     string
}

type NotificationService interface {
	// Notify 尽力发送，失败只记录日志
	Notify(ctx context.Context, n Notice)
	GetNotificationList(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, id string) error
	MarkAllRead(ctx context.Context, userID uint64) (*dto.NotificationReadAllDTO, error)
	DeleteNotification(ctx context.Context, userID uint64, id string) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
	userRepo         repository.UserRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo, userRepo repository.UserRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (s *notificationServiceImpl) Notify(ctx context.Context, n Notice) {
	if n.RecipientID == 0 {
		return
	}
	if n.Sender.Kind == "" {
		n.Sender = mongo.SystemSender()
	}
	err := s.notificationRepo.Create(ctx, &mongo.NotificationModel{
		RecipientID: n.RecipientID,
		Sender:      n.Sender,
		Type:        n.Type,
		PostID:      n.PostID,
		Message:     n.Message,
	})
	if err != nil {
		log.ErrorContext(ctx, "notification create failed",
			"recipient_id", n.RecipientID,
			"type", n.Type,
			"err", err)
	}
}

// GetNotificationList 获取通知列表并补全发送者名称
func (s *notificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, unreadOnly bool, page, pageSize int) ([]*dto.NotificationDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	list, err := s.notificationRepo.List(ctx, userID, unreadOnly, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint64, 0, len(list))
	for _, m := range list {
		if m.Sender.Kind == mongo.SenderUser && m.Sender.UserID > 0 {
			senderIDs = append(senderIDs, m.Sender.UserID)
		}
	}
	names := make(map[uint64]string, len(senderIDs))
	if len(senderIDs) > 0 {
		users, err := s.userRepo.GetUsersByIDs(ctx, senderIDs)
		if err != nil {
			log.WarnContext(ctx, "notification sender lookup failed", "err", err)
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{
			ID:         m.ID.Hex(),
			Type:       string(m.Type),
			SenderKind: string(m.Sender.Kind),
			PostID:     m.PostID,
			Message:    m.Message,
			Read:       m.Read,
			CreatedAt:  m.CreatedAt,
		}
		if m.Sender.Kind == mongo.SenderUser {
			d.SenderID = m.Sender.UserID
			d.SenderName = names[m.Sender.UserID]
		} else {
			d.SenderName = "System"
		}
		res = append(res, d)
	}
	return res, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 只能标记自己收到的通知
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, id string) error {
	notice, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if notice.Read {
		return nil
	}
	return s.notificationRepo.MarkAsRead(ctx, userID, notice.ID)
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) (*dto.NotificationReadAllDTO, error) {
	n, err := s.notificationRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationReadAllDTO{Updated: n}, nil
}

func (s *notificationServiceImpl) DeleteNotification(ctx context.Context, userID uint64, id string) error {
	notice, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, userID, notice.ID)
}

func (s *notificationServiceImpl) getOwned(ctx context.Context, userID uint64, id string) (*mongo.NotificationModel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrParamInvalid
	}
	notice, err := s.notificationRepo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if notice.RecipientID != userID {
		return nil, ErrActionForbidden
	}
	return notice, nil
}
