package mongo

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *NotificationModel) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, recipientID uint64, unreadOnly bool, limit, offset int64) ([]*NotificationModel, error) {
	args := m.Called(ctx, recipientID, unreadOnly, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*NotificationModel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*NotificationModel, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*NotificationModel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, recipientID uint64, id primitive.ObjectID) error {
	return m.Called(ctx, recipientID, id).Error(0)
}

func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint64) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, recipientID uint64, id primitive.ObjectID) error {
	return m.Called(ctx, recipientID, id).Error(0)
}

func (m *MockNotificationRepo) DeleteByRecipient(ctx context.Context, recipientID uint64) error {
	return m.Called(ctx, recipientID).Error(0)
}
