package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	notificationCollection = "notifications"
	notificationTTL        = 7 * 24 * time.Hour
)

type NotificationRepo interface {
	Create(ctx context.Context, n *NotificationModel) error
	List(ctx context.Context, recipientID uint64, unreadOnly bool, limit, offset int64) ([]*NotificationModel, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*NotificationModel, error)
	MarkAsRead(ctx context.Context, recipientID uint64, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, recipientID uint64) (int64, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
	Delete(ctx context.Context, recipientID uint64, id primitive.ObjectID) error
	DeleteByRecipient(ctx context.Context, recipientID uint64) error
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection(notificationCollection),
	}
}

// EnsureNotificationIndexes 创建查询索引以及 7 天过期的 TTL 索引
func EnsureNotificationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(notificationCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(notificationTTL.Seconds())),
		},
	})
	return err
}

func (s *notificationRepoImpl) Create(ctx context.Context, n *NotificationModel) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

// List 按时间倒序分页获取通知
func (s *notificationRepoImpl) List(ctx context.Context, recipientID uint64, unreadOnly bool, limit, offset int64) ([]*NotificationModel, error) {
	filter := bson.M{"recipient_id": recipientID}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*NotificationModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *notificationRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*NotificationModel, error) {
	var n NotificationModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, recipientID uint64, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "recipient_id": recipientID}
	result, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 返回被标记的条数
func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, recipientID uint64) (int64, error) {
	filter := bson.M{"recipient_id": recipientID, "read": false}
	result, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *notificationRepoImpl) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
}

func (s *notificationRepoImpl) Delete(ctx context.Context, recipientID uint64, id primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "recipient_id": recipientID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByRecipient 删除用户收到的全部通知，用于注销账号
func (s *notificationRepoImpl) DeleteByRecipient(ctx context.Context, recipientID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"recipient_id": recipientID})
	return err
}
