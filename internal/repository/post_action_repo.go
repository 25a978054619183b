package repository

import (
	"Inkwell/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.PostLike) error
	DeleteLike(ctx context.Context, userID, postID uint64) (bool, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	DeleteLikesByPostIDs(ctx context.Context, postIDs []uint64) error
	DeleteLikesByUser(ctx context.Context, userID uint64) error
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.PostLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

// DeleteLike 返回是否确实删除了一条记录
func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	return result.RowsAffected > 0, result.Error
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) DeleteLikesByPostIDs(ctx context.Context, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Delete(&model.PostLike{}).Error
}

// DeleteLikesByUser 删除用户的全部点赞，同时扣减被点赞帖子的计数
func (s *PostActionRepoImpl) DeleteLikesByUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := releaseLikesOf(tx, userID).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.PostLike{}).Error
	})
}

func releaseLikesOf(tx *gorm.DB, userID uint64) *gorm.DB {
	liked := tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.PostLike{}).
		Select("post_id").
		Where("user_id = ?", userID)
	return tx.Model(&model.Post{}).
		Where("id IN (?)", liked).
		UpdateColumn("likes_count", gorm.Expr("GREATEST(CAST(likes_count AS SIGNED) - 1, 0)"))
}
