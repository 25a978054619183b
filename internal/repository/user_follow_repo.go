package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	GetUserFollowers(ctx context.Context, userID uint64) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userID uint64) ([]*model.UserFollow, error)
	GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetUserFollow(ctx context.Context, followerID, followingID uint64) (*model.UserFollow, error)
	CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) error
	DeleteUserFollow(ctx context.Context, followerID, followingID uint64) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
	CountFollows(ctx context.Context, userID uint64) (followers int64, following int64, err error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

func userBriefColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "profile_image")
}

// GetUserFollowers 获取用户的粉丝列表
func (s *UserFollowRepoImpl) GetUserFollowers(ctx context.Context, userID uint64) ([]*model.UserFollow, error) {
	userFollows := make([]*model.UserFollow, 0)
	err := s.db.WithContext(ctx).
		Preload("Follower", userBriefColumns).
		Where("following_id = ?", userID).
		Order("created_at desc").
		Find(&userFollows).Error
	return userFollows, err
}

// GetUserFollowing 获取用户的关注列表
func (s *UserFollowRepoImpl) GetUserFollowing(ctx context.Context, userID uint64) ([]*model.UserFollow, error) {
	userFollows := make([]*model.UserFollow, 0)
	err := s.db.WithContext(ctx).
		Preload("Following", userBriefColumns).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Find(&userFollows).Error
	return userFollows, err
}

func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := s.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// GetUserFollow 未关注时返回 nil, nil
func (s *UserFollowRepoImpl) GetUserFollow(ctx context.Context, followerID, followingID uint64) (*model.UserFollow, error) {
	userFollow := &model.UserFollow{}
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(userFollow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userFollow, nil
}

func (s *UserFollowRepoImpl) CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) error {
	return s.db.WithContext(ctx).Create(userFollow).Error
}

func (s *UserFollowRepoImpl) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{}).Error
}

func (s *UserFollowRepoImpl) DeleteAllForUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&model.UserFollow{}).Error
}

// CountFollows 统计粉丝数与关注数
func (s *UserFollowRepoImpl) CountFollows(ctx context.Context, userID uint64) (int64, int64, error) {
	var followers, following int64
	err := s.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("following_id = ?", userID).
		Count(&followers).Error
	if err != nil {
		return 0, 0, err
	}
	err = s.db.WithContext(ctx).
		Model(&model.UserFollow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
