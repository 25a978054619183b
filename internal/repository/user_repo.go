package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserQuery 管理员用户列表的筛选条件
type UserQuery struct {
	Search string
	Role   string
	Status string
	Limit  int
	Offset int
}

type UserRepo interface {
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	SearchUsers(ctx context.Context, q UserQuery) ([]*model.User, int64, error)
	GetRecentUsers(ctx context.Context, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	BanUser(ctx context.Context, id uint64, until time.Time, reason string) error
	UnbanUser(ctx context.Context, id uint64) error
	GetExpiredBans(ctx context.Context, now time.Time) ([]*model.User, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// GetUserByID 用户不存在时返回 nil, nil
func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) UpdateUserFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SearchUsers 按名称或邮箱模糊匹配，并按角色、状态筛选
func (s *UserRepoImpl) SearchUsers(ctx context.Context, q UserQuery) ([]*model.User, int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.User{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*model.User, 0)
	err := tx.Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserRepoImpl) GetRecentUsers(ctx context.Context, limit int) ([]*model.User, error) {
	users := make([]*model.User, 0, limit)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

func (s *UserRepoImpl) BanUser(ctx context.Context, id uint64, until time.Time, reason string) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_banned":    true,
			"banned_until": until,
			"ban_reason":   reason,
			"status":       model.UserStatusBanned,
		}).Error
}

func (s *UserRepoImpl) UnbanUser(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_banned":    false,
			"banned_until": nil,
			"ban_reason":   "",
			"status":       model.UserStatusActive,
		}).Error
}

// GetExpiredBans 返回封禁已到期但仍被标记为封禁的用户
func (s *UserRepoImpl) GetExpiredBans(ctx context.Context, now time.Time) ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := s.db.WithContext(ctx).
		Where("is_banned = ? AND banned_until IS NOT NULL AND banned_until <= ?", true, now).
		Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}
