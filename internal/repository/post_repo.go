package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// authorColumns 预加载作者时只取公开字段
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "profile_image")
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPublishedPosts(ctx context.Context, limit, offset int) ([]*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint64) ([]*model.Post, error)
	GetPublishedPostsByAuthor(ctx context.Context, authorID uint64, category string) ([]*model.Post, error)
	GetPostIDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error)
	UpdatePostFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	IncrementViews(ctx context.Context, id uint64) error
	AddLikesCount(ctx context.Context, id uint64, delta int64) error
	DeletePostsByIDs(ctx context.Context, ids []uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// GetPost 帖子不存在时返回 nil, nil
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("Author", authorColumns).
		First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *PostRepoImpl) GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("id IN ?", ids).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPublishedPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("status = ?", model.PostStatusPublished).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPostsByAuthor(ctx context.Context, authorID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetPublishedPostsByAuthor 作者主页展示的已发布帖子，category 为空时不过滤
func (s *PostRepoImpl) GetPublishedPostsByAuthor(ctx context.Context, authorID uint64, category string) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).
		Omit("content").
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPostIDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *PostRepoImpl) UpdatePostFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *PostRepoImpl) IncrementViews(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (s *PostRepoImpl) AddLikesCount(ctx context.Context, id uint64, delta int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("GREATEST(CAST(likes_count AS SIGNED) + ?, 0)", delta)).Error
}

func (s *PostRepoImpl) DeletePostsByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Post{}).Error
}
