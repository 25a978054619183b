package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint64, newestFirst bool) ([]*model.Comment, error)
	GetCommentsByAuthorID(ctx context.Context, authorID uint64) ([]*model.Comment, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
	CountByAuthorID(ctx context.Context, authorID uint64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	GetOrphanPostIDs(ctx context.Context) ([]uint64, error)
	DeleteCommentsByIDs(ctx context.Context, ids []uint64) (int64, error)
	DeleteCommentsByPostIDs(ctx context.Context, postIDs []uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID 评论不存在时返回 nil, nil
func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).First(comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

// GetCommentsByPostID 返回帖子的全部评论，同一时间创建的按 id 排序
func (s *CommentRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64, newestFirst bool) ([]*model.Comment, error) {
	order := "created_at ASC, id ASC"
	if newestFirst {
		order = "created_at DESC, id DESC"
	}
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("post_id = ?", postID).
		Order(order).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentsByAuthorID(ctx context.Context, authorID uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) CountByAuthorID(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).Count(&count).Error
	return count, err
}

// GetOrphanPostIDs 返回存在父评论缺失的评论的帖子
func (s *CommentRepoImpl) GetOrphanPostIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Table("comments AS c").
		Joins("LEFT JOIN comments AS p ON c.parent_id = p.id").
		Where("c.parent_id IS NOT NULL AND p.id IS NULL").
		Distinct().
		Pluck("c.post_id", &ids).Error
	return ids, err
}

// DeleteCommentsByIDs 一次性删除，返回删除条数
func (s *CommentRepoImpl) DeleteCommentsByIDs(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

func (s *CommentRepoImpl) DeleteCommentsByPostIDs(ctx context.Context, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Delete(&model.Comment{}).Error
}
