package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostTotals 帖子相关的汇总
type PostTotals struct {
	Posts     int64
	Published int64
	Views     int64
	Likes     int64
}

type AuthorStat struct {
	AuthorID uint64
	Name     string
	Posts    int64
	Likes    int64
	Views    int64
}

type CategoryCount struct {
	Category string
	Count    int64
}

type MonthCount struct {
	Month int
	Count int64
}

// PeriodCount Period 形如 2024-03
type PeriodCount struct {
	Period string
	Count  int64
}

type LikedPost struct {
	ID          uint64
	Title       string
	LikesCount  int64
	LastLikedAt time.Time
}

// OverviewRepo 统计查询，authorID 为 0 表示全站
type OverviewRepo interface {
	GetPostTotals(ctx context.Context, authorID uint64) (*PostTotals, error)
	GetTopPost(ctx context.Context) (*model.Post, error)
	GetTopAuthors(ctx context.Context, limit int) ([]*AuthorStat, error)
	GetCategoryCounts(ctx context.Context, authorID uint64) ([]*CategoryCount, error)
	GetMonthlyPublished(ctx context.Context, since time.Time) ([]*MonthCount, error)

	GetPublishingTrend(ctx context.Context, authorID uint64) ([]*PeriodCount, error)
	GetTopPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error)
	GetRecentPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error)
	GetStaleDrafts(ctx context.Context, authorID uint64, before time.Time, limit int) ([]*model.Post, error)
	GetRecentlyLikedPosts(ctx context.Context, authorID uint64, limit int) ([]*LikedPost, error)
	GetPostContents(ctx context.Context, authorID uint64) ([]string, error)
}

type OverviewRepoImpl struct {
	db *gorm.DB
}

func NewOverviewRepo(db *gorm.DB) OverviewRepo {
	return &OverviewRepoImpl{db: db}
}

func ofAuthor(authorID uint64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if authorID == 0 {
			return db
		}
		return db.Where("author_id = ?", authorID)
	}
}

// postSummaryColumns 列表展示用，不取正文
var postSummaryColumns = []string{"id", "author_id", "title", "cover_image", "category", "status", "views", "likes_count", "created_at", "updated_at"}

func (s *OverviewRepoImpl) GetPostTotals(ctx context.Context, authorID uint64) (*PostTotals, error) {
	totals := &PostTotals{}
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Scopes(ofAuthor(authorID)).
		Select("COUNT(*) AS posts, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS published, "+
			"COALESCE(SUM(views), 0) AS views, "+
			"COALESCE(SUM(likes_count), 0) AS likes", model.PostStatusPublished).
		Scan(totals).Error
	return totals, err
}

// GetTopPost 浏览量最高的已发布帖子，没有时返回 nil, nil
func (s *OverviewRepoImpl) GetTopPost(ctx context.Context) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Where("status = ?", model.PostStatusPublished).
		Order("views DESC, likes_count DESC").
		First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// GetTopAuthors 按获赞数、浏览量排序
func (s *OverviewRepoImpl) GetTopAuthors(ctx context.Context, limit int) ([]*AuthorStat, error) {
	stats := make([]*AuthorStat, 0, limit)
	err := s.db.WithContext(ctx).
		Table("posts").
		Select("posts.author_id, users.name, COUNT(*) AS posts, "+
			"COALESCE(SUM(posts.likes_count), 0) AS likes, COALESCE(SUM(posts.views), 0) AS views").
		Joins("JOIN users ON users.id = posts.author_id").
		Group("posts.author_id, users.name").
		Order("likes DESC, views DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (s *OverviewRepoImpl) GetCategoryCounts(ctx context.Context, authorID uint64) ([]*CategoryCount, error) {
	counts := make([]*CategoryCount, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Scopes(ofAuthor(authorID)).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// GetMonthlyPublished 统计 since 之后每月发布的帖子数
func (s *OverviewRepoImpl) GetMonthlyPublished(ctx context.Context, since time.Time) ([]*MonthCount, error) {
	counts := make([]*MonthCount, 0, 12)
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("MONTH(created_at) AS month, COUNT(*) AS count").
		Where("status = ? AND created_at >= ?", model.PostStatusPublished, since).
		Group("MONTH(created_at)").
		Order("month ASC").
		Scan(&counts).Error
	return counts, err
}

// GetPublishingTrend 按月统计作者已发布的帖子，月份正序
func (s *OverviewRepoImpl) GetPublishingTrend(ctx context.Context, authorID uint64) ([]*PeriodCount, error) {
	counts := make([]*PeriodCount, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Scopes(ofAuthor(authorID)).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS period, COUNT(*) AS count").
		Where("status = ?", model.PostStatusPublished).
		Group("period").
		Order("period ASC").
		Scan(&counts).Error
	return counts, err
}

func (s *OverviewRepoImpl) GetTopPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Select(postSummaryColumns).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Order("views DESC, likes_count DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *OverviewRepoImpl) GetRecentPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Select(postSummaryColumns).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetStaleDrafts before 之前最后修改的草稿，最久未动的在前
func (s *OverviewRepoImpl) GetStaleDrafts(ctx context.Context, authorID uint64, before time.Time, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).
		Select(postSummaryColumns).
		Where("author_id = ? AND status = ? AND updated_at < ?", authorID, model.PostStatusDraft, before).
		Order("updated_at ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// GetRecentlyLikedPosts 按最近一次被点赞的时间倒序
func (s *OverviewRepoImpl) GetRecentlyLikedPosts(ctx context.Context, authorID uint64, limit int) ([]*LikedPost, error) {
	posts := make([]*LikedPost, 0, limit)
	err := s.db.WithContext(ctx).
		Table("posts").
		Select("posts.id, posts.title, posts.likes_count, MAX(post_likes.created_at) AS last_liked_at").
		Joins("JOIN post_likes ON post_likes.post_id = posts.id").
		Where("posts.author_id = ? AND posts.status = ?", authorID, model.PostStatusPublished).
		Group("posts.id, posts.title, posts.likes_count").
		Order("last_liked_at DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

func (s *OverviewRepoImpl) GetPostContents(ctx context.Context, authorID uint64) ([]string, error) {
	var contents []string
	err := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Pluck("content", &contents).Error
	return contents, err
}
