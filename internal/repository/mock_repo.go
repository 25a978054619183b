package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

func getAs[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	return getAs[*model.User](args, 0), args.Error(1)
}

func (m *MockUserRepo) GetUsersByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	return getAs[[]*model.User](args, 0), args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	return getAs[*model.User](args, 0), args.Error(1)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdateUserFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockUserRepo) SearchUsers(ctx context.Context, q UserQuery) ([]*model.User, int64, error) {
	args := m.Called(ctx, q)
	return getAs[[]*model.User](args, 0), getAs[int64](args, 1), args.Error(2)
}

func (m *MockUserRepo) GetRecentUsers(ctx context.Context, limit int) ([]*model.User, error) {
	args := m.Called(ctx, limit)
	return getAs[[]*model.User](args, 0), args.Error(1)
}

func (m *MockUserRepo) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockUserRepo) BanUser(ctx context.Context, id uint64, until time.Time, reason string) error {
	return m.Called(ctx, id, until, reason).Error(0)
}

func (m *MockUserRepo) UnbanUser(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) GetExpiredBans(ctx context.Context, now time.Time) ([]*model.User, error) {
	args := m.Called(ctx, now)
	return getAs[[]*model.User](args, 0), args.Error(1)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) CreatePost(ctx context.Context, post *model.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	return getAs[*model.Post](args, 0), args.Error(1)
}

func (m *MockPostRepo) GetPostsByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	args := m.Called(ctx, ids)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockPostRepo) GetPublishedPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, limit, offset)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockPostRepo) GetPostsByAuthor(ctx context.Context, authorID uint64) ([]*model.Post, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockPostRepo) GetPublishedPostsByAuthor(ctx context.Context, authorID uint64, category string) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, category)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockPostRepo) GetPostIDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]uint64](args, 0), args.Error(1)
}

func (m *MockPostRepo) UpdatePostFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockPostRepo) IncrementViews(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepo) AddLikesCount(ctx context.Context, id uint64, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockPostRepo) DeletePostsByIDs(ctx context.Context, ids []uint64) error {
	return m.Called(ctx, ids).Error(0)
}

type MockPostActionRepo struct {
	mock.Mock
}

func (m *MockPostActionRepo) CreateLike(ctx context.Context, like *model.PostLike) error {
	return m.Called(ctx, like).Error(0)
}

func (m *MockPostActionRepo) DeleteLike(ctx context.Context, userID, postID uint64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostActionRepo) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostActionRepo) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	args := m.Called(ctx, postID)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockPostActionRepo) DeleteLikesByPostIDs(ctx context.Context, postIDs []uint64) error {
	return m.Called(ctx, postIDs).Error(0)
}

func (m *MockPostActionRepo) DeleteLikesByUser(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepo) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	return getAs[*model.Comment](args, 0), args.Error(1)
}

func (m *MockCommentRepo) GetCommentsByPostID(ctx context.Context, postID uint64, newestFirst bool) ([]*model.Comment, error) {
	args := m.Called(ctx, postID, newestFirst)
	return getAs[[]*model.Comment](args, 0), args.Error(1)
}

func (m *MockCommentRepo) GetCommentsByAuthorID(ctx context.Context, authorID uint64) ([]*model.Comment, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]*model.Comment](args, 0), args.Error(1)
}

func (m *MockCommentRepo) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	args := m.Called(ctx, postID)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockCommentRepo) CountByAuthorID(ctx context.Context, authorID uint64) (int64, error) {
	args := m.Called(ctx, authorID)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockCommentRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockCommentRepo) GetOrphanPostIDs(ctx context.Context) ([]uint64, error) {
	args := m.Called(ctx)
	return getAs[[]uint64](args, 0), args.Error(1)
}

func (m *MockCommentRepo) DeleteCommentsByIDs(ctx context.Context, ids []uint64) (int64, error) {
	args := m.Called(ctx, ids)
	return getAs[int64](args, 0), args.Error(1)
}

func (m *MockCommentRepo) DeleteCommentsByPostIDs(ctx context.Context, postIDs []uint64) error {
	return m.Called(ctx, postIDs).Error(0)
}

type MockUserFollowRepo struct {
	mock.Mock
}

func (m *MockUserFollowRepo) GetUserFollowers(ctx context.Context, userID uint64) ([]*model.UserFollow, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*model.UserFollow](args, 0), args.Error(1)
}

func (m *MockUserFollowRepo) GetUserFollowing(ctx context.Context, userID uint64) ([]*model.UserFollow, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*model.UserFollow](args, 0), args.Error(1)
}

func (m *MockUserFollowRepo) GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	args := m.Called(ctx, userID)
	return getAs[[]uint64](args, 0), args.Error(1)
}

func (m *MockUserFollowRepo) GetUserFollow(ctx context.Context, followerID, followingID uint64) (*model.UserFollow, error) {
	args := m.Called(ctx, followerID, followingID)
	return getAs[*model.UserFollow](args, 0), args.Error(1)
}

func (m *MockUserFollowRepo) CountFollows(ctx context.Context, userID uint64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserFollowRepo) CreateUserFollow(ctx context.Context, userFollow *model.UserFollow) error {
	return m.Called(ctx, userFollow).Error(0)
}

func (m *MockUserFollowRepo) DeleteUserFollow(ctx context.Context, followerID, followingID uint64) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockUserFollowRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockOverviewRepo struct {
	mock.Mock
}

func (m *MockOverviewRepo) GetPostTotals(ctx context.Context, authorID uint64) (*PostTotals, error) {
	args := m.Called(ctx, authorID)
	return getAs[*PostTotals](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetTopPost(ctx context.Context) (*model.Post, error) {
	args := m.Called(ctx)
	return getAs[*model.Post](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetTopAuthors(ctx context.Context, limit int) ([]*AuthorStat, error) {
	args := m.Called(ctx, limit)
	return getAs[[]*AuthorStat](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetCategoryCounts(ctx context.Context, authorID uint64) ([]*CategoryCount, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]*CategoryCount](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetMonthlyPublished(ctx context.Context, since time.Time) ([]*MonthCount, error) {
	args := m.Called(ctx, since)
	return getAs[[]*MonthCount](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetPublishingTrend(ctx context.Context, authorID uint64) ([]*PeriodCount, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]*PeriodCount](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetTopPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, limit)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetRecentPostsByAuthor(ctx context.Context, authorID uint64, limit int) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, limit)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetStaleDrafts(ctx context.Context, authorID uint64, before time.Time, limit int) ([]*model.Post, error) {
	args := m.Called(ctx, authorID, before, limit)
	return getAs[[]*model.Post](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetRecentlyLikedPosts(ctx context.Context, authorID uint64, limit int) ([]*LikedPost, error) {
	args := m.Called(ctx, authorID, limit)
	return getAs[[]*LikedPost](args, 0), args.Error(1)
}

func (m *MockOverviewRepo) GetPostContents(ctx context.Context, authorID uint64) ([]string, error) {
	args := m.Called(ctx, authorID)
	return getAs[[]string](args, 0), args.Error(1)
}
