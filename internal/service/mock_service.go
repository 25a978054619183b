package service

import (
	"Inkwell/internal/api/dto"
	"context"

	"github.com/stretchr/testify/mock"
)

func getAs[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	args := m.Called(ctx, userID, req)
	return getAs[*dto.CommentDTO](args, 0), args.Error(1)
}

func (m *MockCommentService) GetComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	args := m.Called(ctx, postID)
	return getAs[[]*dto.CommentDTO](args, 0), args.Error(1)
}

func (m *MockCommentService) GetCommentTree(ctx context.Context, postID uint64) ([]*dto.CommentNodeDTO, error) {
	args := m.Called(ctx, postID)
	return getAs[[]*dto.CommentNodeDTO](args, 0), args.Error(1)
}

func (m *MockCommentService) GetCommentCount(ctx context.Context, postID uint64) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, actor Actor, commentID uint64) error {
	return m.Called(ctx, actor, commentID).Error(0)
}

func (m *MockCommentService) CascadeDelete(ctx context.Context, commentID uint64) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) DeleteCommentsByAuthor(ctx context.Context, authorID uint64) error {
	return m.Called(ctx, authorID).Error(0)
}

func (m *MockCommentService) SweepOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) GetPostModerationView(ctx context.Context, postID uint64) (*dto.ModerationViewDTO, error) {
	args := m.Called(ctx, postID)
	return getAs[*dto.ModerationViewDTO](args, 0), args.Error(1)
}

func (m *MockModerationService) GetPostComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	args := m.Called(ctx, postID)
	return getAs[[]*dto.CommentDTO](args, 0), args.Error(1)
}

func (m *MockModerationService) DeleteComment(ctx context.Context, commentID uint64) error {
	return m.Called(ctx, commentID).Error(0)
}

func (m *MockModerationService) DeletePost(ctx context.Context, postID uint64) error {
	return m.Called(ctx, postID).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	args := m.Called(ctx, req)
	return getAs[*dto.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	args := m.Called(ctx, req)
	return getAs[*dto.TokenDTO](args, 0), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockUserService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[*dto.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint64, req *dto.ProfileUpdateDTO) (*dto.UserDTO, error) {
	args := m.Called(ctx, userID, req)
	return getAs[*dto.UserDTO](args, 0), args.Error(1)
}

func (m *MockUserService) IsBanned(ctx context.Context, userID uint64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockExploreService struct {
	mock.Mock
}

func (m *MockExploreService) ExplorePublic(ctx context.Context, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error) {
	args := m.Called(ctx, q)
	return getAs[*dto.ExploreResultDTO](args, 0), args.Error(1)
}

func (m *MockExploreService) ExplorePrivate(ctx context.Context, userID uint64, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error) {
	args := m.Called(ctx, userID, q)
	return getAs[*dto.ExploreResultDTO](args, 0), args.Error(1)
}

type MockUserOverviewService struct {
	mock.Mock
}

func (m *MockUserOverviewService) GetOverview(ctx context.Context, userID uint64) (*dto.UserOverviewDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[*dto.UserOverviewDTO](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetTopPosts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*dto.PostDTO](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetCategoryStats(ctx context.Context, userID uint64) ([]*dto.CategoryStat, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*dto.CategoryStat](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetPublishingTrends(ctx context.Context, userID uint64) ([]*dto.PeriodStat, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*dto.PeriodStat](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetStaleDrafts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*dto.PostDTO](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetWordStats(ctx context.Context, userID uint64) (*dto.WordStatsDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[*dto.WordStatsDTO](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetRecentlyLikedPosts(ctx context.Context, userID uint64) ([]*dto.LikedPostDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[[]*dto.LikedPostDTO](args, 0), args.Error(1)
}

func (m *MockUserOverviewService) GetMilestones(ctx context.Context, userID uint64) (*dto.MilestonesDTO, error) {
	args := m.Called(ctx, userID)
	return getAs[*dto.MilestonesDTO](args, 0), args.Error(1)
}
