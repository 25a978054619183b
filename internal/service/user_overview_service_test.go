package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userOverviewFixture struct {
	overviewRepo   *repository.MockOverviewRepo
	userRepo       *repository.MockUserRepo
	userFollowRepo *repository.MockUserFollowRepo
	cache          *redis.MockCache
	svc            UserOverviewService
}

func newUserOverviewFixture(now time.Time) *userOverviewFixture {
	f := &userOverviewFixture{
		overviewRepo:   &repository.MockOverviewRepo{},
		userRepo:       &repository.MockUserRepo{},
		userFollowRepo: &repository.MockUserFollowRepo{},
		cache:          &redis.MockCache{},
	}
	f.svc = NewUserOverviewService(f.overviewRepo, f.userRepo, f.userFollowRepo, f.cache)
	f.svc.(*userOverviewServiceImpl).now = func() time.Time { return now }
	return f
}

func TestUserOverview_FromCache(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	data, err := json.Marshal(&dto.UserOverviewDTO{Stats: dto.UserStats{Total: 5}})
	require.NoError(t, err)
	f.cache.On("GetValue", mock.Anything, consts.UserOverviewKey+"7").Return(string(data), nil)

	res, err := f.svc.GetOverview(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Stats.Total)
	f.overviewRepo.AssertNotCalled(t, "GetPostTotals", mock.Anything, mock.Anything)
}

func TestUserOverview_BuildsOnMiss(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	until := baseTime.Add(48 * time.Hour)
	key := consts.UserOverviewKey + "7"

	f.cache.On("GetValue", mock.Anything, key).Return("", nil)
	f.cache.On("SetWithExpiration", mock.Anything, key, mock.AnythingOfType("string"), time.Minute).Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(7)).
		Return(&model.User{ID: 7, IsBanned: true, BannedUntil: &until, BanReason: "spam"}, nil)
	f.overviewRepo.On("GetPostTotals", mock.Anything, uint64(7)).
		Return(&repository.PostTotals{Posts: 4, Published: 3, Views: 90, Likes: 12}, nil)
	f.userFollowRepo.On("CountFollows", mock.Anything, uint64(7)).Return(int64(2), int64(5), nil)
	f.overviewRepo.On("GetRecentPostsByAuthor", mock.Anything, uint64(7), consts.RecentPostsLimit).
		Return([]*model.Post{{ID: 1, Title: "draft", Content: "<p>body</p>", Status: model.PostStatusDraft}}, nil)

	res, err := f.svc.GetOverview(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, dto.UserStats{Total: 4, Published: 3, Drafts: 1, Views: 90, Likes: 12, Followers: 2, Following: 5}, res.Stats)
	assert.Equal(t, dto.BanState{IsBanned: true, BannedUntil: &until, Reason: "spam"}, res.Ban)
	require.Len(t, res.RecentPosts, 1)
	assert.Empty(t, res.RecentPosts[0].Content)
	f.cache.AssertExpectations(t)
}

func TestUserOverview_ExpiredBanNotReported(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	until := baseTime.Add(-time.Hour)

	f.cache.On("GetValue", mock.Anything, mock.Anything).Return("", nil)
	f.cache.On("SetWithExpiration", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(7)).
		Return(&model.User{ID: 7, IsBanned: true, BannedUntil: &until}, nil)
	f.overviewRepo.On("GetPostTotals", mock.Anything, uint64(7)).Return(&repository.PostTotals{}, nil)
	f.userFollowRepo.On("CountFollows", mock.Anything, uint64(7)).Return(int64(0), int64(0), nil)
	f.overviewRepo.On("GetRecentPostsByAuthor", mock.Anything, uint64(7), mock.Anything).Return(nil, nil)

	res, err := f.svc.GetOverview(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, dto.BanState{}, res.Ban)
}

func TestUserOverview_UnknownUser(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	f.cache.On("GetValue", mock.Anything, mock.Anything).Return("", nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(7)).Return(nil, nil)
	f.overviewRepo.On("GetPostTotals", mock.Anything, uint64(7)).Return(&repository.PostTotals{}, nil)
	f.userFollowRepo.On("CountFollows", mock.Anything, uint64(7)).Return(int64(0), int64(0), nil)
	f.overviewRepo.On("GetRecentPostsByAuthor", mock.Anything, uint64(7), mock.Anything).Return(nil, nil)

	_, err := f.svc.GetOverview(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
	f.cache.AssertNotCalled(t, "SetWithExpiration", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserOverview_StaleDraftsCutoff(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	cutoff := baseTime.Add(-14 * 24 * time.Hour)
	f.overviewRepo.On("GetStaleDrafts", mock.Anything, uint64(7), cutoff, consts.StaleDraftsLimit).
		Return([]*model.Post{{ID: 2, Title: "old", Content: "<p>x</p>", Status: model.PostStatusDraft}}, nil)

	res, err := f.svc.GetStaleDrafts(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "old", res[0].Title)
	assert.Empty(t, res[0].Content)
}

func TestUserOverview_WordStats(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	f.overviewRepo.On("GetPostContents", mock.Anything, uint64(7)).
		Return([]string{"<p>one two</p><p>three</p>", "<p>four five six seven</p>", ""}, nil)

	res, err := f.svc.GetWordStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &dto.WordStatsDTO{TotalWords: 7, TotalPosts: 3, AverageWords: 2}, res)
}

func TestUserOverview_WordStatsNoPosts(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	f.overviewRepo.On("GetPostContents", mock.Anything, uint64(7)).Return([]string{}, nil)

	res, err := f.svc.GetWordStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &dto.WordStatsDTO{}, res)
}

func TestUserOverview_Milestones(t *testing.T) {
	cases := map[string]struct {
		totals repository.PostTotals
		has10  bool
		has100 bool
	}{
		"none":        {totals: repository.PostTotals{Published: 9, Likes: 99}},
		"ten posts":   {totals: repository.PostTotals{Published: 10, Likes: 3}, has10: true},
		"both":        {totals: repository.PostTotals{Published: 25, Likes: 100}, has10: true, has100: true},
		"drafts only": {totals: repository.PostTotals{Posts: 40}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newUserOverviewFixture(baseTime)
			totals := tc.totals
			f.overviewRepo.On("GetPostTotals", mock.Anything, uint64(7)).Return(&totals, nil)

			res, err := f.svc.GetMilestones(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, tc.has10, res.Has10Posts)
			assert.Equal(t, tc.has100, res.Has100Likes)
			assert.Equal(t, totals.Published, res.PublishedPosts)
		})
	}
}

func TestUserOverview_RecentlyLikedPosts(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	f.overviewRepo.On("GetRecentlyLikedPosts", mock.Anything, uint64(7), consts.RecentlyLikedLimit).
		Return([]*repository.LikedPost{{ID: 3, Title: "hit", LikesCount: 8, LastLikedAt: baseTime}}, nil)

	res, err := f.svc.GetRecentlyLikedPosts(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []*dto.LikedPostDTO{{ID: 3, Title: "hit", LikesCount: 8, LastLikedAt: baseTime}}, res)
}

func TestUserOverview_PublishingTrends(t *testing.T) {
	f := newUserOverviewFixture(baseTime)
	f.overviewRepo.On("GetPublishingTrend", mock.Anything, uint64(7)).
		Return([]*repository.PeriodCount{{Period: "2024-03", Count: 2}, {Period: "2024-04", Count: 1}}, nil)

	res, err := f.svc.GetPublishingTrends(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []*dto.PeriodStat{{Period: "2024-03", Count: 2}, {Period: "2024-04", Count: 1}}, res)
}
