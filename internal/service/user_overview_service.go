package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	userOverviewExpiration = time.Minute
	staleDraftAge          = 14 * 24 * time.Hour
)

// UserOverviewService 作者个人数据面板
type UserOverviewService interface {
	GetOverview(ctx context.Context, userID uint64) (*dto.UserOverviewDTO, error)
	GetTopPosts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error)
	GetCategoryStats(ctx context.Context, userID uint64) ([]*dto.CategoryStat, error)
	GetPublishingTrends(ctx context.Context, userID uint64) ([]*dto.PeriodStat, error)
	GetStaleDrafts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error)
	GetWordStats(ctx context.Context, userID uint64) (*dto.WordStatsDTO, error)
	GetRecentlyLikedPosts(ctx context.Context, userID uint64) ([]*dto.LikedPostDTO, error)
	GetMilestones(ctx context.Context, userID uint64) (*dto.MilestonesDTO, error)
}

type userOverviewServiceImpl struct {
	overviewRepo   repository.OverviewRepo
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
	cache          redis.Cache
	now            func() time.Time
}

func NewUserOverviewService(
	overviewRepo repository.OverviewRepo,
	userRepo repository.UserRepo,
	userFollowRepo repository.UserFollowRepo,
	cache redis.Cache,
) UserOverviewService {
	return &userOverviewServiceImpl{
		overviewRepo:   overviewRepo,
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// GetOverview 汇总数据、封禁状态与最近的帖子，缓存一分钟
func (s *userOverviewServiceImpl) GetOverview(ctx context.Context, userID uint64) (*dto.UserOverviewDTO, error) {
	key := consts.UserOverviewKey + strconv.FormatUint(userID, 10)
	if cached, err := s.cache.GetValue(ctx, key); err == nil && cached != "" {
		res := &dto.UserOverviewDTO{}
		if err = json.Unmarshal([]byte(cached), res); err == nil {
			return res, nil
		}
		log.WarnContext(ctx, "user overview cache corrupted", "user_id", userID, "err", err)
	}

	res, err := s.buildOverview(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err = s.cache.SetWithExpiration(ctx, key, string(data), userOverviewExpiration); err != nil {
			log.WarnContext(ctx, "user overview cache write failed", "user_id", userID, "err", err)
		}
	}
	return res, nil
}

func (s *userOverviewServiceImpl) buildOverview(ctx context.Context, userID uint64) (*dto.UserOverviewDTO, error) {
	var (
		user                 *model.User
		totals               *repository.PostTotals
		followers, following int64
		recent               []*model.Post
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.userRepo.GetUserByID(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		totals, err = s.overviewRepo.GetPostTotals(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		followers, following, err = s.userFollowRepo.CountFollows(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		recent, err = s.overviewRepo.GetRecentPostsByAuthor(gCtx, userID, consts.RecentPostsLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	res := &dto.UserOverviewDTO{
		Stats: dto.UserStats{
			Total:     totals.Posts,
			Published: totals.Published,
			Drafts:    totals.Posts - totals.Published,
			Views:     totals.Views,
			Likes:     totals.Likes,
			Followers: followers,
			Following: following,
		},
		RecentPosts: toPostSummaries(recent),
	}
	if user.BanActive(s.now()) {
		res.Ban = dto.BanState{IsBanned: true, BannedUntil: user.BannedUntil, Reason: user.BanReason}
	}
	return res, nil
}

// GetTopPosts 浏览量最高的已发布帖子
func (s *userOverviewServiceImpl) GetTopPosts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.overviewRepo.GetTopPostsByAuthor(ctx, userID, consts.TopPostsLimit)
	if err != nil {
		return nil, err
	}
	return toPostSummaries(posts), nil
}

func (s *userOverviewServiceImpl) GetCategoryStats(ctx context.Context, userID uint64) ([]*dto.CategoryStat, error) {
	counts, err := s.overviewRepo.GetCategoryCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CategoryStat, 0, len(counts))
	for _, c := range counts {
		res = append(res, &dto.CategoryStat{Category: c.Category, Count: c.Count})
	}
	return res, nil
}

func (s *userOverviewServiceImpl) GetPublishingTrends(ctx context.Context, userID uint64) ([]*dto.PeriodStat, error) {
	counts, err := s.overviewRepo.GetPublishingTrend(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.PeriodStat, 0, len(counts))
	for _, c := range counts {
		res = append(res, &dto.PeriodStat{Period: c.Period, Count: c.Count})
	}
	return res, nil
}

// GetStaleDrafts 十四天没有修改过的草稿
func (s *userOverviewServiceImpl) GetStaleDrafts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	drafts, err := s.overviewRepo.GetStaleDrafts(ctx, userID, s.now().Add(-staleDraftAge), consts.StaleDraftsLimit)
	if err != nil {
		return nil, err
	}
	return toPostSummaries(drafts), nil
}

// GetWordStats 统计全部帖子(含草稿)的字数
func (s *userOverviewServiceImpl) GetWordStats(ctx context.Context, userID uint64) (*dto.WordStatsDTO, error) {
	contents, err := s.overviewRepo.GetPostContents(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &dto.WordStatsDTO{TotalPosts: int64(len(contents))}
	for _, c := range contents {
		res.TotalWords += int64(util.WordCount(c))
	}
	if res.TotalPosts > 0 {
		res.AverageWords = int64(math.Round(float64(res.TotalWords) / float64(res.TotalPosts)))
	}
	return res, nil
}

func (s *userOverviewServiceImpl) GetRecentlyLikedPosts(ctx context.Context, userID uint64) ([]*dto.LikedPostDTO, error) {
	posts, err := s.overviewRepo.GetRecentlyLikedPosts(ctx, userID, consts.RecentlyLikedLimit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.LikedPostDTO, 0, len(posts))
	for _, p := range posts {
		res = append(res, &dto.LikedPostDTO{
			ID:          p.ID,
			Title:       p.Title,
			LikesCount:  p.LikesCount,
			LastLikedAt: p.LastLikedAt,
		})
	}
	return res, nil
}

// GetMilestones 已发布 10 篇、累计获赞 100 次
func (s *userOverviewServiceImpl) GetMilestones(ctx context.Context, userID uint64) (*dto.MilestonesDTO, error) {
	totals, err := s.overviewRepo.GetPostTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MilestonesDTO{
		PublishedPosts: totals.Published,
		TotalLikes:     totals.Likes,
		Has10Posts:     totals.Published >= consts.MilestonePosts,
		Has100Likes:    totals.Likes >= consts.MilestoneLikes,
	}, nil
}
