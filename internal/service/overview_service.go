package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const overviewExpiration = 5 * time.Minute

type OverviewService interface {
	GetOverview(ctx context.Context) (*dto.OverviewDTO, error)
}

type overviewServiceImpl struct {
	overviewRepo repository.OverviewRepo
	userRepo     repository.UserRepo
	commentRepo  repository.CommentRepo
	cache        redis.Cache
	now          func() time.Time
}

func NewOverviewService(overviewRepo repository.OverviewRepo, userRepo repository.UserRepo, commentRepo repository.CommentRepo, cache redis.Cache) OverviewService {
	return &overviewServiceImpl{
		overviewRepo: overviewRepo,
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// GetOverview 管理后台概览，缓存五分钟
func (s *overviewServiceImpl) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	if cached, err := s.cache.GetValue(ctx, consts.AdminOverviewKey); err == nil && cached != "" {
		res := &dto.OverviewDTO{}
		if err = json.Unmarshal([]byte(cached), res); err == nil {
			return res, nil
		}
		log.WarnContext(ctx, "overview cache corrupted", "err", err)
	}

	res, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err = s.cache.SetWithExpiration(ctx, consts.AdminOverviewKey, string(data), overviewExpiration); err != nil {
			log.WarnContext(ctx, "overview cache write failed", "err", err)
		}
	}
	return res, nil
}

func (s *overviewServiceImpl) buildOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	now := s.now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var (
		userCount    int64
		commentCount int64
		postTotals   *repository.PostTotals
		recentUsers  []*model.User
		topPost      *model.Post
		topAuthors   []*repository.AuthorStat
		categories   []*repository.CategoryCount
		monthly      []*repository.MonthCount
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		userCount, err = s.userRepo.CountUsers(gCtx)
		return
	})
	g.Go(func() (err error) {
		commentCount, err = s.commentRepo.CountAll(gCtx)
		return
	})
	g.Go(func() (err error) {
		postTotals, err = s.overviewRepo.GetPostTotals(gCtx, 0)
		return
	})
	g.Go(func() (err error) {
		recentUsers, err = s.userRepo.GetRecentUsers(gCtx, consts.RecentUsersLimit)
		return
	})
	g.Go(func() (err error) {
		topPost, err = s.overviewRepo.GetTopPost(gCtx)
		return
	})
	g.Go(func() (err error) {
		topAuthors, err = s.overviewRepo.GetTopAuthors(gCtx, consts.TopAuthorsLimit)
		return
	})
	g.Go(func() (err error) {
		categories, err = s.overviewRepo.GetCategoryCounts(gCtx, 0)
		return
	})
	g.Go(func() (err error) {
		monthly, err = s.overviewRepo.GetMonthlyPublished(gCtx, yearStart)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &dto.OverviewDTO{
		Totals: dto.OverviewTotals{
			Users:     userCount,
			Posts:     postTotals.Posts,
			Published: postTotals.Published,
			Drafts:    postTotals.Posts - postTotals.Published,
			Views:     postTotals.Views,
			Likes:     postTotals.Likes,
			Comments:  commentCount,
		},
		RecentUsers:  make([]*dto.UserBriefDTO, 0, len(recentUsers)),
		TopAuthors:   make([]*dto.AuthorStatDTO, 0, len(topAuthors)),
		Categories:   make([]*dto.CategoryStat, 0, len(categories)),
		MonthlyTrend: fillMonths(monthly, int(now.Month())),
		GeneratedAt:  now,
	}
	for _, u := range recentUsers {
		res.RecentUsers = append(res.RecentUsers, toUserBrief(u))
	}
	if topPost != nil {
		res.TopPost = toPostDTO(topPost)
	}
	for _, a := range topAuthors {
		res.TopAuthors = append(res.TopAuthors, &dto.AuthorStatDTO{
			AuthorID: a.AuthorID,
			Name:     a.Name,
			Posts:    a.Posts,
			Likes:    a.Likes,
			Views:    a.Views,
		})
	}
	for _, c := range categories {
		res.Categories = append(res.Categories, &dto.CategoryStat{Category: c.Category, Count: c.Count})
	}
	return res, nil
}

// fillMonths 补齐一月到当前月份，没有发布的月份计为 0
func fillMonths(counts []*repository.MonthCount, upTo int) []*dto.MonthlyStat {
	byMonth := make(map[int]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}
	res := make([]*dto.MonthlyStat, 0, upTo)
	for m := 1; m <= upTo; m++ {
		res = append(res, &dto.MonthlyStat{Month: m, Count: byMonth[m]})
	}
	return res
}
