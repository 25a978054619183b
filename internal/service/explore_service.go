package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

type ExploreService interface {
	ExplorePublic(ctx context.Context, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error)
	ExplorePrivate(ctx context.Context, userID uint64, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error)
}

type exploreServiceImpl struct {
	postESRepo     es.PostRepo
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
}

func NewExploreService(postESRepo es.PostRepo, userRepo repository.UserRepo, userFollowRepo repository.UserFollowRepo) ExploreService {
	return &exploreServiceImpl{
		postESRepo:     postESRepo,
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
	}
}

// ExplorePublic 公开探索页
func (s *exploreServiceImpl) ExplorePublic(ctx context.Context, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error) {
	return s.search(ctx, newSearchQuery(q))
}

// ExplorePrivate 登录用户的探索页，不含自己的帖子，兴趣分类与关注作者的帖子优先
func (s *exploreServiceImpl) ExplorePrivate(ctx context.Context, userID uint64, q *dto.ExploreQuery) (*dto.ExploreResultDTO, error) {
	var (
		user      *model.User
		following []uint64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.userRepo.GetUserByID(gCtx, userID)
		return
	})
	g.Go(func() (err error) {
		following, err = s.userFollowRepo.GetFollowingIDs(gCtx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	sq := newSearchQuery(q)
	sq.ExcludeAuthorID = userID
	sq.PreferCategories = util.NormalizeTags(user.Interests)
	sq.PreferAuthorIDs = following
	return s.search(ctx, sq)
}

func newSearchQuery(q *dto.ExploreQuery) es.SearchQuery {
	limit, offset := util.Page(q.Page, q.Limit)
	sort := q.Sort
	if sort == "" {
		sort = es.SortRecent
	}
	return es.SearchQuery{
		Text:     strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		Sort:     sort,
		From:     offset,
		Size:     limit,
	}
}

// search 多取一条用于判断是否还有下一页
func (s *exploreServiceImpl) search(ctx context.Context, sq es.SearchQuery) (*dto.ExploreResultDTO, error) {
	limit := sq.Size
	sq.Size = limit + 1
	hits, err := s.postESRepo.SearchPosts(ctx, sq)
	if err != nil {
		return nil, err
	}

	hasMore := len(hits) > limit
	if hasMore {
		hits = hits[:limit]
	}

	posts := make([]*dto.PostDTO, 0, len(hits))
	for _, h := range hits {
		d := &dto.PostDTO{}
		_ = copier.Copy(d, h)
		d.Status = model.PostStatusPublished
		d.Author = &dto.AuthorDTO{ID: h.AuthorID, Name: h.AuthorName}
		posts = append(posts, d)
	}
	return &dto.ExploreResultDTO{Posts: posts, HasMore: hasMore}, nil
}
