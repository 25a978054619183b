package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

type AuthorService interface {
	GetAuthorPage(ctx context.Context, authorID uint64, category string) (*dto.AuthorPageDTO, error)
}

type authorServiceImpl struct {
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	userFollowRepo repository.UserFollowRepo
}

func NewAuthorService(userRepo repository.UserRepo, postRepo repository.PostRepo, userFollowRepo repository.UserFollowRepo) AuthorService {
	return &authorServiceImpl{
		userRepo:       userRepo,
		postRepo:       postRepo,
		userFollowRepo: userFollowRepo,
	}
}

// GetAuthorPage 作者公开资料与其已发布的帖子
func (s *authorServiceImpl) GetAuthorPage(ctx context.Context, authorID uint64, category string) (*dto.AuthorPageDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	followers, following, err := s.userFollowRepo.CountFollows(ctx, authorID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetPublishedPostsByAuthor(ctx, authorID, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	profile := &dto.AuthorProfileDTO{}
	if err = copier.Copy(profile, user); err != nil {
		return nil, err
	}
	profile.Followers = followers
	profile.Following = following

	res := &dto.AuthorPageDTO{
		Author: profile,
		Posts:  make([]*dto.PostDTO, 0, len(posts)),
	}
	for _, p := range posts {
		p.Author = *user
		d := toPostDTO(p)
		d.Author.Email = ""
		res.Posts = append(res.Posts, d)
	}
	return res, nil
}
