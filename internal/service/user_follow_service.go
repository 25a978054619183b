package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	"time"
)

type UserFollowService interface {
	ToggleFollow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error)
	GetFollowLists(ctx context.Context, userID uint64) (*dto.FollowListsDTO, error)
}

type userFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userRepo       repository.UserRepo
	notifier       NotificationService
}

func NewUserFollowService(userFollowRepo repository.UserFollowRepo, userRepo repository.UserRepo, notifier NotificationService) UserFollowService {
	return &userFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// ToggleFollow 已关注则取消，未关注则关注并通知对方
func (s *userFollowServiceImpl) ToggleFollow(ctx context.Context, followerID, targetID uint64) (*dto.FollowStateDTO, error) {
	if followerID == targetID {
		return nil, ErrUserFollowSelf
	}
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	exist, err := s.userFollowRepo.GetUserFollow(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		if err = s.userFollowRepo.DeleteUserFollow(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		return &dto.FollowStateDTO{Following: false}, nil
	}

	err = s.userFollowRepo.CreateUserFollow(ctx, &model.UserFollow{
		FollowerID:  followerID,
		FollowingID: targetID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return &dto.FollowStateDTO{Following: true}, nil
		}
		return nil, err
	}

	followerName := ""
	if follower, err := s.userRepo.GetUserByID(ctx, followerID); err == nil && follower != nil {
		followerName = follower.Name
	}
	s.notifier.Notify(ctx, Notice{
		RecipientID: targetID,
		Sender:      mongo.UserSender(followerID),
		Type:        mongo.TypeFollow,
		Message:     fmt.Sprintf("%s started following you.", followerName),
	})
	return &dto.FollowStateDTO{Following: true}, nil
}

func (s *userFollowServiceImpl) GetFollowLists(ctx context.Context, userID uint64) (*dto.FollowListsDTO, error) {
	followers, err := s.userFollowRepo.GetUserFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.userFollowRepo.GetUserFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &dto.FollowListsDTO{
		Followers: make([]*dto.UserBriefDTO, 0, len(followers)),
		Following: make([]*dto.UserBriefDTO, 0, len(following)),
	}
	for _, f := range followers {
		res.Followers = append(res.Followers, toUserBrief(&f.Follower))
	}
	for _, f := range following {
		res.Following = append(res.Following, toUserBrief(&f.Following))
	}
	return res, nil
}
