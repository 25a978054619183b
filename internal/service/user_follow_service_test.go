package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow_Self(t *testing.T) {
	svc := NewUserFollowService(&repository.MockUserFollowRepo{}, &repository.MockUserRepo{}, &recordingNotifier{})

	_, err := svc.ToggleFollow(context.Background(), 4, 4)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
}

func TestToggleFollow_UnknownTarget(t *testing.T) {
	userRepo := &repository.MockUserRepo{}
	userRepo.On("GetUserByID", mock.Anything, uint64(9)).Return(nil, nil)
	svc := NewUserFollowService(&repository.MockUserFollowRepo{}, userRepo, &recordingNotifier{})

	_, err := svc.ToggleFollow(context.Background(), 4, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleFollow_TwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	userRepo := &repository.MockUserRepo{}
	userRepo.On("GetUserByID", mock.Anything, uint64(9)).Return(&model.User{ID: 9, Name: "bob"}, nil)
	userRepo.On("GetUserByID", mock.Anything, uint64(4)).Return(&model.User{ID: 4, Name: "alice"}, nil)

	followRepo := &repository.MockUserFollowRepo{}
	followRepo.On("GetUserFollow", mock.Anything, uint64(4), uint64(9)).Return(nil, nil).Once()
	followRepo.On("CreateUserFollow", mock.Anything, mock.MatchedBy(func(f *model.UserFollow) bool {
		return f.FollowerID == 4 && f.FollowingID == 9
	})).Return(nil).Once()
	followRepo.On("GetUserFollow", mock.Anything, uint64(4), uint64(9)).
		Return(&model.UserFollow{FollowerID: 4, FollowingID: 9}, nil).Once()
	followRepo.On("DeleteUserFollow", mock.Anything, uint64(4), uint64(9)).Return(nil).Once()

	notifier := &recordingNotifier{}
	svc := NewUserFollowService(followRepo, userRepo, notifier)

	state, err := svc.ToggleFollow(ctx, 4, 9)
	require.NoError(t, err)
	assert.True(t, state.Following)

	state, err = svc.ToggleFollow(ctx, 4, 9)
	require.NoError(t, err)
	assert.False(t, state.Following)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint64(9), sent[0].RecipientID)
	assert.Equal(t, mongo.TypeFollow, sent[0].Type)
	assert.Equal(t, "alice started following you.", sent[0].Message)
	followRepo.AssertExpectations(t)
}

func TestGetFollowLists(t *testing.T) {
	followRepo := &repository.MockUserFollowRepo{}
	followRepo.On("GetUserFollowers", mock.Anything, uint64(4)).Return([]*model.UserFollow{
		{FollowerID: 7, FollowingID: 4, Follower: model.User{ID: 7, Name: "eve"}},
	}, nil)
	followRepo.On("GetUserFollowing", mock.Anything, uint64(4)).Return([]*model.UserFollow{}, nil)
	svc := NewUserFollowService(followRepo, &repository.MockUserRepo{}, &recordingNotifier{})

	lists, err := svc.GetFollowLists(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, lists.Followers, 1)
	assert.Equal(t, "eve", lists.Followers[0].Name)
	assert.Empty(t, lists.Following)
}
