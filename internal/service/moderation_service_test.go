package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type moderationFixture struct {
	commentRepo    *repository.MockCommentRepo
	postRepo       *repository.MockPostRepo
	userRepo       *repository.MockUserRepo
	postActionRepo *repository.MockPostActionRepo
	notifier       *recordingNotifier
	svc            ModerationService
}

func newModerationFixture(promoteOrphans bool) *moderationFixture {
	f := &moderationFixture{
		commentRepo:    &repository.MockCommentRepo{},
		postRepo:       &repository.MockPostRepo{},
		userRepo:       &repository.MockUserRepo{},
		postActionRepo: &repository.MockPostActionRepo{},
		notifier:       &recordingNotifier{},
	}
	commentSvc := NewCommentService(f.commentRepo, f.postRepo, f.userRepo, f.notifier, newCountCache())
	postSvc := NewPostService(f.postRepo, f.postActionRepo, f.commentRepo, f.userRepo, commentSvc, f.notifier)
	f.svc = NewModerationService(f.commentRepo, f.postRepo, f.userRepo, commentSvc, postSvc, f.notifier, promoteOrphans)
	return f
}

func TestGetPostModerationView(t *testing.T) {
	f := newModerationFixture(false)
	post := &model.Post{
		ID:       10,
		AuthorID: 50,
		Title:    "Hello",
		Content:  "<p>body</p>",
		Status:   model.PostStatusPublished,
		Author:   model.User{ID: 50, Name: "bob", Email: "bob@example.com"},
	}
	comments := threadOfPost10()
	comments[0].Author = model.User{ID: 100, Name: "u100"}
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(post, nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	// 只有未预加载作者的评论需要补全
	f.userRepo.On("GetUsersByIDs", mock.Anything, []uint64{101, 102, 103}).Return([]*model.User{
		{ID: 101, Name: "u101"},
		{ID: 102, Name: "u102"},
		{ID: 103, Name: "u103"},
	}, nil)

	view, err := f.svc.GetPostModerationView(context.Background(), 10)
	require.NoError(t, err)

	require.NotNil(t, view.Post.Author)
	assert.Equal(t, "bob", view.Post.Author.Name)
	assert.Equal(t, "bob@example.com", view.Post.Author.Email)
	assert.Equal(t, "Hello", view.Post.Title)

	require.Len(t, view.Comments, 2)
	root := view.Comments[0]
	assert.Equal(t, "u100", root.AuthorName)
	require.Len(t, root.Replies, 1)
	assert.Equal(t, "u101", root.Replies[0].AuthorName)
	require.Len(t, root.Replies[0].Replies, 1)
	assert.Equal(t, "u102", root.Replies[0].Replies[0].AuthorName)
	assert.Equal(t, "u103", view.Comments[1].AuthorName)
	f.userRepo.AssertExpectations(t)
}

func TestGetPostModerationView_PostNotFound(t *testing.T) {
	f := newModerationFixture(false)
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(nil, nil)

	_, err := f.svc.GetPostModerationView(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPostNotFound)
	f.commentRepo.AssertNotCalled(t, "GetCommentsByPostID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPostModerationView_EmptyComments(t *testing.T) {
	f := newModerationFixture(false)
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 50}, nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return([]*model.Comment{}, nil)

	view, err := f.svc.GetPostModerationView(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, view.Comments)
	assert.Empty(t, view.Comments)
}

func TestGetPostModerationView_PromotesOrphans(t *testing.T) {
	f := newModerationFixture(true)
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 50}, nil)
	orphan := newComment(7, 10, 100, parent(99), 0)
	orphan.Author = model.User{ID: 100, Name: "u100"}
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return([]*model.Comment{orphan}, nil)

	view, err := f.svc.GetPostModerationView(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, uint64(7), view.Comments[0].ID)
}

func expectCascade(f *moderationFixture, target *model.Comment, all []*model.Comment, ids []uint64) {
	f.commentRepo.On("GetCommentByID", mock.Anything, target.ID).Return(target, nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, target.PostID, false).Return(all, nil)
	f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, ids).Return(int64(len(ids)), nil)
}

func TestAdminDeleteComment_NotifiesBothAuthors(t *testing.T) {
	f := newModerationFixture(false)
	comments := threadOfPost10()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 50, Title: "Hello"}, nil)
	expectCascade(f, comments[0], comments, []uint64{1, 2, 3})

	require.NoError(t, f.svc.DeleteComment(context.Background(), 1))

	sent := f.notifier.sent()
	require.Len(t, sent, 2)

	assert.Equal(t, uint64(100), sent[0].RecipientID)
	assert.Equal(t, mongo.TypeAdminCommentDeleted, sent[0].Type)
	assert.Equal(t, mongo.SenderSystem, sent[0].Sender.Kind)
	assert.Equal(t, `Your comment on "Hello" was deleted by an admin.`, sent[0].Message)
	require.NotNil(t, sent[0].PostID)
	assert.Equal(t, uint64(10), *sent[0].PostID)

	assert.Equal(t, uint64(50), sent[1].RecipientID)
	assert.Equal(t, mongo.TypeAdminDeletedCommentOnPost, sent[1].Type)
	assert.Equal(t, `A comment on your post "Hello" was deleted by an admin.`, sent[1].Message)
	f.commentRepo.AssertExpectations(t)
}

func TestAdminDeleteComment_SameAuthorSingleNotice(t *testing.T) {
	f := newModerationFixture(false)
	comments := threadOfPost10()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 100, Title: "Hello"}, nil)
	expectCascade(f, comments[0], comments, []uint64{1, 2, 3})

	require.NoError(t, f.svc.DeleteComment(context.Background(), 1))

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, mongo.TypeAdminCommentDeleted, sent[0].Type)
}

func TestAdminDeleteComment_NotFound(t *testing.T) {
	f := newModerationFixture(false)
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(9)).Return(nil, nil)

	err := f.svc.DeleteComment(context.Background(), 9)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	assert.Empty(t, f.notifier.sent())
}

func TestAdminDeleteComment_NotificationFailureIgnored(t *testing.T) {
	commentRepo := &repository.MockCommentRepo{}
	postRepo := &repository.MockPostRepo{}
	userRepo := &repository.MockUserRepo{}
	notificationRepo := &mongo.MockNotificationRepo{}
	notifier := NewNotificationService(notificationRepo, userRepo)
	commentSvc := NewCommentService(commentRepo, postRepo, userRepo, notifier, newCountCache())
	svc := NewModerationService(commentRepo, postRepo, userRepo, commentSvc, nil, notifier, false)

	comments := threadOfPost10()
	postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 50, Title: "Hello"}, nil)
	commentRepo.On("GetCommentByID", mock.Anything, uint64(1)).Return(comments[0], nil)
	commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{1, 2, 3}).Return(int64(3), nil)
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Twice()

	require.NoError(t, svc.DeleteComment(context.Background(), 1))
	commentRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestAdminDeletePost_NotifiesAuthor(t *testing.T) {
	f := newModerationFixture(false)
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 50, Title: "Hello"}, nil)
	f.commentRepo.On("DeleteCommentsByPostIDs", mock.Anything, []uint64{10}).Return(nil)
	f.postActionRepo.On("DeleteLikesByPostIDs", mock.Anything, []uint64{10}).Return(nil)
	f.postRepo.On("DeletePostsByIDs", mock.Anything, []uint64{10}).Return(nil)

	require.NoError(t, f.svc.DeletePost(context.Background(), 10))

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint64(50), sent[0].RecipientID)
	assert.Equal(t, mongo.TypeAdminPostDeleted, sent[0].Type)
	assert.Equal(t, `Your post "Hello" was deleted by an admin.`, sent[0].Message)
	f.postRepo.AssertExpectations(t)
	f.postActionRepo.AssertExpectations(t)
}

func TestGetPostComments_OldestFirst(t *testing.T) {
	f := newModerationFixture(false)
	comments := threadOfPost10()
	for _, c := range comments {
		c.Author = model.User{ID: c.AuthorID, Name: "n"}
	}
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)

	res, err := f.svc.GetPostComments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, res, 4)
	assert.Equal(t, uint64(1), res[0].ID)
	assert.Equal(t, uint64(4), res[3].ID)
	f.userRepo.AssertNotCalled(t, "GetUsersByIDs", mock.Anything, mock.Anything)
}
