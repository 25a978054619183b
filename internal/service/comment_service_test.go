package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	commentRepo *repository.MockCommentRepo
	postRepo    *repository.MockPostRepo
	userRepo    *repository.MockUserRepo
	cache       *redis.MockCache
	notifier    *recordingNotifier
	svc         CommentService
}

func newCommentFixture(opts ...CommentOption) *commentFixture {
	f := &commentFixture{
		commentRepo: &repository.MockCommentRepo{},
		postRepo:    &repository.MockPostRepo{},
		userRepo:    &repository.MockUserRepo{},
		cache:       newCountCache(),
		notifier:    &recordingNotifier{},
	}
	f.svc = NewCommentService(f.commentRepo, f.postRepo, f.userRepo, f.notifier, f.cache, opts...)
	return f
}

func (f *commentFixture) assertExpectations(t *testing.T) {
	f.commentRepo.AssertExpectations(t)
	f.postRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestCreateComment_InvalidContent(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"blank":     "   \n\t",
		"too long":  strings.Repeat("a", 1001),
		"multibyte": strings.Repeat("评", 1001),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			f := newCommentFixture()
			_, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: content})
			assert.ErrorIs(t, err, ErrCommentContentInvalid)
			f.commentRepo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
			f.postRepo.AssertNotCalled(t, "GetPost", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateComment_MaxLengthAccepted(t *testing.T) {
	f := newCommentFixture()
	content := strings.Repeat("评", 1000)
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 1, Title: "Mine"}, nil)
	f.commentRepo.On("CreateComment", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "alice"}, nil)

	res, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: content})
	require.NoError(t, err)
	assert.Equal(t, content, res.Content)
	f.assertExpectations(t)
}

func TestCreateComment_NotifiesPostAuthor(t *testing.T) {
	f := newCommentFixture()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 2, Title: "Hello"}, nil)
	f.commentRepo.On("CreateComment", mock.Anything, mock.AnythingOfType("*model.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Comment).ID = 77
		}).
		Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "alice"}, nil)

	res, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "  nice post  "})
	require.NoError(t, err)
	assert.Equal(t, uint64(77), res.ID)
	assert.Equal(t, "nice post", res.Content)
	assert.Equal(t, "alice", res.AuthorName)
	assert.Nil(t, res.ParentID)

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint64(2), sent[0].RecipientID)
	assert.Equal(t, mongo.TypeComment, sent[0].Type)
	assert.Equal(t, mongo.UserSender(1), sent[0].Sender)
	assert.Equal(t, `alice commented on your post "Hello"`, sent[0].Message)
	require.NotNil(t, sent[0].PostID)
	assert.Equal(t, uint64(10), *sent[0].PostID)
	f.cache.AssertCalled(t, "DeleteKey", mock.Anything, []string{"post:comment:10"})
	f.assertExpectations(t)
}

func TestCreateComment_CountCacheFailureIgnored(t *testing.T) {
	cache := &redis.MockCache{}
	cache.On("DeleteKey", mock.Anything, []string{"post:comment:10"}).Return(errors.New("redis down")).Once()
	commentRepo := &repository.MockCommentRepo{}
	postRepo := &repository.MockPostRepo{}
	userRepo := &repository.MockUserRepo{}
	svc := NewCommentService(commentRepo, postRepo, userRepo, &recordingNotifier{}, cache)

	postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 1}, nil)
	commentRepo.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("GetUserByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "alice"}, nil)

	res, err := svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Content)
	cache.AssertExpectations(t)
}

func TestCreateComment_OwnPostNoNotification(t *testing.T) {
	f := newCommentFixture()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 1}, nil)
	f.commentRepo.On("CreateComment", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "alice"}, nil)

	_, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "hi"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent())
}

func TestCreateComment_Reply(t *testing.T) {
	f := newCommentFixture()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 1}, nil)
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(5)).Return(newComment(5, 10, 3, nil, 0), nil)
	f.commentRepo.On("CreateComment", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.ParentID != nil && *c.ParentID == 5 && c.PostID == 10
	})).Return(nil)
	f.userRepo.On("GetUserByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "alice"}, nil)

	res, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "reply", ParentID: parent(5)})
	require.NoError(t, err)
	require.NotNil(t, res.ParentID)
	assert.Equal(t, uint64(5), *res.ParentID)
	f.assertExpectations(t)
}

func TestCreateComment_ParentMustBelongToPost(t *testing.T) {
	cases := map[string]*model.Comment{
		"missing":    nil,
		"other post": newComment(5, 11, 3, nil, 0),
	}
	for name, parentComment := range cases {
		t.Run(name, func(t *testing.T) {
			f := newCommentFixture()
			f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(&model.Post{ID: 10, AuthorID: 1}, nil)
			f.commentRepo.On("GetCommentByID", mock.Anything, uint64(5)).Return(parentComment, nil)

			_, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "reply", ParentID: parent(5)})
			assert.ErrorIs(t, err, ErrParentCommentNotFound)
			f.commentRepo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateComment_PostNotFound(t *testing.T) {
	f := newCommentFixture()
	f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(nil, nil)

	_, err := f.svc.CreateComment(context.Background(), 1, &dto.CommentCreateDTO{PostID: 10, Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

// 帖子 10 的评论：1 <- 2 <- 3，4 为独立的一级评论
func threadOfPost10() []*model.Comment {
	return []*model.Comment{
		newComment(1, 10, 100, nil, 0),
		newComment(2, 10, 101, parent(1), 1),
		newComment(3, 10, 102, parent(2), 2),
		newComment(4, 10, 103, nil, 3),
	}
}

func TestCascadeDelete_RemovesDescendants(t *testing.T) {
	f := newCommentFixture()
	comments := threadOfPost10()
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(1)).Return(comments[0], nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{1, 2, 3}).Return(int64(3), nil)

	n, err := f.svc.CascadeDelete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	f.cache.AssertCalled(t, "DeleteKey", mock.Anything, []string{"post:comment:10"})
	f.assertExpectations(t)
}

func TestCascadeDelete_Leaf(t *testing.T) {
	f := newCommentFixture()
	comments := threadOfPost10()
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(3)).Return(comments[2], nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{3}).Return(int64(1), nil)

	n, err := f.svc.CascadeDelete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCascadeDelete_AbsentIsNoop(t *testing.T) {
	f := newCommentFixture()
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(9)).Return(nil, nil)

	n, err := f.svc.CascadeDelete(context.Background(), 9)
	require.NoError(t, err)
	assert.Zero(t, n)
	f.commentRepo.AssertNotCalled(t, "DeleteCommentsByIDs", mock.Anything, mock.Anything)
}

func TestCascadeDelete_StoreError(t *testing.T) {
	f := newCommentFixture()
	storeErr := errors.New("connection reset")
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(1)).Return(newComment(1, 10, 100, nil, 0), nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(nil, storeErr)

	_, err := f.svc.CascadeDelete(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
	f.cache.AssertNotCalled(t, "DeleteKey", mock.Anything, mock.Anything)
}

func TestDeleteComment_Authorization(t *testing.T) {
	post := &model.Post{ID: 10, AuthorID: 50}
	cases := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{name: "comment author", actor: Actor{UserID: 100}},
		{name: "post author", actor: Actor{UserID: 50}},
		{name: "admin", actor: Actor{UserID: 999, IsAdmin: true}},
		{name: "stranger", actor: Actor{UserID: 7}, wantErr: ErrActionForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCommentFixture()
			comments := threadOfPost10()
			f.commentRepo.On("GetCommentByID", mock.Anything, uint64(1)).Return(comments[0], nil)
			f.postRepo.On("GetPost", mock.Anything, uint64(10)).Return(post, nil).Maybe()
			if tc.wantErr == nil {
				f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
				f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{1, 2, 3}).Return(int64(3), nil)
			}

			err := f.svc.DeleteComment(context.Background(), tc.actor, 1)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.commentRepo.AssertNotCalled(t, "DeleteCommentsByIDs", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			f.commentRepo.AssertExpectations(t)
			assert.Empty(t, f.notifier.sent())
		})
	}
}

func TestDeleteComment_NotFound(t *testing.T) {
	f := newCommentFixture()
	f.commentRepo.On("GetCommentByID", mock.Anything, uint64(9)).Return(nil, nil)

	err := f.svc.DeleteComment(context.Background(), Actor{UserID: 1, IsAdmin: true}, 9)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetCommentTree_Nested(t *testing.T) {
	f := newCommentFixture()
	comments := threadOfPost10()
	comments[0].Author = model.User{ID: 100, Name: "root-author"}
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)

	tree, err := f.svc.GetCommentTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, uint64(1), tree[0].ID)
	assert.Equal(t, "root-author", tree[0].AuthorName)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, uint64(2), tree[0].Replies[0].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, uint64(3), tree[0].Replies[0].Replies[0].ID)
	assert.Empty(t, tree[0].Replies[0].Replies[0].Replies)
	assert.Equal(t, uint64(4), tree[1].ID)
	assert.NotNil(t, tree[1].Replies)
}

func TestGetCommentTree_OrphanHandling(t *testing.T) {
	comments := []*model.Comment{
		newComment(1, 10, 100, nil, 0),
		newComment(2, 10, 101, parent(42), 1),
	}

	dropped := newCommentFixture()
	dropped.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	tree, err := dropped.svc.GetCommentTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, uint64(1), tree[0].ID)

	promoted := newCommentFixture(WithOrphanPromotion())
	promoted.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	tree, err = promoted.svc.GetCommentTree(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, uint64(2), tree[1].ID)
}

func TestGetComments_NewestFirst(t *testing.T) {
	f := newCommentFixture()
	comments := threadOfPost10()
	newest := []*model.Comment{comments[3], comments[2], comments[1], comments[0]}
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), true).Return(newest, nil)

	res, err := f.svc.GetComments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, res, 4)
	assert.Equal(t, uint64(4), res[0].ID)
	assert.Equal(t, uint64(1), res[3].ID)
}

func TestGetCommentCount(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newCommentFixture()
		f.cache.On("GetValue", mock.Anything, "post:comment:10").Return("12", nil)

		n, err := f.svc.GetCommentCount(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
		f.commentRepo.AssertNotCalled(t, "CountByPostID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss", func(t *testing.T) {
		f := newCommentFixture()
		f.cache.On("GetValue", mock.Anything, "post:comment:10").Return("", nil)
		f.commentRepo.On("CountByPostID", mock.Anything, uint64(10)).Return(int64(3), nil)
		f.cache.On("SetWithExpiration", mock.Anything, "post:comment:10", int64(3), commentCountExpiration).Return(nil)

		n, err := f.svc.GetCommentCount(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		f.assertExpectations(t)
	})
}

func TestDeleteCommentsByAuthor(t *testing.T) {
	f := newCommentFixture()
	comments := threadOfPost10()
	// 作者 101 的评论 2 以及它的回复 3
	f.commentRepo.On("GetCommentsByAuthorID", mock.Anything, uint64(101)).Return([]*model.Comment{comments[1]}, nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{2, 3}).Return(int64(2), nil)

	require.NoError(t, f.svc.DeleteCommentsByAuthor(context.Background(), 101))
	f.assertExpectations(t)
}

func TestSweepOrphans(t *testing.T) {
	f := newCommentFixture()
	comments := []*model.Comment{
		newComment(1, 10, 100, nil, 0),
		newComment(5, 10, 101, parent(42), 1),
		newComment(6, 10, 102, parent(5), 2),
	}
	f.commentRepo.On("GetOrphanPostIDs", mock.Anything).Return([]uint64{10}, nil)
	f.commentRepo.On("GetCommentsByPostID", mock.Anything, uint64(10), false).Return(comments, nil)
	f.commentRepo.On("DeleteCommentsByIDs", mock.Anything, []uint64{5, 6}).Return(int64(2), nil)

	n, err := f.svc.SweepOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	f.assertExpectations(t)
}
