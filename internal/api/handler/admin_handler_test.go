package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/service"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newModerationRouter(svc service.ModerationService) *gin.Engine {
	h := NewAdminHandler(nil, svc, nil)
	r := gin.New()
	admin := r.Group("/api/admin/users", asUser(1, model.RoleAdmin))
	admin.DELETE("/posts/:postId", h.DeletePost)
	admin.GET("/posts/:postId/full", h.GetPostModerationView)
	admin.GET("/posts/:postId/comments", h.GetPostComments)
	admin.DELETE("/comments/:commentId", h.DeleteComment)
	return r
}

func TestAdminGetPostModerationView(t *testing.T) {
	svc := &service.MockModerationService{}
	svc.On("GetPostModerationView", mock.Anything, uint64(10)).Return(&dto.ModerationViewDTO{
		Post: &dto.PostDTO{ID: 10, Title: "Hello"},
		Comments: []*dto.CommentNodeDTO{
			{CommentDTO: dto.CommentDTO{ID: 1, AuthorName: "u100"}, Replies: []*dto.CommentNodeDTO{}},
		},
	}, nil)

	w := perform(newModerationRouter(svc), http.MethodGet, "/api/admin/users/posts/10/full", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var view dto.ModerationViewDTO
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, "Hello", view.Post.Title)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "u100", view.Comments[0].AuthorName)
}

func TestAdminGetPostModerationView_NotFound(t *testing.T) {
	svc := &service.MockModerationService{}
	svc.On("GetPostModerationView", mock.Anything, uint64(10)).Return(nil, service.ErrPostNotFound)

	w := perform(newModerationRouter(svc), http.MethodGet, "/api/admin/users/posts/10/full", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.ErrPostNotFound.Error(), decode(t, w).Message)
}

func TestAdminDeleteComment(t *testing.T) {
	svc := &service.MockModerationService{}
	svc.On("DeleteComment", mock.Anything, uint64(3)).Return(nil)
	svc.On("DeleteComment", mock.Anything, uint64(4)).Return(service.ErrCommentNotFound)
	svc.On("DeleteComment", mock.Anything, uint64(5)).Return(errors.New("mongo down"))
	r := newModerationRouter(svc)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodDelete, "/api/admin/users/comments/3", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/api/admin/users/comments/4", "").Code)

	w := perform(r, http.MethodDelete, "/api/admin/users/comments/5", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo down")

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodDelete, "/api/admin/users/comments/0", "").Code)
	svc.AssertNumberOfCalls(t, "DeleteComment", 3)
}

func TestAdminGetPostComments(t *testing.T) {
	svc := &service.MockModerationService{}
	svc.On("GetPostComments", mock.Anything, uint64(10)).Return([]*dto.CommentDTO{{ID: 1}, {ID: 2}}, nil)

	w := perform(newModerationRouter(svc), http.MethodGet, "/api/admin/users/posts/10/comments", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var comments []*dto.CommentDTO
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &comments))
	assert.Len(t, comments, 2)
}

func TestAdminDeletePost(t *testing.T) {
	svc := &service.MockModerationService{}
	svc.On("DeletePost", mock.Anything, uint64(10)).Return(nil)

	w := perform(newModerationRouter(svc), http.MethodDelete, "/api/admin/users/posts/10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
