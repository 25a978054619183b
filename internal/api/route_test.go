package api

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/handler"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	pass := func(c *gin.Context) { c.Next() }
	group := &HandlersGroup{
		UserHandler:         &handler.UserHandler{},
		UserFollowHandler:   &handler.UserFollowHandler{},
		PostHandler:         &handler.PostHandler{},
		AuthorHandler:       &handler.AuthorHandler{},
		CommentHandler:      &handler.CommentHandler{},
		NotificationHandler: &handler.NotificationHandler{},
		AdminHandler:        &handler.AdminHandler{},
		UserOverviewHandler: &handler.UserOverviewHandler{},
		ExploreHandler:      &handler.ExploreHandler{},
	}
	guards := &Guards{
		Auth:         func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) },
		AuthOptional: pass,
		NotBanned:    pass,
		Admin:        pass,
	}
	return SetupRouter(&config.Config{}, group, guards)
}

func TestSetupRouter_Routes(t *testing.T) {
	routes := make(map[string]bool)
	for _, r := range newTestRouter().Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"PATCH /api/posts/:id/like",
		"GET /api/posts/my-posts",
		"GET /api/posts/:id",
		"GET /api/explore/public",
		"GET /api/explore/private",
		"GET /api/overview/me/overview",
		"GET /api/overview/me/top-blogs",
		"GET /api/overview/me/category-stats",
		"GET /api/overview/me/trends",
		"GET /api/overview/me/stale-drafts",
		"GET /api/overview/me/word-stats",
		"GET /api/overview/me/liked-posts",
		"GET /api/overview/me/milestones",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["PUT /api/posts/:id/like"])
}

func TestSetupRouter_PersonalRoutesRequireLogin(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{
		"/api/posts/my-posts",
		"/api/explore/private",
		"/api/overview/me/overview",
		"/api/overview/me/milestones",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
