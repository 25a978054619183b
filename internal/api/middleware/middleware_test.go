package middleware

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenManager() *security.TokenManager {
	return security.NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "inkwell", Expiration: 1})
}

func perform(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tm := newTokenManager()
	token, err := tm.GenerateToken(7, []string{model.RoleUser})
	require.NoError(t, err)
	signature := token[strings.LastIndex(token, ".")+1:]

	newRouter := func(cache redis.Cache) *gin.Engine {
		r := gin.New()
		r.GET("/me", AuthMiddleware(tm, cache), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64(UserIDKey), "roles": c.GetStringSlice(RolesKey)})
		})
		return r
	}

	t.Run("missing token", func(t *testing.T) {
		w := perform(newRouter(&redis.MockCache{}), http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":401`)
	})

	t.Run("revoked token", func(t *testing.T) {
		cache := &redis.MockCache{}
		cache.On("Exists", mock.Anything, consts.TokenBlacklistKey+signature).Return(true, nil)
		w := perform(newRouter(cache), http.MethodGet, "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forged token", func(t *testing.T) {
		other := security.NewTokenManager(config.JWTConfig{Secret: "other-secret", Issuer: "inkwell", Expiration: 1})
		forged, err := other.GenerateToken(7, []string{model.RoleAdmin})
		require.NoError(t, err)
		cache := &redis.MockCache{}
		cache.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
		w := perform(newRouter(cache), http.MethodGet, "/me", forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		cache := &redis.MockCache{}
		cache.On("Exists", mock.Anything, consts.TokenBlacklistKey+signature).Return(false, nil)
		w := perform(newRouter(cache), http.MethodGet, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"roles":["user"]}`, w.Body.String())
	})
}

func TestCheckRoles(t *testing.T) {
	newRouter := func(roles []string) *gin.Engine {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			c.Set(RolesKey, roles)
			c.Next()
		}, CheckRoles(model.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	assert.Equal(t, http.StatusForbidden, perform(newRouter([]string{model.RoleUser}), http.MethodGet, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, perform(newRouter(nil), http.MethodGet, "/admin", "").Code)
	assert.Equal(t, http.StatusNoContent, perform(newRouter([]string{model.RoleUser, model.RoleAdmin}), http.MethodGet, "/admin", "").Code)
}

func TestCheckBanStatus(t *testing.T) {
	userService := &service.MockUserService{}
	userService.On("IsBanned", mock.Anything, uint64(1)).Return(true, nil)
	userService.On("IsBanned", mock.Anything, uint64(2)).Return(false, nil)

	newRouter := func(userID uint64) *gin.Engine {
		r := gin.New()
		r.POST("/comments", func(c *gin.Context) {
			c.Set(UserIDKey, userID)
			c.Next()
		}, CheckBanStatus(userService), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return r
	}

	w := perform(newRouter(1), http.MethodPost, "/comments", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrUserBan.Error())

	assert.Equal(t, http.StatusCreated, perform(newRouter(2), http.MethodPost, "/comments", "").Code)
}

func TestTraceMiddleware(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = logger.TraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(TraceHeader))

	w = perform(r, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, w.Header().Get(TraceHeader))
	assert.Equal(t, seen, w.Header().Get(TraceHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://inkwell.dev"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://inkwell.dev")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://inkwell.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), TraceHeader)

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
