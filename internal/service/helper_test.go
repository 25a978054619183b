package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/redis"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// recordingNotifier 记录所有发出的通知
type recordingNotifier struct {
	NotificationService
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) sent() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func parent(id uint64) *uint64 {
	return &id
}

func newComment(id, postID, authorID uint64, parentID *uint64, minute int) *model.Comment {
	return &model.Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   "comment",
		CreatedAt: baseTime.Add(time.Duration(minute) * time.Minute),
	}
}

// newCountCache 允许删除评论计数缓存的 MockCache
func newCountCache() *redis.MockCache {
	cache := &redis.MockCache{}
	cache.On("DeleteKey", mock.Anything, mock.Anything).Return(nil).Maybe()
	return cache
}
