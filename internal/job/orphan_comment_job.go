package job

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"time"
)

const orphanSweepLockTTL = 30 * time.Minute

// OrphanCommentJob 清理父评论缺失的评论及其回复
type OrphanCommentJob struct {
	commentSvc service.CommentService
	cache      redis.Cache
}

func NewOrphanCommentJob(commentSvc service.CommentService, cache redis.Cache) *OrphanCommentJob {
	return &OrphanCommentJob{
		commentSvc: commentSvc,
		cache:      cache,
	}
}

func (s *OrphanCommentJob) Run() {
	runExclusive("orphan-comment", s.cache, consts.OrphanSweepLock, orphanSweepLockTTL, func(ctx context.Context) {
		start := time.Now()
		deleted, err := s.commentSvc.SweepOrphans(ctx)
		if err != nil {
			log.ErrorContext(ctx, "sweep orphan comments error", "deleted", deleted, "err", err)
			return
		}
		log.InfoContext(ctx, "orphan comments swept", "deleted", deleted, "cost", time.Since(start))
	})
}
