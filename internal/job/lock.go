package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// runExclusive 多实例部署时通过 redis 锁保证同一时刻只有一个实例执行任务
func runExclusive(name string, cache redis.Cache, lockKey string, ttl time.Duration, fn func(ctx context.Context)) {
	token := uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), "job-"+name+"-"+token)

	locked, err := cache.TryLock(ctx, lockKey, token, ttl)
	if err != nil {
		log.ErrorContext(ctx, "acquire job lock error", "job", name, "err", err)
		return
	}
	if !locked {
		log.DebugContext(ctx, "job is running on another instance", "job", name)
		return
	}
	defer func() {
		if err := cache.UnLock(ctx, lockKey, token); err != nil {
			log.WarnContext(ctx, "release job lock error", "job", name, "err", err)
		}
	}()

	fn(ctx)
}
