package job

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/service"
	"context"
	log "log/slog"
	"time"
)

const banExpiryLockTTL = 50 * time.Second

// BanExpiryJob 解除已到期的封禁
type BanExpiryJob struct {
	adminUserSvc service.AdminUserService
	cache        redis.Cache
}

func NewBanExpiryJob(adminUserSvc service.AdminUserService, cache redis.Cache) *BanExpiryJob {
	return &BanExpiryJob{
		adminUserSvc: adminUserSvc,
		cache:        cache,
	}
}

func (s *BanExpiryJob) Run() {
	runExclusive("ban-expiry", s.cache, consts.BanExpiryLock, banExpiryLockTTL, func(ctx context.Context) {
		lifted, err := s.adminUserSvc.LiftExpiredBans(ctx)
		if err != nil {
			log.ErrorContext(ctx, "lift expired bans error", "err", err)
			return
		}
		if lifted > 0 {
			log.InfoContext(ctx, "expired bans lifted", "count", lifted)
		}
	})
}
