package cron

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	cfg              config.CronConfig
	banExpiryJob     *job.BanExpiryJob
	orphanCommentJob *job.OrphanCommentJob
}

func NewCronManager(cfg config.CronConfig, banExpiryJob *job.BanExpiryJob, orphanCommentJob *job.OrphanCommentJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		cfg:              cfg,
		banExpiryJob:     banExpiryJob,
		orphanCommentJob: orphanCommentJob,
	}
}

func (s *Manager) registerJobs() error {
	if _, err := s.engine.AddJob(specOr(s.cfg.BanExpirySpec, "@every 1m"), s.banExpiryJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(specOr(s.cfg.OrphanSweepSpec, "@daily"), s.orphanCommentJob); err != nil {
		return err
	}
	return nil
}

// Start 注册封禁到期与孤儿评论清理任务并启动引擎
func (s *Manager) Start() error {
	if err := s.registerJobs(); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动", "jobs", len(s.engine.Entries()))
	s.engine.Start()
	return nil
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

func specOr(spec, fallback string) string {
	if spec == "" {
		return fallback
	}
	return spec
}
