package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cardslip/internal/config"
	"cardslip/internal/service/catalog"
	"cardslip/internal/service/orders"
)

// Scheduler manages the background jobs: periodic catalog snapshot
// refresh and the idle-session sweep.
type Scheduler struct {
	cron    *cron.Cron
	catalog *catalog.Service
	store   *orders.Store
	cfg     config.Config
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, catalogSvc *catalog.Service, store *orders.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		catalog: catalogSvc,
		store:   store,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("catalog_refresh", s.cfg.Catalog.RefreshSchedule),
		zap.String("session_sweep", s.cfg.Session.SweepSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Catalog.RefreshSchedule, s.refreshCatalog); err != nil {
		s.logger.Error("failed to schedule catalog refresh", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.Session.SweepSchedule, s.sweepSessions); err != nil {
		s.logger.Error("failed to schedule session sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Error("scheduled catalog refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) sweepSessions() {
	s.store.Sweep(time.Now())
}
