package services

import (
	"context"
	"log/slog"
	"time"

	"willeasy/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs the expiry purge every five minutes
const DefaultPurgeSchedule = "@every 5m"

// PurgeResult counts what one purge run removed
type PurgeResult struct {
	Sessions int
	Signups  int
}

// CronService runs the scheduled purge of expired sessions and signups
type CronService struct {
	cron     *cron.Cron
	schedule string
	sessions *SessionService
	signups  *SignupService
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewCronService creates a new cron service
func NewCronService(
	sessions *SessionService,
	signups *SignupService,
	m *metrics.Metrics,
	logger *slog.Logger,
	schedule string,
) *CronService {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &CronService{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		schedule: schedule,
		sessions: sessions,
		signups:  signups,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the purge job and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.PurgeExpired(context.Background()); err != nil {
			s.logger.Error("purge expired failed", "error", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("cron started", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron stopped")
}

// PurgeExpired removes expired sessions and pending signups once
func (s *CronService) PurgeExpired(ctx context.Context) (PurgeResult, error) {
	now := s.now()

	var result PurgeResult
	result.Signups = s.signups.PurgeExpired(now)
	s.metrics.AddExpiredPurged("signup", result.Signups)

	n, err := s.sessions.PurgeExpired(ctx, now)
	if err != nil {
		return result, err
	}
	result.Sessions = n
	s.metrics.AddExpiredPurged("session", n)

	if result.Sessions > 0 || result.Signups > 0 {
		s.logger.Info("purged expired", "sessions", result.Sessions, "signups", result.Signups)
	}
	return result, nil
}
