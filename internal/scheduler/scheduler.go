// Package scheduler runs the periodic wellness jobs
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Default cron specs
const (
	DefaultTrimSpec      = "5 0 * * *"
	DefaultDigestSpec    = "0 9 * * 1"
	DefaultRemindersSpec = "0 8 * * *"
	DefaultJobTimeout    = 2 * time.Minute
)

// MetricsTrimmer caps the stored metric series
type MetricsTrimmer interface {
	TrimMetrics(ctx context.Context, windowDays int) int
}

// Notifier sends the scheduled emails
type Notifier interface {
	SendWeeklyDigest(ctx context.Context) (bool, error)
	SendDailyReminders(ctx context.Context) error
}

// Config holds the job schedule. An empty spec disables that job.
type Config struct {
	TrimSpec      string
	DigestSpec    string
	RemindersSpec string
	WindowDays    int
	JobTimeout    time.Duration
	Location      *time.Location
}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron     *cron.Cron
	trimmer  MetricsTrimmer
	notifier Notifier
	cfg      Config
	logger   *zap.Logger
}

// NewScheduler creates a scheduler and registers every configured job
func NewScheduler(trimmer MetricsTrimmer, notifier Notifier, cfg Config, logger *zap.Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(cfg.Location)),
		trimmer:  trimmer,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}

	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{name: "trim_metrics", spec: cfg.TrimSpec, run: s.trimMetrics},
		{name: "weekly_digest", spec: cfg.DigestSpec, run: s.sendDigest},
		{name: "daily_reminders", spec: cfg.RemindersSpec, run: s.sendReminders},
	}

	for _, job := range jobs {
		if job.spec == "" {
			logger.Info("scheduled job disabled", zap.String("job", job.name))
			continue
		}
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			return nil, fmt.Errorf("failed to register %s job: %w", job.name, err)
		}
	}

	return s, nil
}

// Start begins running the registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("wellness scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish, or for ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("wellness scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("wellness scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

func (s *Scheduler) jobContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.JobTimeout)
}

func (s *Scheduler) trimMetrics() {
	ctx, cancel := s.jobContext()
	defer cancel()

	removed := s.trimmer.TrimMetrics(ctx, s.cfg.WindowDays)
	s.logger.Info("metric trim job finished",
		zap.Int("window_days", s.cfg.WindowDays),
		zap.Int("removed", removed),
	)
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := s.jobContext()
	defer cancel()

	sent, err := s.notifier.SendWeeklyDigest(ctx)
	if err != nil {
		s.logger.Error("weekly digest job failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly digest job finished", zap.Bool("sent", sent))
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := s.jobContext()
	defer cancel()

	if err := s.notifier.SendDailyReminders(ctx); err != nil {
		s.logger.Error("daily reminders job failed", zap.Error(err))
		return
	}
	s.logger.Info("daily reminders job finished")
}
