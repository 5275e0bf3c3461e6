package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// SyncRunner is the subset of Syncer the scheduler drives.
type SyncRunner interface {
	Sync(ctx context.Context) error
}

// Scheduler runs a catalog sync once a day at a fixed hour, plus a backup
// sync on a fixed interval so a failed daily run does not leave the catalog
// stale for a full day.
type Scheduler struct {
	runner      SyncRunner
	clock       clockwork.Clock
	dailyHour   int
	backupEvery time.Duration
	logger      *slog.Logger
}

// NewScheduler creates a sync scheduler. dailyHour is in the clock's local
// time, 0 through 23.
func NewScheduler(runner SyncRunner, clock clockwork.Clock, dailyHour int, backupEvery time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:      runner,
		clock:       clock,
		dailyHour:   dailyHour,
		backupEvery: backupEvery,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, triggering syncs on schedule. Sync
// failures are logged and the schedule keeps going.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("sync scheduler started",
		"daily_hour", s.dailyHour,
		"backup_every", s.backupEvery)

	daily := s.clock.After(s.untilNextDaily())
	backup := s.clock.After(s.backupEvery)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-daily:
			s.runSync(ctx, "daily")
			daily = s.clock.After(s.untilNextDaily())
		case <-backup:
			s.runSync(ctx, "backup")
			backup = s.clock.After(s.backupEvery)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context, trigger string) {
	s.logger.Info("scheduled sync starting", "trigger", trigger)
	if err := s.runner.Sync(ctx); err != nil {
		s.logger.Error("scheduled sync failed", "trigger", trigger, "error", err)
	}
}

// untilNextDaily returns the wait until the next occurrence of dailyHour.
func (s *Scheduler) untilNextDaily() time.Duration {
	now := s.clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.dailyHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
