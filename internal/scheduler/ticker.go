// Package scheduler hosts the batch-job backends. Both backends drive the
// same three SchedulerService operations; which one runs is a configuration
// choice, not a code path the operations can observe.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"homequest/internal/config"
	"homequest/internal/model"
	"homequest/internal/service"
)

// Backend is a running job driver. Start returns once the backend is
// polling; Stop blocks until in-flight runs finish.
type Backend interface {
	Start(ctx context.Context) error
	Stop()
}

// TickerBackend runs the batch jobs on in-process timers. Suitable for a
// single running instance; multi-instance deployments should use the
// Temporal backend so jobs are not duplicated.
type TickerBackend struct {
	svc    service.SchedulerService
	cfg    *config.Config
	logger *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTickerBackend(svc service.SchedulerService, cfg *config.Config, logger *slog.Logger) *TickerBackend {
	return &TickerBackend{svc: svc, cfg: cfg, logger: logger}
}

func (b *TickerBackend) Start(ctx context.Context) error {
	ctx, b.cancel = context.WithCancel(ctx)

	recalcInterval := time.Duration(b.cfg.Scheduler.RecalcIntervalMinutes) * time.Minute
	snapshotInterval := time.Duration(b.cfg.Scheduler.SnapshotIntervalHours) * time.Hour
	cleanupInterval := time.Duration(b.cfg.Scheduler.CleanupIntervalHours) * time.Hour

	b.logger.Info("Starting ticker scheduler",
		"recalc_interval", recalcInterval,
		"snapshot_interval", snapshotInterval,
		"cleanup_interval", cleanupInterval)

	b.loop(ctx, "recalculate_scores", recalcInterval, func(ctx context.Context) (string, string) {
		s := b.svc.RecalculateScores(ctx, service.RecalcOptions{})
		return s.Status, s.Message
	})
	b.loop(ctx, "daily_snapshot", snapshotInterval, func(ctx context.Context) (string, string) {
		s := b.svc.CreateDailySnapshots(ctx)
		return s.Status, s.Message
	})
	b.loop(ctx, "event_cleanup", cleanupInterval, func(ctx context.Context) (string, string) {
		s := b.svc.CleanupOldEvents(ctx)
		return s.Status, s.Message
	})
	return nil
}

func (b *TickerBackend) loop(ctx context.Context, name string, interval time.Duration, run func(context.Context) (string, string)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status, message := run(ctx)
				if status != model.StatusOK {
					b.logger.Error("Scheduled job reported an error", "job", name, "message", message)
				}
			}
		}
	}()
}

func (b *TickerBackend) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	b.logger.Info("Ticker scheduler stopped")
}
