package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homequest/internal/config"
	"homequest/internal/model"
	"homequest/internal/service"

	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// Workflow and schedule identifiers. Schedule IDs are stable so restarting
// the worker reuses existing schedules instead of stacking new ones.
const (
	RecalcWorkflowName   = "analytics-recalculate-scores"
	SnapshotWorkflowName = "analytics-daily-snapshot"
	CleanupWorkflowName  = "analytics-event-cleanup"

	recalcScheduleID   = "analytics-recalculate-scores-schedule"
	snapshotScheduleID = "analytics-daily-snapshot-schedule"
	cleanupScheduleID  = "analytics-event-cleanup-schedule"
)

// Activities exposes the scheduler operations to Temporal. Summaries travel
// back through workflow results so failed runs show up in workflow history.
type Activities struct {
	svc service.SchedulerService
}

func NewActivities(svc service.SchedulerService) *Activities {
	return &Activities{svc: svc}
}

func (a *Activities) RecalculateScores(ctx context.Context) (*model.RecalcSummary, error) {
	summary := a.svc.RecalculateScores(ctx, service.RecalcOptions{})
	if summary.Status != model.StatusOK {
		return summary, fmt.Errorf("score recalculation: %s", summary.Message)
	}
	return summary, nil
}

func (a *Activities) CreateDailySnapshots(ctx context.Context) (*model.SnapshotSummary, error) {
	summary := a.svc.CreateDailySnapshots(ctx)
	if summary.Status != model.StatusOK {
		return summary, fmt.Errorf("daily snapshot: %s", summary.Message)
	}
	return summary, nil
}

func (a *Activities) CleanupOldEvents(ctx context.Context) (*model.CleanupSummary, error) {
	summary := a.svc.CleanupOldEvents(ctx)
	if summary.Status != model.StatusOK {
		return summary, fmt.Errorf("event cleanup: %s", summary.Message)
	}
	return summary, nil
}

func activityOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Minute,
			MaximumAttempts: 3,
		},
	})
}

func RecalcWorkflow(ctx workflow.Context) (*model.RecalcSummary, error) {
	var summary model.RecalcSummary
	err := workflow.ExecuteActivity(activityOptions(ctx), "RecalculateScores").Get(ctx, &summary)
	return &summary, err
}

func SnapshotWorkflow(ctx workflow.Context) (*model.SnapshotSummary, error) {
	var summary model.SnapshotSummary
	err := workflow.ExecuteActivity(activityOptions(ctx), "CreateDailySnapshots").Get(ctx, &summary)
	return &summary, err
}

func CleanupWorkflow(ctx workflow.Context) (*model.CleanupSummary, error) {
	var summary model.CleanupSummary
	err := workflow.ExecuteActivity(activityOptions(ctx), "CleanupOldEvents").Get(ctx, &summary)
	return &summary, err
}

// TemporalBackend runs the batch jobs as Temporal schedules processed by an
// in-process worker. Safe for multi-instance deployments: the server
// deduplicates schedule triggers across workers.
type TemporalBackend struct {
	svc    service.SchedulerService
	cfg    *config.Config
	logger *slog.Logger

	client client.Client
	worker worker.Worker
}

func NewTemporalBackend(svc service.SchedulerService, cfg *config.Config, logger *slog.Logger) *TemporalBackend {
	return &TemporalBackend{svc: svc, cfg: cfg, logger: logger}
}

func (b *TemporalBackend) Start(ctx context.Context) error {
	c, err := client.DialContext(ctx, client.Options{
		HostPort:  b.cfg.Temporal.Address,
		Namespace: b.cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("temporal backend: dialing %s: %w", b.cfg.Temporal.Address, err)
	}
	b.client = c

	w := worker.New(c, b.cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(RecalcWorkflow, workflow.RegisterOptions{Name: RecalcWorkflowName})
	w.RegisterWorkflowWithOptions(SnapshotWorkflow, workflow.RegisterOptions{Name: SnapshotWorkflowName})
	w.RegisterWorkflowWithOptions(CleanupWorkflow, workflow.RegisterOptions{Name: CleanupWorkflowName})
	w.RegisterActivity(NewActivities(b.svc))
	if err := w.Start(); err != nil {
		c.Close()
		return fmt.Errorf("temporal backend: starting worker: %w", err)
	}
	b.worker = w

	if err := b.ensureSchedules(ctx); err != nil {
		b.Stop()
		return err
	}

	b.logger.Info("Temporal scheduler started",
		"address", b.cfg.Temporal.Address,
		"namespace", b.cfg.Temporal.Namespace,
		"task_queue", b.cfg.Temporal.TaskQueue)
	return nil
}

func (b *TemporalBackend) ensureSchedules(ctx context.Context) error {
	schedules := []struct {
		id       string
		workflow string
		interval time.Duration
	}{
		{recalcScheduleID, RecalcWorkflowName, time.Duration(b.cfg.Scheduler.RecalcIntervalMinutes) * time.Minute},
		{snapshotScheduleID, SnapshotWorkflowName, time.Duration(b.cfg.Scheduler.SnapshotIntervalHours) * time.Hour},
		{cleanupScheduleID, CleanupWorkflowName, time.Duration(b.cfg.Scheduler.CleanupIntervalHours) * time.Hour},
	}

	for _, s := range schedules {
		_, err := b.client.ScheduleClient().Create(ctx, client.ScheduleOptions{
			ID: s.id,
			Spec: client.ScheduleSpec{
				Intervals: []client.ScheduleIntervalSpec{{Every: s.interval}},
			},
			Action: &client.ScheduleWorkflowAction{
				ID:        s.id + "-run",
				Workflow:  s.workflow,
				TaskQueue: b.cfg.Temporal.TaskQueue,
			},
			// A trigger overlapping a still-running job is skipped, which
			// matches the ticker backend's one-run-at-a-time behavior.
			Overlap: enums.SCHEDULE_OVERLAP_POLICY_SKIP,
		})
		if err != nil && err != temporal.ErrScheduleAlreadyRunning {
			return fmt.Errorf("temporal backend: creating schedule %s: %w", s.id, err)
		}
	}
	return nil
}

func (b *TemporalBackend) Stop() {
	if b.worker != nil {
		b.worker.Stop()
	}
	if b.client != nil {
		b.client.Close()
	}
	b.logger.Info("Temporal scheduler stopped")
}
