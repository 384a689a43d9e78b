//go:generate mockery --name SchedulerService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homequest/internal/config"
	"homequest/internal/logging"
	"homequest/internal/model"
	"homequest/internal/repository"
	"homequest/internal/signals"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecalcOptions selects which users a recalculation run touches. Zero value
// means "only users with no score row or a score older than the configured
// staleness threshold".
type RecalcOptions struct {
	// All forces recalculation for every user regardless of score age.
	All bool
	// OlderThan overrides the configured staleness threshold when positive.
	OlderThan time.Duration
}

// SchedulerService hosts the three batch operations. Each is idempotent and
// safe to re-run; a run never returns a Go error for per-user failures, only
// a summary with a status, so a scheduler backend can log and carry on.
type SchedulerService interface {
	RecalculateScores(ctx context.Context, opts RecalcOptions) *model.RecalcSummary
	CreateDailySnapshots(ctx context.Context) *model.SnapshotSummary
	CleanupOldEvents(ctx context.Context) *model.CleanupSummary
}

type schedulerService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	scoreRepo repository.ScoreRepository
	eventRepo repository.EventRepository
	scoring   ScoringService
	cfg       *config.Config
}

func NewSchedulerService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	scoreRepo repository.ScoreRepository,
	eventRepo repository.EventRepository,
	scoring ScoringService,
	cfg *config.Config,
) SchedulerService {
	return &schedulerService{
		db:        db,
		userRepo:  userRepo,
		scoreRepo: scoreRepo,
		eventRepo: eventRepo,
		scoring:   scoring,
		cfg:       cfg,
	}
}

// RecalculateScores scores the selected users and overwrites their
// UserLeadScore rows. Per-user failures are counted and logged, never fatal
// to the run. Concurrent runs over the same user are last-writer-wins via
// the upsert.
func (s *schedulerService) RecalculateScores(ctx context.Context, opts RecalcOptions) *model.RecalcSummary {
	logger := logging.FromContext(ctx)
	summary := &model.RecalcSummary{Status: model.StatusOK, StartedAt: time.Now()}
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	userIDs, err := s.userRepo.ListUserIDs(ctx, s.db)
	if err != nil {
		summary.Status = model.StatusError
		summary.Message = fmt.Sprintf("listing users: %v", err)
		logger.Error("Score recalculation aborted", "error", err)
		return summary
	}

	staleness := time.Duration(s.cfg.Analytics.StaleScoreMinutes) * time.Minute
	if opts.OlderThan > 0 {
		staleness = opts.OlderThan
	}

	for _, userID := range userIDs {
		if !opts.All {
			stale, err := s.scoreIsStale(ctx, userID, staleness)
			if err != nil {
				summary.Attempted++
				summary.Failed++
				logger.Error("Staleness check failed", "user_id", userID, "error", err)
				continue
			}
			if !stale {
				continue
			}
		}

		summary.Attempted++
		if err := s.recalculateOne(ctx, userID); err != nil {
			summary.Failed++
			logger.Error("Score recalculation failed for user", "user_id", userID, "error", err)
			continue
		}
		summary.Succeeded++
	}

	logger.Info("Score recalculation finished",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", time.Since(summary.StartedAt))
	return summary
}

func (s *schedulerService) scoreIsStale(ctx context.Context, userID uuid.UUID, staleness time.Duration) (bool, error) {
	score, err := s.scoreRepo.FindByUserID(ctx, s.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return time.Since(score.LastCalculatedAt) > staleness, nil
}

func (s *schedulerService) recalculateOne(ctx context.Context, userID uuid.UUID) error {
	lead, err := s.scoring.CalculateWithClassification(ctx, userID)
	if err != nil {
		return err
	}
	b := lead.Breakdown

	var lastActivity *time.Time
	latest, err := s.eventRepo.LatestByUser(ctx, s.db, userID)
	if err == nil {
		lastActivity = &latest.CreatedAt
	} else if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	score := &model.UserLeadScore{
		UserID:                userID,
		EngagementScore:       b.DimensionScoreValue(model.DimensionEngagement),
		TimelineUrgencyScore:  b.DimensionScoreValue(model.DimensionTimelineUrgency),
		HelpSeekingScore:      b.DimensionScoreValue(model.DimensionHelpSeeking),
		LearningVelocityScore: b.DimensionScoreValue(model.DimensionLearningVelocity),
		RewardsScore:          b.DimensionScoreValue(model.DimensionRewards),
		CompositeScore:        b.CompositeScore,
		LeadTemperature:       lead.Classification.Temperature,
		IntentBand:            lead.Classification.IntentBand,
		ProfileCompletionPct:  b.ProfileCompletionPct,
		AvailableSignalsCount: b.AvailableSignalsCount,
		TotalSignalsCount:     b.TotalSignalsCount,
		LastCalculatedAt:      b.CalculatedAt,
		LastActivityAt:        lastActivity,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.scoreRepo.Upsert(ctx, tx, score)
	})
}

// CreateDailySnapshots appends today's LeadScoreHistory row for every
// current UserLeadScore. The (user, date) existence check makes the run
// idempotent; a conflicting concurrent insert is counted as already
// existing, not as a failure.
func (s *schedulerService) CreateDailySnapshots(ctx context.Context) *model.SnapshotSummary {
	logger := logging.FromContext(ctx)
	summary := &model.SnapshotSummary{Status: model.StatusOK, StartedAt: time.Now()}
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	scores, err := s.scoreRepo.ListAll(ctx, s.db)
	if err != nil {
		summary.Status = model.StatusError
		summary.Message = fmt.Sprintf("listing scores: %v", err)
		logger.Error("Snapshot run aborted", "error", err)
		return summary
	}

	today := time.Now().Truncate(24 * time.Hour)
	for _, score := range scores {
		exists, err := s.scoreRepo.SnapshotExists(ctx, s.db, score.UserID, today)
		if err != nil {
			summary.Status = model.StatusError
			summary.Message = fmt.Sprintf("checking snapshot for %s: %v", score.UserID, err)
			logger.Error("Snapshot existence check failed", "user_id", score.UserID, "error", err)
			return summary
		}
		if exists {
			summary.AlreadyExisting++
			continue
		}

		snapshot := &model.LeadScoreHistory{
			UserID:          score.UserID,
			SnapshotDate:    today,
			CompositeScore:  score.CompositeScore,
			LeadTemperature: score.LeadTemperature,
			IntentBand:      score.IntentBand,
			Metrics:         snapshotMetrics(score),
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.scoreRepo.CreateSnapshot(ctx, tx, snapshot)
		})
		if errors.Is(err, model.ErrConflict) {
			// Lost a race against a concurrent snapshot run for the same day.
			summary.AlreadyExisting++
			continue
		}
		if err != nil {
			summary.Status = model.StatusError
			summary.Message = fmt.Sprintf("creating snapshot for %s: %v", score.UserID, err)
			logger.Error("Snapshot insert failed", "user_id", score.UserID, "error", err)
			return summary
		}
		summary.SnapshotsCreated++
	}

	logger.Info("Snapshot run finished",
		"created", summary.SnapshotsCreated,
		"already_existing", summary.AlreadyExisting)
	return summary
}

func snapshotMetrics(score *model.UserLeadScore) map[string]any {
	m := map[string]any{
		"profile_completion_pct":  score.ProfileCompletionPct,
		"available_signals_count": score.AvailableSignalsCount,
		"total_signals_count":     score.TotalSignalsCount,
		"labels":                  Labels(score),
	}
	for _, dim := range model.AllDimensions {
		m[string(dim)+"_score"] = score.DimensionScore(dim)
	}
	return m
}

// CleanupOldEvents deletes behavior events past the retention window.
func (s *schedulerService) CleanupOldEvents(ctx context.Context) *model.CleanupSummary {
	logger := logging.FromContext(ctx)
	cutoff := time.Now().AddDate(0, 0, -s.cfg.Analytics.EventRetentionDays)
	summary := &model.CleanupSummary{Status: model.StatusOK, Cutoff: cutoff, StartedAt: time.Now()}
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
	}()

	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = s.eventRepo.DeleteOlderThan(ctx, tx, cutoff)
		return err
	})
	if err != nil {
		summary.Status = model.StatusError
		summary.Message = fmt.Sprintf("deleting events: %v", err)
		logger.Error("Event cleanup failed", "error", err)
		return summary
	}

	summary.DeletedEvents = deleted
	logger.Info("Event cleanup finished", "deleted", deleted, "cutoff", cutoff)
	return summary
}

// Labels returns the human-readable classification labels for a persisted
// score row, recomputed from the stored dimension scores.
func Labels(score *model.UserLeadScore) []string {
	c := signals.Classify(signals.Scores{
		Composite:        score.CompositeScore,
		Engagement:       score.EngagementScore,
		TimelineUrgency:  score.TimelineUrgencyScore,
		HelpSeeking:      score.HelpSeekingScore,
		LearningVelocity: score.LearningVelocityScore,
		Rewards:          score.RewardsScore,
	})
	return c.Labels
}
