//go:generate mockery --name ScoringService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"time"

	"homequest/internal/logging"
	"homequest/internal/model"
	"homequest/internal/signals"

	"github.com/google/uuid"
)

// Extractor is the signal source a scoring pass reads from. Satisfied by
// *SignalExtractor.
type Extractor interface {
	Available(ctx context.Context, userID uuid.UUID, signalID string) (bool, error)
	Extract(ctx context.Context, userID uuid.UUID, signalID string) (*float64, error)
	AvailabilitySummary(ctx context.Context, userID uuid.UUID) (*model.AvailabilitySummary, error)
}

// ScoringService computes availability-aware lead scores. A dimension is
// scored as a weighted average over only the signals that produced a value;
// the composite re-normalizes the fixed dimension weights over dimensions
// with at least one available signal, then scales to 0-1000.
type ScoringService interface {
	CalculateDimensionScore(ctx context.Context, userID uuid.UUID, dimension model.Dimension) (*model.DimensionScore, error)
	CalculateAllScores(ctx context.Context, userID uuid.UUID) (*model.ScoreBreakdown, error)
	CalculateWithClassification(ctx context.Context, userID uuid.UUID) (*model.ScoredLead, error)
	AvailabilitySummary(ctx context.Context, userID uuid.UUID) (*model.AvailabilitySummary, error)
}

type scoringService struct {
	extractor Extractor
}

func NewScoringService(extractor Extractor) ScoringService {
	return &scoringService{extractor: extractor}
}

// CalculateDimensionScore scores one dimension. Unavailable signals and
// signals that return no value are skipped entirely; the remaining values
// are averaged by catalog weight. A signal whose extractor errors is logged
// and treated as unavailable rather than failing the whole pass.
func (s *scoringService) CalculateDimensionScore(ctx context.Context, userID uuid.UUID, dimension model.Dimension) (*model.DimensionScore, error) {
	logger := logging.FromContext(ctx)

	catalogSignals := signals.ByDimension(dimension)
	result := &model.DimensionScore{
		Dimension:    dimension,
		TotalSignals: len(catalogSignals),
		SignalValues: make([]model.SignalValue, 0, len(catalogSignals)),
	}

	var weightedSum, weightSum float64
	for _, sig := range catalogSignals {
		available, err := s.extractor.Available(ctx, userID, sig.ID)
		if err != nil {
			logger.Warn("Signal availability check failed, treating as unavailable",
				"user_id", userID, "signal_id", sig.ID, "error", err)
			continue
		}
		if !available {
			continue
		}
		result.AvailableSignals++

		val, err := s.extractor.Extract(ctx, userID, sig.ID)
		if err != nil {
			logger.Warn("Signal extraction failed, skipping signal",
				"user_id", userID, "signal_id", sig.ID, "error", err)
			continue
		}
		if val == nil {
			continue
		}

		weightedSum += *val * sig.Weight
		weightSum += sig.Weight
		result.SignalValues = append(result.SignalValues, model.SignalValue{
			SignalID: sig.ID,
			Name:     sig.Name,
			Value:    round2(*val),
			Weight:   sig.Weight,
		})
	}

	if weightSum > 0 {
		result.Score = round2(weightedSum / weightSum)
	}
	if result.TotalSignals > 0 {
		result.CompletionPct = round2(float64(result.AvailableSignals) / float64(result.TotalSignals) * 100)
	}
	return result, nil
}

// CalculateAllScores scores every dimension and folds them into the 0-1000
// composite. Dimensions with no available signal are excluded from the
// composite and their weight is redistributed over the rest.
func (s *scoringService) CalculateAllScores(ctx context.Context, userID uuid.UUID) (*model.ScoreBreakdown, error) {
	breakdown := &model.ScoreBreakdown{
		UserID:       userID,
		Dimensions:   make(map[model.Dimension]*model.DimensionScore, len(model.AllDimensions)),
		CalculatedAt: time.Now(),
	}

	var weightedSum, weightSum float64
	for _, dim := range model.AllDimensions {
		ds, err := s.CalculateDimensionScore(ctx, userID, dim)
		if err != nil {
			return nil, fmt.Errorf("scoring dimension %s: %w", dim, err)
		}
		breakdown.Dimensions[dim] = ds
		breakdown.AvailableSignalsCount += ds.AvailableSignals
		breakdown.TotalSignalsCount += ds.TotalSignals

		if ds.AvailableSignals > 0 {
			w := signals.DimensionWeight(dim)
			weightedSum += ds.Score * w
			weightSum += w
		}
	}

	if weightSum > 0 {
		breakdown.CompositeScore = round2(weightedSum / weightSum * 10)
	}
	if breakdown.TotalSignalsCount > 0 {
		breakdown.ProfileCompletionPct = round2(
			float64(breakdown.AvailableSignalsCount) / float64(breakdown.TotalSignalsCount) * 100)
	}

	logging.FromContext(ctx).Debug("Lead score calculated",
		"user_id", userID,
		"composite", breakdown.CompositeScore,
		"available_signals", breakdown.AvailableSignalsCount)
	return breakdown, nil
}

// CalculateWithClassification runs a full scoring pass and classifies the
// result into temperature, intent band, and a recommended-actions entry.
func (s *scoringService) CalculateWithClassification(ctx context.Context, userID uuid.UUID) (*model.ScoredLead, error) {
	breakdown, err := s.CalculateAllScores(ctx, userID)
	if err != nil {
		return nil, err
	}
	classification, recommendation := signals.ClassifyAndRecommend(signals.ScoresFromBreakdown(breakdown))
	return &model.ScoredLead{
		Breakdown:      breakdown,
		Classification: classification,
		Recommendation: recommendation,
	}, nil
}

func (s *scoringService) AvailabilitySummary(ctx context.Context, userID uuid.UUID) (*model.AvailabilitySummary, error) {
	return s.extractor.AvailabilitySummary(ctx, userID)
}

// BatchScoringService scores many users with per-user fault isolation.
type BatchScoringService interface {
	CalculateScoresForUsers(ctx context.Context, userIDs []uuid.UUID) map[uuid.UUID]model.BatchScoreEntry
}

type batchScoringService struct {
	scoring ScoringService
}

func NewBatchScoringService(scoring ScoringService) BatchScoringService {
	return &batchScoringService{scoring: scoring}
}

// CalculateScoresForUsers scores each user independently. A failing user is
// recorded as an error entry and never aborts the rest of the batch; users
// are isolated so no entry can observe another user's partial state.
func (b *batchScoringService) CalculateScoresForUsers(ctx context.Context, userIDs []uuid.UUID) map[uuid.UUID]model.BatchScoreEntry {
	logger := logging.FromContext(ctx)
	results := make(map[uuid.UUID]model.BatchScoreEntry, len(userIDs))
	for _, userID := range userIDs {
		lead, err := b.scoreOne(ctx, userID)
		if err != nil {
			logger.Error("Batch scoring failed for user", "user_id", userID, "error", err)
			results[userID] = model.BatchScoreEntry{Error: err.Error()}
			continue
		}
		results[userID] = model.BatchScoreEntry{Result: lead}
	}
	return results
}

func (b *batchScoringService) scoreOne(ctx context.Context, userID uuid.UUID) (lead *model.ScoredLead, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while scoring user %s: %v", userID, r)
		}
	}()
	return b.scoring.CalculateWithClassification(ctx, userID)
}
