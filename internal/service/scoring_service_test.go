package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"homequest/internal/model"
	"homequest/internal/signals"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor serves fixed signal values: a signal is available iff it has
// an entry, and an entry may hold nil to model "available but not
// computable".
type fakeExtractor struct {
	values map[string]*float64
	errs   map[string]error
}

func (f *fakeExtractor) Available(_ context.Context, _ uuid.UUID, signalID string) (bool, error) {
	if err, ok := f.errs[signalID]; ok {
		return false, err
	}
	_, ok := f.values[signalID]
	return ok, nil
}

func (f *fakeExtractor) Extract(_ context.Context, _ uuid.UUID, signalID string) (*float64, error) {
	if err, ok := f.errs[signalID]; ok {
		return nil, err
	}
	return f.values[signalID], nil
}

func (f *fakeExtractor) AvailabilitySummary(context.Context, uuid.UUID) (*model.AvailabilitySummary, error) {
	return &model.AvailabilitySummary{}, nil
}

func Test_scoringService_CalculateDimensionScore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("weighted average over produced values only", func(t *testing.T) {
		// Two engagement signals out of sixteen: catalog weights 1.0 for
		// lesson completions and 0.9 for login recency.
		svc := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigLessonCompletions: value(100),
			signals.SigLoginRecency:      value(0),
		}})
		ds, err := svc.CalculateDimensionScore(ctx, userID, model.DimensionEngagement)
		require.NoError(t, err)
		assert.InDelta(t, 100*1.0/(1.0+0.9), ds.Score, 0.01)
		assert.Equal(t, 2, ds.AvailableSignals)
		assert.Equal(t, 16, ds.TotalSignals)
		assert.Len(t, ds.SignalValues, 2)
	})

	t.Run("missing signals are skipped, not scored as zero", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigLessonCompletions: value(90),
		}})
		ds, err := svc.CalculateDimensionScore(ctx, userID, model.DimensionEngagement)
		require.NoError(t, err)
		assert.Equal(t, 90.0, ds.Score, "one signal at 90 scores 90, not 90/16")
	})

	t.Run("missing signal count does not change the score", func(t *testing.T) {
		// Same produced values, different amounts of missing data: the
		// extra nil entry raises the availability count but the score
		// must stay the weighted average of what was produced.
		sparse := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigLessonCompletions: value(70),
			signals.SigLoginRecency:      value(70),
		}})
		dense := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigLessonCompletions: value(70),
			signals.SigLoginRecency:      value(70),
			signals.SigLessonViews:       nil,
		}})
		dsSparse, err := sparse.CalculateDimensionScore(ctx, userID, model.DimensionEngagement)
		require.NoError(t, err)
		dsDense, err := dense.CalculateDimensionScore(ctx, userID, model.DimensionEngagement)
		require.NoError(t, err)
		assert.Equal(t, dsSparse.Score, dsDense.Score)
		assert.Equal(t, 70.0, dsSparse.Score)
		assert.Equal(t, 2, dsSparse.AvailableSignals)
		assert.Equal(t, 3, dsDense.AvailableSignals)
	})

	t.Run("available but uncomputable signal produces no value", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigStudyConsistency: nil,
		}})
		ds, err := svc.CalculateDimensionScore(ctx, userID, model.DimensionLearningVelocity)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ds.Score)
		assert.Equal(t, 1, ds.AvailableSignals)
		assert.Empty(t, ds.SignalValues)
	})

	t.Run("failing extractor degrades to unavailable", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{
			values: map[string]*float64{signals.SigLessonCompletions: value(80)},
			errs:   map[string]error{signals.SigLoginRecency: errors.New("connection reset")},
		})
		ds, err := svc.CalculateDimensionScore(ctx, userID, model.DimensionEngagement)
		require.NoError(t, err, "a signal failure must not fail the dimension")
		assert.Equal(t, 80.0, ds.Score)
		assert.Equal(t, 1, ds.AvailableSignals)
	})

	t.Run("no available signals scores zero", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{})
		ds, err := svc.CalculateDimensionScore(ctx, userID, model.DimensionRewards)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ds.Score)
		assert.Equal(t, 0, ds.AvailableSignals)
	})
}

func Test_scoringService_CalculateAllScores(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("composite renormalizes over dimensions with data", func(t *testing.T) {
		// Engagement scores 80 and learning velocity 60; the other three
		// dimensions have no available signal and must not drag the
		// composite down: (80*.35 + 60*.25)/(.35+.25) * 10.
		svc := NewScoringService(&fakeExtractor{values: map[string]*float64{
			signals.SigLessonCompletions: value(80),
			signals.SigLessonsPerWeek:    value(60),
		}})
		b, err := svc.CalculateAllScores(ctx, userID)
		require.NoError(t, err)
		assert.InDelta(t, 716.67, b.CompositeScore, 0.01)
		assert.Equal(t, 80.0, b.DimensionScoreValue(model.DimensionEngagement))
		assert.Equal(t, 60.0, b.DimensionScoreValue(model.DimensionLearningVelocity))
		assert.Equal(t, 2, b.AvailableSignalsCount)
		assert.Equal(t, signals.Count(), b.TotalSignalsCount)
		assert.Len(t, b.Dimensions, len(model.AllDimensions))
	})

	t.Run("zero-data user scores zero without error", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{})
		b, err := svc.CalculateAllScores(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, b.CompositeScore)
		assert.Equal(t, 0, b.AvailableSignalsCount)
		assert.Equal(t, 0.0, b.ProfileCompletionPct)
	})

	t.Run("all dimensions at maximum reach the scale ceiling", func(t *testing.T) {
		values := make(map[string]*float64, signals.Count())
		for _, sig := range signals.All() {
			values[sig.ID] = value(100)
		}
		svc := NewScoringService(&fakeExtractor{values: values})
		b, err := svc.CalculateAllScores(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, b.CompositeScore)
		assert.Equal(t, 100.0, b.ProfileCompletionPct)
	})
}

func Test_scoringService_CalculateWithClassification(t *testing.T) {
	ctx := context.Background()

	t.Run("zero-data user classifies dormant and low", func(t *testing.T) {
		svc := NewScoringService(&fakeExtractor{})
		lead, err := svc.CalculateWithClassification(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, model.TemperatureDormant, lead.Classification.Temperature)
		assert.Equal(t, model.IntentLow, lead.Classification.IntentBand)
		require.NotNil(t, lead.Recommendation)
		assert.NotEmpty(t, lead.Recommendation.Priority)
	})

	t.Run("maxed user classifies hot and very high", func(t *testing.T) {
		values := make(map[string]*float64, signals.Count())
		for _, sig := range signals.All() {
			values[sig.ID] = value(100)
		}
		svc := NewScoringService(&fakeExtractor{values: values})
		lead, err := svc.CalculateWithClassification(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, model.TemperatureHot, lead.Classification.Temperature)
		assert.Equal(t, model.IntentVeryHigh, lead.Classification.IntentBand)
	})
}

// flakyScoring fails for one specific user and succeeds for the rest.
type flakyScoring struct {
	ScoringService
	failFor uuid.UUID
}

func (f *flakyScoring) CalculateWithClassification(ctx context.Context, userID uuid.UUID) (*model.ScoredLead, error) {
	if userID == f.failFor {
		return nil, fmt.Errorf("rows for user %s are corrupted", userID)
	}
	return f.ScoringService.CalculateWithClassification(ctx, userID)
}

func Test_batchScoringService_FaultIsolation(t *testing.T) {
	ctx := context.Background()
	good1, bad, good2 := uuid.New(), uuid.New(), uuid.New()

	inner := NewScoringService(&fakeExtractor{values: map[string]*float64{
		signals.SigLessonCompletions: value(70),
	}})
	batch := NewBatchScoringService(&flakyScoring{ScoringService: inner, failFor: bad})

	results := batch.CalculateScoresForUsers(ctx, []uuid.UUID{good1, bad, good2})
	require.Len(t, results, 3)

	assert.NotNil(t, results[good1].Result)
	assert.Empty(t, results[good1].Error)
	assert.NotNil(t, results[good2].Result)

	assert.Nil(t, results[bad].Result)
	assert.Contains(t, results[bad].Error, "corrupted")
}

// panickyScoring exercises the batch runner's panic recovery.
type panickyScoring struct {
	ScoringService
}

func (p *panickyScoring) CalculateWithClassification(context.Context, uuid.UUID) (*model.ScoredLead, error) {
	panic("nil dereference in extraction")
}

func Test_batchScoringService_RecoversPanics(t *testing.T) {
	batch := NewBatchScoringService(&panickyScoring{})
	userID := uuid.New()

	results := batch.CalculateScoresForUsers(context.Background(), []uuid.UUID{userID})
	require.Len(t, results, 1)
	assert.Contains(t, results[userID].Error, "panic")
}
