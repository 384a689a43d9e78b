package signals

import (
	"testing"

	"homequest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Counts(t *testing.T) {
	assert.Equal(t, 49, Count())
	assert.Len(t, All(), Count())

	wantByDimension := map[model.Dimension]int{
		model.DimensionEngagement:       16,
		model.DimensionTimelineUrgency:  6,
		model.DimensionHelpSeeking:      10,
		model.DimensionLearningVelocity: 9,
		model.DimensionRewards:          8,
	}
	total := 0
	for dim, want := range wantByDimension {
		assert.Len(t, ByDimension(dim), want, "dimension %s", dim)
		total += want
	}
	assert.Equal(t, Count(), total)
}

func TestCatalog_Integrity(t *testing.T) {
	seen := make(map[string]bool, Count())
	for _, sig := range All() {
		assert.False(t, seen[sig.ID], "duplicate signal id %q", sig.ID)
		seen[sig.ID] = true

		assert.NotEmpty(t, sig.Name, "signal %q has no name", sig.ID)
		assert.Greater(t, sig.Weight, 0.0, "signal %q has non-positive weight", sig.ID)
		assert.Contains(t, model.AllDimensions, sig.Dimension, "signal %q has unknown dimension", sig.ID)
	}
}

func TestCatalog_ByID(t *testing.T) {
	sig, ok := ByID(SigPurchaseTimeline)
	require.True(t, ok)
	assert.Equal(t, model.DimensionTimelineUrgency, sig.Dimension)

	_, ok = ByID("no_such_signal")
	assert.False(t, ok)
}

func TestCatalog_DimensionWeights(t *testing.T) {
	// Relative weights, deliberately not summing to 1: aggregation
	// re-normalizes over the dimensions that produced a score.
	assert.Equal(t, 0.35, DimensionWeight(model.DimensionEngagement))
	assert.Equal(t, 0.15, DimensionWeight(model.DimensionTimelineUrgency))
	assert.Equal(t, 0.15, DimensionWeight(model.DimensionHelpSeeking))
	assert.Equal(t, 0.25, DimensionWeight(model.DimensionLearningVelocity))
	assert.Equal(t, 0.25, DimensionWeight(model.DimensionRewards))

	for _, dim := range model.AllDimensions {
		assert.Greater(t, DimensionWeight(dim), 0.0)
	}
}
