package signals

import (
	"testing"

	"homequest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperature_Thresholds(t *testing.T) {
	tests := []struct {
		composite float64
		want      model.LeadTemperature
	}{
		{1000, model.TemperatureHot},
		{800, model.TemperatureHot},
		{799.99, model.TemperatureWarm},
		{500, model.TemperatureWarm},
		{499.99, model.TemperatureCold},
		{200, model.TemperatureCold},
		{199.99, model.TemperatureDormant},
		{0, model.TemperatureDormant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Temperature(tt.composite), "composite=%v", tt.composite)
	}
}

func TestIntent_Cascade(t *testing.T) {
	tests := []struct {
		name   string
		scores Scores
		want   model.IntentBand
	}{
		{
			// Rule order matters here: the composite is far too low for any
			// composite rule, but urgency+help-seeking outranks them all.
			name:   "urgency with help-seeking wins over low composite",
			scores: Scores{Composite: 100, TimelineUrgency: 80, HelpSeeking: 70},
			want:   model.IntentVeryHigh,
		},
		{
			name:   "urgency just below the first rule falls through",
			scores: Scores{Composite: 100, TimelineUrgency: 79.99, HelpSeeking: 70},
			want:   model.IntentHigh, // urgency>=65 && help>=50
		},
		{
			name:   "very strong composite with urgency",
			scores: Scores{Composite: 750, TimelineUrgency: 70},
			want:   model.IntentVeryHigh,
		},
		{
			name:   "exceptional help-seeking alone",
			scores: Scores{HelpSeeking: 85},
			want:   model.IntentVeryHigh,
		},
		{
			name:   "strong composite alone",
			scores: Scores{Composite: 650},
			want:   model.IntentHigh,
		},
		{
			name:   "strong help-seeking alone",
			scores: Scores{HelpSeeking: 70},
			want:   model.IntentHigh,
		},
		{
			name:   "urgency with engagement",
			scores: Scores{TimelineUrgency: 50, Engagement: 40},
			want:   model.IntentMedium,
		},
		{
			// Pure engagement never reaches high intent, no matter how
			// strong, when urgency and help-seeking are absent.
			name:   "highly engaged fast learner without urgency tops out at medium",
			scores: Scores{Composite: 600, Engagement: 95, LearningVelocity: 90},
			want:   model.IntentMedium,
		},
		{
			name:   "moderate composite alone",
			scores: Scores{Composite: 400},
			want:   model.IntentMedium,
		},
		{
			name:   "some help-seeking alone",
			scores: Scores{HelpSeeking: 40},
			want:   model.IntentMedium,
		},
		{
			name:   "nothing met",
			scores: Scores{Composite: 399.99, HelpSeeking: 39.99},
			want:   model.IntentLow,
		},
		{
			name:   "zero scores",
			scores: Scores{},
			want:   model.IntentLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, reason := Intent(tt.scores)
			assert.Equal(t, tt.want, band)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestClassify(t *testing.T) {
	c := Classify(Scores{Composite: 820, TimelineUrgency: 85, HelpSeeking: 75})
	assert.Equal(t, model.TemperatureHot, c.Temperature)
	assert.Equal(t, model.IntentVeryHigh, c.IntentBand)
	assert.Len(t, c.Labels, 2)
	assert.Len(t, c.Reasoning, 2)
}

func TestScoresFromBreakdown(t *testing.T) {
	b := &model.ScoreBreakdown{
		CompositeScore: 640,
		Dimensions: map[model.Dimension]*model.DimensionScore{
			model.DimensionEngagement:  {Dimension: model.DimensionEngagement, Score: 72},
			model.DimensionHelpSeeking: {Dimension: model.DimensionHelpSeeking, Score: 55},
		},
	}
	s := ScoresFromBreakdown(b)
	assert.Equal(t, 640.0, s.Composite)
	assert.Equal(t, 72.0, s.Engagement)
	assert.Equal(t, 55.0, s.HelpSeeking)
	// Dimensions missing from the breakdown read as zero.
	assert.Equal(t, 0.0, s.Rewards)
}

func TestRecommend_CoversAllPairs(t *testing.T) {
	temperatures := []model.LeadTemperature{
		model.TemperatureHot, model.TemperatureWarm, model.TemperatureCold, model.TemperatureDormant,
	}
	bands := []model.IntentBand{
		model.IntentVeryHigh, model.IntentHigh, model.IntentMedium, model.IntentLow,
	}
	for _, temp := range temperatures {
		for _, band := range bands {
			rec := Recommend(temp, band)
			require.NotNil(t, rec, "%s/%s", temp, band)
			assert.NotEmpty(t, rec.Priority, "%s/%s priority", temp, band)
			assert.NotEmpty(t, rec.Channels, "%s/%s channels", temp, band)
			assert.NotEmpty(t, rec.NurtureStrategy, "%s/%s strategy", temp, band)
			assert.NotEmpty(t, rec.NextSteps, "%s/%s next steps", temp, band)
		}
	}
}

func TestRecommend_ReturnsCopy(t *testing.T) {
	a := Recommend(model.TemperatureHot, model.IntentVeryHigh)
	a.Priority = "tampered"
	b := Recommend(model.TemperatureHot, model.IntentVeryHigh)
	assert.NotEqual(t, "tampered", b.Priority)
}
