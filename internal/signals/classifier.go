package signals

import (
	"fmt"

	"homequest/internal/model"
)

// Scores is the classifier input: the composite on its 0-1000 scale and the
// five dimension scores on 0-100.
type Scores struct {
	Composite        float64
	Engagement       float64
	TimelineUrgency  float64
	HelpSeeking      float64
	LearningVelocity float64
	Rewards          float64
}

// ScoresFromBreakdown adapts a scoring-pass result for classification.
func ScoresFromBreakdown(b *model.ScoreBreakdown) Scores {
	return Scores{
		Composite:        b.CompositeScore,
		Engagement:       b.DimensionScoreValue(model.DimensionEngagement),
		TimelineUrgency:  b.DimensionScoreValue(model.DimensionTimelineUrgency),
		HelpSeeking:      b.DimensionScoreValue(model.DimensionHelpSeeking),
		LearningVelocity: b.DimensionScoreValue(model.DimensionLearningVelocity),
		Rewards:          b.DimensionScoreValue(model.DimensionRewards),
	}
}

// Temperature maps the composite score onto the closed-lower-bound ladder.
func Temperature(composite float64) model.LeadTemperature {
	switch {
	case composite >= 800:
		return model.TemperatureHot
	case composite >= 500:
		return model.TemperatureWarm
	case composite >= 200:
		return model.TemperatureCold
	default:
		return model.TemperatureDormant
	}
}

// intentRule is one step of the ordered cascade. The first matching rule
// wins, so rule order is part of the contract: readiness to transact is
// driven by urgency and help-seeking first, with the composite score and raw
// engagement only as secondary signals. A highly engaged user with no
// urgency or help-seeking tops out at medium intent.
type intentRule struct {
	band   model.IntentBand
	reason string
	match  func(Scores) bool
}

var intentCascade = []intentRule{
	{model.IntentVeryHigh, "high urgency combined with active help-seeking",
		func(s Scores) bool { return s.TimelineUrgency >= 80 && s.HelpSeeking >= 70 }},
	{model.IntentVeryHigh, "very strong composite score with high urgency",
		func(s Scores) bool { return s.Composite >= 750 && s.TimelineUrgency >= 70 }},
	{model.IntentVeryHigh, "exceptional help-seeking activity",
		func(s Scores) bool { return s.HelpSeeking >= 85 }},
	{model.IntentHigh, "elevated urgency with real help-seeking",
		func(s Scores) bool { return s.TimelineUrgency >= 65 && s.HelpSeeking >= 50 }},
	{model.IntentHigh, "strong composite score",
		func(s Scores) bool { return s.Composite >= 650 }},
	{model.IntentHigh, "strong help-seeking activity",
		func(s Scores) bool { return s.HelpSeeking >= 70 }},
	{model.IntentMedium, "moderate urgency with steady engagement",
		func(s Scores) bool { return s.TimelineUrgency >= 50 && s.Engagement >= 40 }},
	{model.IntentMedium, "good engagement and learning pace",
		func(s Scores) bool { return s.Engagement >= 60 && s.LearningVelocity >= 50 }},
	{model.IntentMedium, "moderate composite score",
		func(s Scores) bool { return s.Composite >= 400 }},
	{model.IntentMedium, "some help-seeking activity",
		func(s Scores) bool { return s.HelpSeeking >= 40 }},
}

// Intent evaluates the cascade top-down and returns the first matching band
// with its reason. Falls through to low intent.
func Intent(s Scores) (model.IntentBand, string) {
	for _, rule := range intentCascade {
		if rule.match(s) {
			return rule.band, rule.reason
		}
	}
	return model.IntentLow, "no urgency, help-seeking, or composite threshold met"
}

// Classify produces the full business labeling for one score set.
func Classify(s Scores) *model.Classification {
	temp := Temperature(s.Composite)
	band, reason := Intent(s)

	return &model.Classification{
		Temperature: temp,
		IntentBand:  band,
		Labels: []string{
			fmt.Sprintf("%s lead", temp),
			fmt.Sprintf("%s intent", band),
		},
		Reasoning: []string{
			fmt.Sprintf("composite score %.2f places the lead in the %s band", s.Composite, temp),
			fmt.Sprintf("intent is %s: %s", band, reason),
		},
	}
}

// ClassifyAndRecommend bundles classification with the outreach guidance for
// the resulting (temperature, intent) pair.
func ClassifyAndRecommend(s Scores) (*model.Classification, *model.Recommendation) {
	c := Classify(s)
	return c, Recommend(c.Temperature, c.IntentBand)
}
