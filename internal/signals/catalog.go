// Package signals holds the static scoring-signal catalog and the lead
// classifier. The catalog is immutable, code-defined data: adding a signal
// means adding one entry here plus its extraction/availability functions in
// the service layer, which are completeness-checked against this catalog at
// startup.
package signals

import (
	"homequest/internal/model"
)

// Signal is one catalog entry. Weight is the signal's relative contribution
// within its dimension; weights are not normalized and must be re-normalized
// over the available subset at aggregation time.
type Signal struct {
	ID          string
	Name        string
	Dimension   model.Dimension
	Description string
	Weight      float64
}

// Engagement signal ids.
const (
	SigLoginRecency           = "login_recency"
	SigLoginFrequency         = "login_frequency"
	SigHasEverLoggedIn        = "has_ever_logged_in"
	SigLessonViews            = "lesson_views"
	SigLessonCompletions      = "lesson_completions"
	SigModuleCompletions      = "module_completions"
	SigEventVolume30d         = "event_volume_30d"
	SigActiveDays30d          = "active_days_30d"
	SigQuizParticipation      = "quiz_participation"
	SigMiniGameParticipation  = "minigame_participation"
	SigOnboardingCompleted    = "onboarding_completed"
	SigHasZipcode             = "has_zipcode"
	SigNotificationEngagement = "notification_engagement"
	SigMaterialViews          = "material_views"
	SigStreakEvents           = "streak_events"
	SigEngagementTrend        = "engagement_trend"
)

// Timeline-urgency signal ids.
const (
	SigPurchaseTimeline   = "purchase_timeline"
	SigTimelineShortened  = "timeline_shortened"
	SigTimelineRecency    = "timeline_recency"
	SigGoalEvents         = "goal_events"
	SigVelocityVsTimeline = "velocity_vs_timeline"
	SigUrgentEventRecency = "urgent_event_recency"
)

// Help-seeking signal ids.
const (
	SigExpertContact        = "expert_contact_requested"
	SigRealtorConnected     = "realtor_connected"
	SigLoanOfficerConnected = "loan_officer_connected"
	SigSupportTickets       = "support_tickets"
	SigCalculatorUsage      = "calculator_usage"
	SigCalculatorRecency    = "calculator_recency"
	SigMaterialDownloads    = "material_downloads"
	SigFAQViews             = "faq_views"
	SigHelpEvents           = "help_events"
	SigHelpRecency          = "help_recency"
)

// Learning-velocity signal ids.
const (
	SigLessonsPerWeek       = "lessons_per_week"
	SigCompletionRate       = "completion_rate"
	SigQuizPassRate         = "quiz_pass_rate"
	SigQuizAvgScore         = "quiz_avg_score"
	SigLearningAcceleration = "learning_acceleration"
	SigStudyConsistency     = "study_consistency"
	SigModuleVelocity       = "module_velocity"
	SigFirstAttemptPassRate = "first_attempt_pass_rate"
	SigPerfectScores        = "perfect_scores"
)

// Rewards signal ids.
const (
	SigCoinBalance        = "coin_balance"
	SigLifetimeCoins      = "lifetime_coins"
	SigCoinsSpentRatio    = "coins_spent_ratio"
	SigBadgeCount         = "badge_count"
	SigRareBadgeCount     = "rare_badge_count"
	SigRedemptionCount    = "redemption_count"
	SigRewardEventRecency = "reward_event_recency"
	SigRewardEarningTrend = "reward_earning_trend"
)

// Catalog is the full signal registry: 49 signals across 5 dimensions
// (engagement 16, timeline urgency 6, help-seeking 10, learning velocity 9,
// rewards 8).
var Catalog = []Signal{
	// === Engagement (16) ===
	{ID: SigLoginRecency, Name: "Login recency", Dimension: model.DimensionEngagement,
		Description: "Linear decay from the most recent login over a 30-day horizon", Weight: 0.9},
	{ID: SigLoginFrequency, Name: "Login frequency", Dimension: model.DimensionEngagement,
		Description: "Login events in the last 30 days against a target of 20", Weight: 0.8},
	{ID: SigHasEverLoggedIn, Name: "Has ever logged in", Dimension: model.DimensionEngagement,
		Description: "Whether the user has logged in at least once", Weight: 0.3},
	{ID: SigLessonViews, Name: "Lesson views", Dimension: model.DimensionEngagement,
		Description: "Lessons opened against a target of 30", Weight: 0.7},
	{ID: SigLessonCompletions, Name: "Lesson completions", Dimension: model.DimensionEngagement,
		Description: "Lessons completed against a target of 20", Weight: 1.0},
	{ID: SigModuleCompletions, Name: "Module completions", Dimension: model.DimensionEngagement,
		Description: "Modules completed against a target of 8", Weight: 0.9},
	{ID: SigEventVolume30d, Name: "Event volume", Dimension: model.DimensionEngagement,
		Description: "All behavior events in the last 30 days against a target of 50", Weight: 0.6},
	{ID: SigActiveDays30d, Name: "Active days", Dimension: model.DimensionEngagement,
		Description: "Distinct active days in the last 30 against a target of 20", Weight: 0.7},
	{ID: SigQuizParticipation, Name: "Quiz participation", Dimension: model.DimensionEngagement,
		Description: "Quiz attempts against a target of 10", Weight: 0.6},
	{ID: SigMiniGameParticipation, Name: "Mini-game participation", Dimension: model.DimensionEngagement,
		Description: "Mini-game attempts against a target of 10", Weight: 0.4},
	{ID: SigOnboardingCompleted, Name: "Onboarding completed", Dimension: model.DimensionEngagement,
		Description: "Whether the onboarding flow was finished", Weight: 0.8},
	{ID: SigHasZipcode, Name: "Has zipcode", Dimension: model.DimensionEngagement,
		Description: "Whether a target zipcode is on file", Weight: 0.5},
	{ID: SigNotificationEngagement, Name: "Notification engagement", Dimension: model.DimensionEngagement,
		Description: "Notification clicks against a target of 10", Weight: 0.2},
	{ID: SigMaterialViews, Name: "Material views", Dimension: model.DimensionEngagement,
		Description: "Educational materials viewed against a target of 5", Weight: 0.4},
	{ID: SigStreakEvents, Name: "Streak maintenance", Dimension: model.DimensionEngagement,
		Description: "Streak-maintained events against a target of 4", Weight: 0.5},
	{ID: SigEngagementTrend, Name: "Engagement trend", Dimension: model.DimensionEngagement,
		Description: "Engagement events this week versus the prior week", Weight: 0.7},

	// === Timeline urgency (6) ===
	{ID: SigPurchaseTimeline, Name: "Purchase timeline", Dimension: model.DimensionTimelineUrgency,
		Description: "Stated months-to-purchase mapped through urgency buckets", Weight: 1.0},
	{ID: SigTimelineShortened, Name: "Timeline shortened", Dimension: model.DimensionTimelineUrgency,
		Description: "Whether the user has ever moved their timeline closer", Weight: 0.9},
	{ID: SigTimelineRecency, Name: "Timeline recency", Dimension: model.DimensionTimelineUrgency,
		Description: "Linear decay from the last timeline update over 30 days", Weight: 0.6},
	{ID: SigGoalEvents, Name: "Goal indications", Dimension: model.DimensionTimelineUrgency,
		Description: "Goal-indication events against a target of 5", Weight: 0.7},
	{ID: SigVelocityVsTimeline, Name: "Velocity vs timeline", Dimension: model.DimensionTimelineUrgency,
		Description: "Completed lessons against the pace needed to finish the curriculum before the stated timeline", Weight: 0.8},
	{ID: SigUrgentEventRecency, Name: "Urgency recency", Dimension: model.DimensionTimelineUrgency,
		Description: "Linear decay from the last goal-indication event over 14 days", Weight: 0.5},

	// === Help-seeking (10) ===
	{ID: SigExpertContact, Name: "Expert contact requested", Dimension: model.DimensionHelpSeeking,
		Description: "Whether the user has ever requested expert contact", Weight: 1.0},
	{ID: SigRealtorConnected, Name: "Realtor connected", Dimension: model.DimensionHelpSeeking,
		Description: "Whether a realtor is on file", Weight: 0.8},
	{ID: SigLoanOfficerConnected, Name: "Loan officer connected", Dimension: model.DimensionHelpSeeking,
		Description: "Whether a loan officer is on file", Weight: 0.8},
	{ID: SigSupportTickets, Name: "Support tickets", Dimension: model.DimensionHelpSeeking,
		Description: "Support tickets opened against a target of 3", Weight: 0.6},
	{ID: SigCalculatorUsage, Name: "Calculator usage", Dimension: model.DimensionHelpSeeking,
		Description: "Calculator sessions against a target of 5", Weight: 0.7},
	{ID: SigCalculatorRecency, Name: "Calculator recency", Dimension: model.DimensionHelpSeeking,
		Description: "Linear decay from the last calculator use over 30 days", Weight: 0.5},
	{ID: SigMaterialDownloads, Name: "Material downloads", Dimension: model.DimensionHelpSeeking,
		Description: "Materials downloaded against a target of 5", Weight: 0.6},
	{ID: SigFAQViews, Name: "FAQ views", Dimension: model.DimensionHelpSeeking,
		Description: "FAQ views against a target of 10; view tracking is not implemented yet, so this signal is never available", Weight: 0.3},
	{ID: SigHelpEvents, Name: "Help-seeking events", Dimension: model.DimensionHelpSeeking,
		Description: "Help-seeking events against a target of 8", Weight: 0.7},
	{ID: SigHelpRecency, Name: "Help recency", Dimension: model.DimensionHelpSeeking,
		Description: "Linear decay from the last help-seeking event over 14 days", Weight: 0.6},

	// === Learning velocity (9) ===
	{ID: SigLessonsPerWeek, Name: "Lessons per week", Dimension: model.DimensionLearningVelocity,
		Description: "Lessons completed in the last 7 days against a target of 5", Weight: 0.9},
	{ID: SigCompletionRate, Name: "Completion rate", Dimension: model.DimensionLearningVelocity,
		Description: "Completed lessons over started lessons", Weight: 0.8},
	{ID: SigQuizPassRate, Name: "Quiz pass rate", Dimension: model.DimensionLearningVelocity,
		Description: "Passed quiz attempts over all attempts", Weight: 0.7},
	{ID: SigQuizAvgScore, Name: "Quiz average score", Dimension: model.DimensionLearningVelocity,
		Description: "Mean quiz score, already on the 0-100 scale", Weight: 0.6},
	{ID: SigLearningAcceleration, Name: "Learning acceleration", Dimension: model.DimensionLearningVelocity,
		Description: "Lessons completed this week versus the prior week", Weight: 0.8},
	{ID: SigStudyConsistency, Name: "Study consistency", Dimension: model.DimensionLearningVelocity,
		Description: "Standard deviation of gaps between lesson completions, lower is better", Weight: 0.7},
	{ID: SigModuleVelocity, Name: "Module velocity", Dimension: model.DimensionLearningVelocity,
		Description: "Modules completed in the last 30 days against a target of 2", Weight: 0.6},
	{ID: SigFirstAttemptPassRate, Name: "First-attempt pass rate", Dimension: model.DimensionLearningVelocity,
		Description: "First quiz attempts passed over first attempts taken", Weight: 0.5},
	{ID: SigPerfectScores, Name: "Perfect scores", Dimension: model.DimensionLearningVelocity,
		Description: "Perfect quiz/mini-game results against a target of 3", Weight: 0.4},

	// === Rewards (8) ===
	{ID: SigCoinBalance, Name: "Coin balance", Dimension: model.DimensionRewards,
		Description: "Current coins against a target of 500", Weight: 0.6},
	{ID: SigLifetimeCoins, Name: "Lifetime coins", Dimension: model.DimensionRewards,
		Description: "Lifetime coins earned against a target of 1000", Weight: 0.8},
	{ID: SigCoinsSpentRatio, Name: "Coins spent ratio", Dimension: model.DimensionRewards,
		Description: "Lifetime spent over lifetime earned", Weight: 0.5},
	{ID: SigBadgeCount, Name: "Badge count", Dimension: model.DimensionRewards,
		Description: "Badges earned against a target of 10", Weight: 0.7},
	{ID: SigRareBadgeCount, Name: "Rare badge count", Dimension: model.DimensionRewards,
		Description: "Rare-or-better badges against a target of 2", Weight: 0.6},
	{ID: SigRedemptionCount, Name: "Redemption count", Dimension: model.DimensionRewards,
		Description: "Coupon redemptions against a target of 3", Weight: 0.7},
	{ID: SigRewardEventRecency, Name: "Reward recency", Dimension: model.DimensionRewards,
		Description: "Linear decay from the last reward event over 30 days", Weight: 0.5},
	{ID: SigRewardEarningTrend, Name: "Earning trend", Dimension: model.DimensionRewards,
		Description: "Reward events this week versus the prior week", Weight: 0.6},
}

// dimensionWeights are the fixed composite weights. They are relative, not a
// probability distribution: the composite re-normalizes over whichever
// dimensions had at least one available signal.
var dimensionWeights = map[model.Dimension]float64{
	model.DimensionEngagement:       0.35,
	model.DimensionTimelineUrgency:  0.15,
	model.DimensionHelpSeeking:      0.15,
	model.DimensionLearningVelocity: 0.25,
	model.DimensionRewards:          0.25,
}

var (
	byID        map[string]Signal
	byDimension map[model.Dimension][]Signal
)

func init() {
	byID = make(map[string]Signal, len(Catalog))
	byDimension = make(map[model.Dimension][]Signal)
	for _, s := range Catalog {
		byID[s.ID] = s
		byDimension[s.Dimension] = append(byDimension[s.Dimension], s)
	}
}

// All returns every catalog signal in registration order.
func All() []Signal {
	return Catalog
}

// ByDimension returns the signals of one dimension in registration order.
func ByDimension(d model.Dimension) []Signal {
	return byDimension[d]
}

// ByID looks up one signal.
func ByID(id string) (Signal, bool) {
	s, ok := byID[id]
	return s, ok
}

// Count returns the total number of registered signals.
func Count() int {
	return len(Catalog)
}

// DimensionWeight returns the fixed composite weight of d.
func DimensionWeight(d model.Dimension) float64 {
	return dimensionWeights[d]
}
