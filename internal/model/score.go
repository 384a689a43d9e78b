package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dimension is one of the five scoring categories.
type Dimension string

const (
	DimensionEngagement       Dimension = "engagement"
	DimensionTimelineUrgency  Dimension = "timeline_urgency"
	DimensionHelpSeeking      Dimension = "help_seeking"
	DimensionLearningVelocity Dimension = "learning_velocity"
	DimensionRewards          Dimension = "rewards"
)

// AllDimensions lists the dimensions in their canonical order.
var AllDimensions = []Dimension{
	DimensionEngagement,
	DimensionTimelineUrgency,
	DimensionHelpSeeking,
	DimensionLearningVelocity,
	DimensionRewards,
}

// LeadTemperature is the coarse urgency classification derived from the
// composite score alone.
type LeadTemperature string

const (
	TemperatureHot     LeadTemperature = "hot"
	TemperatureWarm    LeadTemperature = "warm"
	TemperatureCold    LeadTemperature = "cold"
	TemperatureDormant LeadTemperature = "dormant"
)

// IntentBand is the finer readiness-to-act classification from the rule
// cascade over multiple dimension scores.
type IntentBand string

const (
	IntentVeryHigh IntentBand = "very_high"
	IntentHigh     IntentBand = "high"
	IntentMedium   IntentBand = "medium"
	IntentLow      IntentBand = "low"
)

// UserLeadScore is the persisted scoring state, one row per user. Every
// recalculation overwrites the whole row; it is never updated incrementally.
type UserLeadScore struct {
	ID     uint      `gorm:"primaryKey" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	EngagementScore       float64 `gorm:"not null" json:"engagement_score"`
	TimelineUrgencyScore  float64 `gorm:"not null" json:"timeline_urgency_score"`
	HelpSeekingScore      float64 `gorm:"not null" json:"help_seeking_score"`
	LearningVelocityScore float64 `gorm:"not null" json:"learning_velocity_score"`
	RewardsScore          float64 `gorm:"not null" json:"rewards_score"`

	CompositeScore float64 `gorm:"not null;index" json:"composite_score"`

	LeadTemperature LeadTemperature `gorm:"type:varchar(16);not null;index" json:"lead_temperature"`
	IntentBand      IntentBand      `gorm:"type:varchar(16);not null;index" json:"intent_band"`

	ProfileCompletionPct  float64 `gorm:"not null" json:"profile_completion_pct"`
	AvailableSignalsCount int     `gorm:"not null" json:"available_signals_count"`
	TotalSignalsCount     int     `gorm:"not null" json:"total_signals_count"`

	LastCalculatedAt time.Time  `gorm:"not null" json:"last_calculated_at"`
	LastActivityAt   *time.Time `json:"last_activity_at,omitempty"`
}

func (UserLeadScore) TableName() string {
	return "user_lead_scores"
}

// DimensionScore returns the persisted score for the given dimension.
func (s *UserLeadScore) DimensionScore(d Dimension) float64 {
	switch d {
	case DimensionEngagement:
		return s.EngagementScore
	case DimensionTimelineUrgency:
		return s.TimelineUrgencyScore
	case DimensionHelpSeeking:
		return s.HelpSeekingScore
	case DimensionLearningVelocity:
		return s.LearningVelocityScore
	case DimensionRewards:
		return s.RewardsScore
	default:
		return 0
	}
}

// LeadScoreHistory is an append-only daily snapshot of a user's score, at
// most one row per user per calendar day.
type LeadScoreHistory struct {
	ID              uint              `gorm:"primaryKey" json:"-"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_user_snapshot_date,priority:1" json:"user_id"`
	SnapshotDate    time.Time         `gorm:"type:date;not null;uniqueIndex:idx_user_snapshot_date,priority:2" json:"snapshot_date"`
	CompositeScore  float64           `gorm:"not null" json:"composite_score"`
	LeadTemperature LeadTemperature   `gorm:"type:varchar(16);not null" json:"lead_temperature"`
	IntentBand      IntentBand        `gorm:"type:varchar(16);not null" json:"intent_band"`
	Metrics         datatypes.JSONMap `gorm:"type:json" json:"metrics"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (LeadScoreHistory) TableName() string {
	return "lead_score_history"
}
