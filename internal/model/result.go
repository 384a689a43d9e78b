package model

import (
	"time"

	"github.com/google/uuid"
)

// TrackEventInput is the request for TrackEvent. Metadata is stored verbatim
// in the event payload.
type TrackEventInput struct {
	UserID    uuid.UUID `validate:"required"`
	EventType EventType `validate:"required"`
	// Category defaults to the event type's category when empty.
	Category     EventCategory  `validate:"omitempty,oneof=learning engagement help_seeking goal_indication rewards"`
	Metadata     map[string]any `validate:"-"`
	CustomWeight *float64       `validate:"omitempty,gte=0"`
	// IdempotencyKey, when set, guarantees at most one stored event per
	// (user, event_type, key).
	IdempotencyKey *string `validate:"omitempty,max=255"`
	// DedupWindowSeconds overrides the default trailing dedup window.
	// Nil means the configured default; zero disables window dedup.
	DedupWindowSeconds *int `validate:"omitempty,gte=0"`
}

// SignalValue is one extracted signal contribution within a dimension.
type SignalValue struct {
	SignalID string  `json:"signal_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
}

// DimensionScore is the availability-aware score of one dimension, computed
// fresh on every scoring pass.
type DimensionScore struct {
	Dimension        Dimension     `json:"dimension"`
	Score            float64       `json:"score"`
	AvailableSignals int           `json:"available_signals"`
	TotalSignals     int           `json:"total_signals"`
	CompletionPct    float64       `json:"completion_pct"`
	SignalValues     []SignalValue `json:"signal_values"`
}

// ScoreBreakdown is the full output of one scoring pass for one user.
type ScoreBreakdown struct {
	UserID         uuid.UUID                     `json:"user_id"`
	CompositeScore float64                       `json:"composite_score"`
	Dimensions     map[Dimension]*DimensionScore `json:"dimensions"`

	AvailableSignalsCount int     `json:"available_signals_count"`
	TotalSignalsCount     int     `json:"total_signals_count"`
	ProfileCompletionPct  float64 `json:"profile_completion_pct"`

	CalculatedAt time.Time `json:"calculated_at"`
}

// DimensionScoreValue returns the score of d, or 0 if it was not computed.
func (b *ScoreBreakdown) DimensionScoreValue(d Dimension) float64 {
	if ds, ok := b.Dimensions[d]; ok {
		return ds.Score
	}
	return 0
}

// Classification is the business labeling of one score breakdown.
type Classification struct {
	Temperature LeadTemperature `json:"temperature"`
	IntentBand  IntentBand      `json:"intent_band"`
	Labels      []string        `json:"labels"`
	Reasoning   []string        `json:"reasoning"`
}

// Recommendation is the presentation-level outreach guidance for a
// (temperature, intent) pair.
type Recommendation struct {
	Priority        string   `json:"priority"`
	Channels        []string `json:"channels"`
	NurtureStrategy string   `json:"nurture_strategy"`
	NextSteps       []string `json:"next_steps"`
}

// ScoredLead bundles scores, classification, and recommendation for callers
// that need the whole picture in one round trip.
type ScoredLead struct {
	Breakdown      *ScoreBreakdown `json:"breakdown"`
	Classification *Classification `json:"classification"`
	Recommendation *Recommendation `json:"recommendation"`
}

// AvailabilitySummary is the per-dimension and overall availability report
// surfaced as "profile completion".
type AvailabilitySummary struct {
	Dimensions map[Dimension]*DimensionAvailability `json:"dimensions"`
	Available  int                                  `json:"available"`
	Total      int                                  `json:"total"`
	Pct        float64                              `json:"pct"`
}

// DimensionAvailability is the availability count for one dimension.
type DimensionAvailability struct {
	Available int     `json:"available"`
	Total     int     `json:"total"`
	Pct       float64 `json:"pct"`
}

// BatchScoreEntry is one user's outcome within a batch scoring run. Exactly
// one of Result and Error is set.
type BatchScoreEntry struct {
	Result *ScoredLead `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Scheduler operation statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RecalcSummary reports one batch recalculation run.
type RecalcSummary struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// SnapshotSummary reports one daily-snapshot run.
type SnapshotSummary struct {
	Status           string        `json:"status"`
	Message          string        `json:"message,omitempty"`
	SnapshotsCreated int           `json:"snapshots_created"`
	AlreadyExisting  int           `json:"already_existing"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration"`
}

// CleanupSummary reports one event-retention cleanup run.
type CleanupSummary struct {
	Status        string        `json:"status"`
	Message       string        `json:"message,omitempty"`
	DeletedEvents int64         `json:"deleted_events"`
	Cutoff        time.Time     `json:"cutoff"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
}
