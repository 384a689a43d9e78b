package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventCategory groups behavior events for extraction queries.
type EventCategory string

const (
	CategoryLearning       EventCategory = "learning"
	CategoryEngagement     EventCategory = "engagement"
	CategoryHelpSeeking    EventCategory = "help_seeking"
	CategoryGoalIndication EventCategory = "goal_indication"
	CategoryRewards        EventCategory = "rewards"
)

// EventType is the closed set of trackable behavior events. Constructing a
// BehaviorEvent with a type outside this set fails at tracking time, not at
// some later map lookup.
type EventType string

const (
	// Learning
	EventLessonStarted        EventType = "lesson_started"
	EventLessonMilestone      EventType = "lesson_milestone"
	EventLessonCompleted      EventType = "lesson_completed"
	EventModuleStarted        EventType = "module_started"
	EventModuleCompleted      EventType = "module_completed"
	EventQuizPassed           EventType = "quiz_passed"
	EventQuizFailed           EventType = "quiz_failed"
	EventQuizHighScore        EventType = "quiz_high_score"
	EventQuizPerfectScore     EventType = "quiz_perfect_score"
	EventMiniGameCompleted    EventType = "minigame_completed"
	EventMiniGameFailed       EventType = "minigame_failed"
	EventMiniGamePerfectScore EventType = "minigame_perfect_score"
	EventMaterialViewed       EventType = "material_viewed"

	// Engagement
	EventLogin               EventType = "login"
	EventSessionStarted      EventType = "session_started"
	EventNotificationRead    EventType = "notification_read"
	EventNotificationClicked EventType = "notification_clicked"
	EventProfileUpdated      EventType = "profile_updated"
	EventStreakMaintained    EventType = "streak_maintained"

	// Help-seeking
	EventExpertContactRequested      EventType = "expert_contact_requested"
	EventRealtorContactRequested     EventType = "realtor_contact_requested"
	EventLoanOfficerContactRequested EventType = "loan_officer_contact_requested"
	EventSupportTicketOpened         EventType = "support_ticket_opened"
	EventCalculatorUsed              EventType = "calculator_used"
	EventMaterialDownloaded          EventType = "material_downloaded"
	EventFAQViewed                   EventType = "faq_viewed"

	// Goal indication
	EventTimelineUpdated     EventType = "timeline_updated"
	EventTimelineShortened   EventType = "timeline_shortened"
	EventZipcodeProvided     EventType = "zipcode_provided"
	EventBudgetSet           EventType = "budget_set"
	EventOnboardingCompleted EventType = "onboarding_completed"

	// Rewards
	EventCoinsEarned     EventType = "coins_earned"
	EventCoinsSpent      EventType = "coins_spent"
	EventBadgeEarned     EventType = "badge_earned"
	EventRareBadgeEarned EventType = "rare_badge_earned"
	EventCouponRedeemed  EventType = "coupon_redeemed"
)

// defaultEventWeights carries the static business-importance weight per event
// type, 0.1 to 10.0. Requesting expert contact is the single strongest signal
// a user can send; passively reading a notification is the weakest.
var defaultEventWeights = map[EventType]float64{
	EventLessonStarted:        1.0,
	EventLessonMilestone:      1.5,
	EventLessonCompleted:      3.0,
	EventModuleStarted:        1.5,
	EventModuleCompleted:      5.0,
	EventQuizPassed:           3.0,
	EventQuizFailed:           1.0,
	EventQuizHighScore:        4.0,
	EventQuizPerfectScore:     5.0,
	EventMiniGameCompleted:    2.0,
	EventMiniGameFailed:       0.5,
	EventMiniGamePerfectScore: 3.0,
	EventMaterialViewed:       1.0,

	EventLogin:               0.5,
	EventSessionStarted:      0.3,
	EventNotificationRead:    0.1,
	EventNotificationClicked: 0.5,
	EventProfileUpdated:      1.0,
	EventStreakMaintained:    1.5,

	EventExpertContactRequested:      10.0,
	EventRealtorContactRequested:     8.0,
	EventLoanOfficerContactRequested: 8.0,
	EventSupportTicketOpened:         4.0,
	EventCalculatorUsed:              3.0,
	EventMaterialDownloaded:          2.0,
	EventFAQViewed:                   1.5,

	EventTimelineUpdated:     4.0,
	EventTimelineShortened:   7.0,
	EventZipcodeProvided:     3.0,
	EventBudgetSet:           4.0,
	EventOnboardingCompleted: 3.0,

	EventCoinsEarned:     0.5,
	EventCoinsSpent:      1.0,
	EventBadgeEarned:     2.0,
	EventRareBadgeEarned: 4.0,
	EventCouponRedeemed:  5.0,
}

// eventCategories maps every known event type to its category.
var eventCategories = map[EventType]EventCategory{
	EventLessonStarted:        CategoryLearning,
	EventLessonMilestone:      CategoryLearning,
	EventLessonCompleted:      CategoryLearning,
	EventModuleStarted:        CategoryLearning,
	EventModuleCompleted:      CategoryLearning,
	EventQuizPassed:           CategoryLearning,
	EventQuizFailed:           CategoryLearning,
	EventQuizHighScore:        CategoryLearning,
	EventQuizPerfectScore:     CategoryLearning,
	EventMiniGameCompleted:    CategoryLearning,
	EventMiniGameFailed:       CategoryLearning,
	EventMiniGamePerfectScore: CategoryLearning,
	EventMaterialViewed:       CategoryLearning,

	EventLogin:               CategoryEngagement,
	EventSessionStarted:      CategoryEngagement,
	EventNotificationRead:    CategoryEngagement,
	EventNotificationClicked: CategoryEngagement,
	EventProfileUpdated:      CategoryEngagement,
	EventStreakMaintained:    CategoryEngagement,

	EventExpertContactRequested:      CategoryHelpSeeking,
	EventRealtorContactRequested:     CategoryHelpSeeking,
	EventLoanOfficerContactRequested: CategoryHelpSeeking,
	EventSupportTicketOpened:         CategoryHelpSeeking,
	EventCalculatorUsed:              CategoryHelpSeeking,
	EventMaterialDownloaded:          CategoryHelpSeeking,
	EventFAQViewed:                   CategoryHelpSeeking,

	EventTimelineUpdated:     CategoryGoalIndication,
	EventTimelineShortened:   CategoryGoalIndication,
	EventZipcodeProvided:     CategoryGoalIndication,
	EventBudgetSet:           CategoryGoalIndication,
	EventOnboardingCompleted: CategoryGoalIndication,

	EventCoinsEarned:     CategoryRewards,
	EventCoinsSpent:      CategoryRewards,
	EventBadgeEarned:     CategoryRewards,
	EventRareBadgeEarned: CategoryRewards,
	EventCouponRedeemed:  CategoryRewards,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	_, ok := defaultEventWeights[t]
	return ok
}

// DefaultWeight returns the static weight for t, or 1.0 for unknown types.
func (t EventType) DefaultWeight() float64 {
	if w, ok := defaultEventWeights[t]; ok {
		return w
	}
	return 1.0
}

// Category returns the event category t belongs to.
func (t EventType) Category() EventCategory {
	return eventCategories[t]
}

// EventTypeCount returns the number of registered event types.
func EventTypeCount() int {
	return len(defaultEventWeights)
}

// BehaviorEvent is an immutable behavioral fact. Rows are append-only and
// pruned by the cleanup job after the retention window.
type BehaviorEvent struct {
	EventID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"event_id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_type_idem,priority:1" json:"user_id"`
	EventType      EventType         `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_user_type_idem,priority:2" json:"event_type"`
	EventCategory  EventCategory     `gorm:"type:varchar(32);not null;index" json:"event_category"`
	EventData      datatypes.JSONMap `gorm:"type:json" json:"event_data"`
	EventWeight    float64           `gorm:"not null" json:"event_weight"`
	IdempotencyKey *string           `gorm:"type:varchar(255);uniqueIndex:idx_user_type_idem,priority:3" json:"idempotency_key,omitempty"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}
