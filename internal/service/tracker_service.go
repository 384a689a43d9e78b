//go:generate mockery --name TrackerService --output ./mocks --outpkg mocks --case=underscore
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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TrackerService ingests behavior events with deduplication and idempotency
// guarantees. TrackEvent is the general entrypoint; the named helpers derive
// event types from results (quiz scores, badge rarity, timeline direction)
// so callers never pick raw event types for those flows.
type TrackerService interface {
	TrackEvent(ctx context.Context, input model.TrackEventInput) (*model.BehaviorEvent, bool, error)

	// Learning
	TrackLessonStarted(ctx context.Context, userID, lessonID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackLessonMilestone(ctx context.Context, userID, lessonID uuid.UUID, milestonePct int) (*model.BehaviorEvent, bool, error)
	TrackLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackModuleCompleted(ctx context.Context, userID, moduleID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackQuizResult(ctx context.Context, userID, quizID uuid.UUID, score int, passed bool, attemptNumber int) (*model.BehaviorEvent, bool, error)
	TrackMiniGameResult(ctx context.Context, userID, gameID uuid.UUID, score int, passed bool) (*model.BehaviorEvent, bool, error)

	// Engagement
	TrackLogin(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackNotificationClicked(ctx context.Context, userID, notificationID uuid.UUID) (*model.BehaviorEvent, bool, error)

	// Help-seeking
	TrackExpertContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackRealtorContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackLoanOfficerContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error)
	TrackCalculatorUsed(ctx context.Context, userID uuid.UUID, calculatorType string) (*model.BehaviorEvent, bool, error)
	TrackMaterialDownloaded(ctx context.Context, userID, materialID uuid.UUID) (*model.BehaviorEvent, bool, error)

	// Goal indication
	TrackTimelineUpdated(ctx context.Context, userID uuid.UUID, oldMonths, newMonths int) (*model.BehaviorEvent, bool, error)
	TrackZipcodeProvided(ctx context.Context, userID uuid.UUID, zipcode string) (*model.BehaviorEvent, bool, error)
	TrackOnboardingCompleted(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error)

	// Rewards
	TrackCoinsEarned(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*model.BehaviorEvent, bool, error)
	TrackCoinsSpent(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*model.BehaviorEvent, bool, error)
	TrackBadgeEarned(ctx context.Context, userID, badgeID uuid.UUID, rarity model.BadgeRarity) (*model.BehaviorEvent, bool, error)
	TrackCouponRedeemed(ctx context.Context, userID, couponID uuid.UUID) (*model.BehaviorEvent, bool, error)
}

type trackerService struct {
	db        *gorm.DB
	eventRepo repository.EventRepository
	cfg       *config.Config
	validate  *validator.Validate
}

func NewTrackerService(db *gorm.DB, eventRepo repository.EventRepository, cfg *config.Config) TrackerService {
	return &trackerService{
		db:        db,
		eventRepo: eventRepo,
		cfg:       cfg,
		validate:  validator.New(),
	}
}

// TrackEvent applies the dedup policy in priority order: an idempotency key
// lookup first; otherwise a trailing-window check (with a payload match for
// lesson/module completions); otherwise insert. The returned bool is true
// only when a new row was stored.
func (s *trackerService) TrackEvent(ctx context.Context, input model.TrackEventInput) (*model.BehaviorEvent, bool, error) {
	logger := logging.FromContext(ctx).With("user_id", input.UserID, "event_type", input.EventType)

	if err := s.validate.Struct(input); err != nil {
		return nil, false, model.NewAppError("INVALID_EVENT", "invalid tracking input", "", errors.Join(model.ErrInvalidInput, err))
	}
	if !input.EventType.Valid() {
		return nil, false, model.NewAppError("UNKNOWN_EVENT_TYPE",
			fmt.Sprintf("unknown event type %q", input.EventType), "event_type", model.ErrInvalidInput)
	}
	category := input.Category
	if category == "" {
		category = input.EventType.Category()
	} else if category != input.EventType.Category() {
		return nil, false, model.NewAppError("CATEGORY_MISMATCH",
			fmt.Sprintf("event type %q belongs to category %q", input.EventType, input.EventType.Category()),
			"category", model.ErrInvalidInput)
	}

	now := time.Now()

	// 1. Idempotency key wins over everything else.
	if input.IdempotencyKey != nil && *input.IdempotencyKey != "" {
		existing, err := s.eventRepo.FindByIdempotencyKey(ctx, s.db, input.UserID, input.EventType, *input.IdempotencyKey)
		if err == nil {
			logger.Debug("Event already tracked for idempotency key", "idempotency_key", *input.IdempotencyKey)
			return existing, false, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, false, err
		}
	} else if existing, err := s.findWindowDuplicate(ctx, input, category, now); err != nil {
		return nil, false, err
	} else if existing != nil {
		logger.Debug("Event deduplicated within trailing window")
		return existing, false, nil
	}

	weight := input.EventType.DefaultWeight()
	if input.CustomWeight != nil {
		weight = *input.CustomWeight
	}

	event := &model.BehaviorEvent{
		EventID:        uuid.New(),
		UserID:         input.UserID,
		EventType:      input.EventType,
		EventCategory:  category,
		EventData:      datatypes.JSONMap(input.Metadata),
		EventWeight:    weight,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.eventRepo.Create(ctx, tx, event)
	})
	if err != nil {
		// Lost a race against a concurrent insert with the same key: the
		// transaction rolled back, so fetch and return the winning row.
		if errors.Is(err, model.ErrConflict) && input.IdempotencyKey != nil {
			existing, ferr := s.eventRepo.FindByIdempotencyKey(ctx, s.db, input.UserID, input.EventType, *input.IdempotencyKey)
			if ferr != nil {
				return nil, false, model.NewAppError("EVENT_CONFLICT",
					"event insert conflicted but the winning row could not be fetched", "", ferr)
			}
			logger.Debug("Concurrent insert won the idempotency race", "idempotency_key", *input.IdempotencyKey)
			return existing, false, nil
		}
		return nil, false, model.NewAppError("EVENT_INSERT_FAILED", "failed to store behavior event", "", err)
	}

	logger.Info("Behavior event tracked", "event_id", event.EventID, "weight", event.EventWeight)
	return event, true, nil
}

// findWindowDuplicate implements the window branch of the dedup policy.
// Lesson and module completions are unique per lesson/module for all time
// when the payload names one, not just within the window; everything else
// treats any same-type event inside the window as a duplicate.
func (s *trackerService) findWindowDuplicate(ctx context.Context, input model.TrackEventInput, category model.EventCategory, now time.Time) (*model.BehaviorEvent, error) {
	if idKey, ok := completionPayloadKey(input.EventType); ok {
		if wanted, ok := metadataString(input.Metadata, idKey); ok {
			events, err := s.eventRepo.FindRecentByType(ctx, s.db, input.UserID, input.EventType, time.Time{})
			if err != nil {
				return nil, err
			}
			for _, ev := range events {
				if stored, ok := metadataString(map[string]any(ev.EventData), idKey); ok && stored == wanted {
					return ev, nil
				}
			}
			return nil, nil
		}
	}

	window := s.cfg.Analytics.DedupWindowSeconds
	if input.DedupWindowSeconds != nil {
		window = *input.DedupWindowSeconds
	}
	if window <= 0 {
		return nil, nil
	}

	since := now.Add(-time.Duration(window) * time.Second)
	events, err := s.eventRepo.FindRecentByType(ctx, s.db, input.UserID, input.EventType, since)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events[0], nil
}

// completionPayloadKey returns the metadata key identifying the completed
// unit for event types with a per-unit uniqueness rule.
func completionPayloadKey(t model.EventType) (string, bool) {
	switch t {
	case model.EventLessonCompleted:
		return "lesson_id", true
	case model.EventModuleCompleted:
		return "module_id", true
	default:
		return "", false
	}
}

func metadataString(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func (s *trackerService) TrackLessonStarted(ctx context.Context, userID, lessonID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventLessonStarted,
		Metadata:  map[string]any{"lesson_id": lessonID.String()},
	})
}

// TrackLessonMilestone records a 25/50/75/90% checkpoint. The derived
// idempotency key guarantees exactly one event per milestone per lesson per
// user no matter how often the client retries.
func (s *trackerService) TrackLessonMilestone(ctx context.Context, userID, lessonID uuid.UUID, milestonePct int) (*model.BehaviorEvent, bool, error) {
	key := fmt.Sprintf("%s:lesson:%s:milestone:%d", userID, lessonID, milestonePct)
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:         userID,
		EventType:      model.EventLessonMilestone,
		Metadata:       map[string]any{"lesson_id": lessonID.String(), "milestone_pct": milestonePct},
		IdempotencyKey: &key,
	})
}

func (s *trackerService) TrackLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventLessonCompleted,
		Metadata:  map[string]any{"lesson_id": lessonID.String()},
	})
}

func (s *trackerService) TrackModuleCompleted(ctx context.Context, userID, moduleID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventModuleCompleted,
		Metadata:  map[string]any{"module_id": moduleID.String()},
	})
}

// TrackQuizResult derives the event type from the grade: 100 is a perfect
// score, 90+ passing is a high score, then passed/failed.
func (s *trackerService) TrackQuizResult(ctx context.Context, userID, quizID uuid.UUID, score int, passed bool, attemptNumber int) (*model.BehaviorEvent, bool, error) {
	var eventType model.EventType
	switch {
	case score == 100:
		eventType = model.EventQuizPerfectScore
	case score >= 90 && passed:
		eventType = model.EventQuizHighScore
	case passed:
		eventType = model.EventQuizPassed
	default:
		eventType = model.EventQuizFailed
	}
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: eventType,
		Metadata: map[string]any{
			"quiz_id":        quizID.String(),
			"score":          score,
			"passed":         passed,
			"attempt_number": attemptNumber,
		},
	})
}

// TrackMiniGameResult mirrors TrackQuizResult without the high-score tier.
func (s *trackerService) TrackMiniGameResult(ctx context.Context, userID, gameID uuid.UUID, score int, passed bool) (*model.BehaviorEvent, bool, error) {
	var eventType model.EventType
	switch {
	case score == 100:
		eventType = model.EventMiniGamePerfectScore
	case passed:
		eventType = model.EventMiniGameCompleted
	default:
		eventType = model.EventMiniGameFailed
	}
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: eventType,
		Metadata:  map[string]any{"game_id": gameID.String(), "score": score, "passed": passed},
	})
}

func (s *trackerService) TrackLogin(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventLogin,
	})
}

func (s *trackerService) TrackNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventNotificationRead,
		Metadata:  map[string]any{"notification_id": notificationID.String()},
	})
}

func (s *trackerService) TrackNotificationClicked(ctx context.Context, userID, notificationID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventNotificationClicked,
		Metadata:  map[string]any{"notification_id": notificationID.String()},
	})
}

func (s *trackerService) TrackExpertContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventExpertContactRequested,
	})
}

func (s *trackerService) TrackRealtorContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventRealtorContactRequested,
	})
}

func (s *trackerService) TrackLoanOfficerContactRequested(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventLoanOfficerContactRequested,
	})
}

func (s *trackerService) TrackCalculatorUsed(ctx context.Context, userID uuid.UUID, calculatorType string) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventCalculatorUsed,
		Metadata:  map[string]any{"calculator_type": calculatorType},
	})
}

func (s *trackerService) TrackMaterialDownloaded(ctx context.Context, userID, materialID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventMaterialDownloaded,
		Metadata:  map[string]any{"material_id": materialID.String()},
	})
}

// TrackTimelineUpdated records a timeline change, upgrading to the stronger
// timeline_shortened type when the new horizon is closer than the old one.
func (s *trackerService) TrackTimelineUpdated(ctx context.Context, userID uuid.UUID, oldMonths, newMonths int) (*model.BehaviorEvent, bool, error) {
	eventType := model.EventTimelineUpdated
	if newMonths < oldMonths {
		eventType = model.EventTimelineShortened
	}
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: eventType,
		Metadata:  map[string]any{"old_months": oldMonths, "new_months": newMonths},
	})
}

func (s *trackerService) TrackZipcodeProvided(ctx context.Context, userID uuid.UUID, zipcode string) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventZipcodeProvided,
		Metadata:  map[string]any{"zipcode": zipcode},
	})
}

func (s *trackerService) TrackOnboardingCompleted(ctx context.Context, userID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	key := fmt.Sprintf("%s:onboarding_completed", userID)
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:         userID,
		EventType:      model.EventOnboardingCompleted,
		IdempotencyKey: &key,
	})
}

func (s *trackerService) TrackCoinsEarned(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventCoinsEarned,
		Metadata:  map[string]any{"amount": amount, "reason": reason},
	})
}

func (s *trackerService) TrackCoinsSpent(ctx context.Context, userID uuid.UUID, amount int64, reason string) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventCoinsSpent,
		Metadata:  map[string]any{"amount": amount, "reason": reason},
	})
}

// TrackBadgeEarned upgrades rare-or-better rarities to the stronger
// rare_badge_earned type.
func (s *trackerService) TrackBadgeEarned(ctx context.Context, userID, badgeID uuid.UUID, rarity model.BadgeRarity) (*model.BehaviorEvent, bool, error) {
	eventType := model.EventBadgeEarned
	if rarity.Rare() {
		eventType = model.EventRareBadgeEarned
	}
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: eventType,
		Metadata:  map[string]any{"badge_id": badgeID.String(), "rarity": string(rarity)},
	})
}

func (s *trackerService) TrackCouponRedeemed(ctx context.Context, userID, couponID uuid.UUID) (*model.BehaviorEvent, bool, error) {
	return s.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventCouponRedeemed,
		Metadata:  map[string]any{"coupon_id": couponID.String()},
	})
}
