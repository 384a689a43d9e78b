package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homequest/internal/model"
	"homequest/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) TrackerService {
	t.Helper()
	db := setupTestDB(t)
	return NewTrackerService(db, repository.NewGormEventRepository(), testConfig())
}

func Test_trackerService_TrackEvent_Validation(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input model.TrackEventInput
	}{
		{
			name:  "missing user id",
			input: model.TrackEventInput{EventType: model.EventLogin},
		},
		{
			name:  "missing event type",
			input: model.TrackEventInput{UserID: uuid.New()},
		},
		{
			name:  "unknown event type",
			input: model.TrackEventInput{UserID: uuid.New(), EventType: "bogus_event"},
		},
		{
			name: "category contradicts event type",
			input: model.TrackEventInput{
				UserID:    uuid.New(),
				EventType: model.EventLogin,
				Category:  model.CategoryRewards,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, created, err := tracker.TrackEvent(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidInput), "want ErrInvalidInput, got %v", err)
			assert.False(t, created)
		})
	}
}

func Test_trackerService_TrackEvent_DefaultsAndWeights(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	userID := uuid.New()

	event, created, err := tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:    userID,
		EventType: model.EventExpertContactRequested,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.CategoryHelpSeeking, event.EventCategory)
	assert.Equal(t, model.EventExpertContactRequested.DefaultWeight(), event.EventWeight)

	custom := 2.5
	event2, created, err := tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:       userID,
		EventType:    model.EventMaterialViewed,
		CustomWeight: &custom,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2.5, event2.EventWeight)
}

func Test_trackerService_TrackEvent_IdempotencyKey(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	userID := uuid.New()
	key := "client-req-123"

	first, created, err := tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:         userID,
		EventType:      model.EventCalculatorUsed,
		IdempotencyKey: &key,
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:         userID,
		EventType:      model.EventCalculatorUsed,
		IdempotencyKey: &key,
	})
	require.NoError(t, err)
	assert.False(t, created, "same key must not create a second event")
	assert.Equal(t, first.EventID, second.EventID)

	// Same key for a different user is a different event.
	_, created, err = tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:         uuid.New(),
		EventType:      model.EventCalculatorUsed,
		IdempotencyKey: &key,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func Test_trackerService_TrackLessonMilestone_OncePerMilestone(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()

	_, created, err := tracker.TrackLessonMilestone(ctx, userID, lessonID, 50)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = tracker.TrackLessonMilestone(ctx, userID, lessonID, 50)
	require.NoError(t, err)
	assert.False(t, created, "repeating the same milestone must dedupe")

	for _, pct := range []int{25, 75, 90} {
		_, created, err = tracker.TrackLessonMilestone(ctx, userID, lessonID, pct)
		require.NoError(t, err)
		assert.True(t, created, "milestone %d", pct)
	}

	// A different lesson starts its own milestone series.
	_, created, err = tracker.TrackLessonMilestone(ctx, userID, uuid.New(), 50)
	require.NoError(t, err)
	assert.True(t, created)
}

func Test_trackerService_TrackLessonCompleted_OncePerLesson(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()

	first, created, err := tracker.TrackLessonCompleted(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.True(t, created)

	// Completion of the same lesson is deduplicated for all time, not just
	// inside the trailing window.
	second, created, err := tracker.TrackLessonCompleted(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.EventID, second.EventID)

	_, created, err = tracker.TrackLessonCompleted(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.True(t, created)
}

func Test_trackerService_TrackEvent_DedupWindow(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	userID := uuid.New()

	_, created, err := tracker.TrackLogin(ctx, userID)
	require.NoError(t, err)
	assert.True(t, created)

	// A second login inside the window collapses onto the first.
	_, created, err = tracker.TrackLogin(ctx, userID)
	require.NoError(t, err)
	assert.False(t, created)

	// An explicit zero window disables deduplication.
	zero := 0
	_, created, err = tracker.TrackEvent(ctx, model.TrackEventInput{
		UserID:             userID,
		EventType:          model.EventLogin,
		DedupWindowSeconds: &zero,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func Test_trackerService_DerivedEventTypes(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	t.Run("quiz results", func(t *testing.T) {
		tests := []struct {
			score  int
			passed bool
			want   model.EventType
		}{
			{100, true, model.EventQuizPerfectScore},
			{95, true, model.EventQuizHighScore},
			{90, true, model.EventQuizHighScore},
			{89, true, model.EventQuizPassed},
			{70, true, model.EventQuizPassed},
			{90, false, model.EventQuizFailed},
			{40, false, model.EventQuizFailed},
		}
		for _, tt := range tests {
			event, created, err := tracker.TrackQuizResult(ctx, uuid.New(), uuid.New(), tt.score, tt.passed, 1)
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, tt.want, event.EventType, "score=%d passed=%v", tt.score, tt.passed)
		}
	})

	t.Run("minigame results", func(t *testing.T) {
		tests := []struct {
			score  int
			passed bool
			want   model.EventType
		}{
			{100, true, model.EventMiniGamePerfectScore},
			{80, true, model.EventMiniGameCompleted},
			{30, false, model.EventMiniGameFailed},
		}
		for _, tt := range tests {
			event, _, err := tracker.TrackMiniGameResult(ctx, uuid.New(), uuid.New(), tt.score, tt.passed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.EventType, "score=%d", tt.score)
		}
	})

	t.Run("badge rarity", func(t *testing.T) {
		event, _, err := tracker.TrackBadgeEarned(ctx, uuid.New(), uuid.New(), model.RarityCommon)
		require.NoError(t, err)
		assert.Equal(t, model.EventBadgeEarned, event.EventType)

		for _, rarity := range []model.BadgeRarity{model.RarityRare, model.RarityEpic, model.RarityLegendary} {
			event, _, err := tracker.TrackBadgeEarned(ctx, uuid.New(), uuid.New(), rarity)
			require.NoError(t, err)
			assert.Equal(t, model.EventRareBadgeEarned, event.EventType, "rarity=%s", rarity)
		}
	})

	t.Run("timeline direction", func(t *testing.T) {
		event, _, err := tracker.TrackTimelineUpdated(ctx, uuid.New(), 12, 6)
		require.NoError(t, err)
		assert.Equal(t, model.EventTimelineShortened, event.EventType)

		event, _, err = tracker.TrackTimelineUpdated(ctx, uuid.New(), 6, 12)
		require.NoError(t, err)
		assert.Equal(t, model.EventTimelineUpdated, event.EventType)

		event, _, err = tracker.TrackTimelineUpdated(ctx, uuid.New(), 6, 6)
		require.NoError(t, err)
		assert.Equal(t, model.EventTimelineUpdated, event.EventType)
	})
}

func Test_trackerService_EventMetadataPersisted(t *testing.T) {
	db := setupTestDB(t)
	eventRepo := repository.NewGormEventRepository()
	tracker := NewTrackerService(db, eventRepo, testConfig())
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()

	event, _, err := tracker.TrackLessonCompleted(ctx, userID, lessonID)
	require.NoError(t, err)

	stored, err := eventRepo.FindRecentByType(ctx, db, userID, model.EventLessonCompleted, time.Time{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, event.EventID, stored[0].EventID)
	assert.Equal(t, lessonID.String(), stored[0].EventData["lesson_id"])
}
