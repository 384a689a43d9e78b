package service

import (
	"context"
	"testing"
	"time"

	"homequest/internal/model"
	"homequest/internal/signals"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignalExtractor_CoversCatalog(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	assert.Len(t, extractor.fns, signals.Count())
}

func TestSignalExtractor_UnknownSignal(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()

	_, err := extractor.Available(ctx, uuid.New(), "no_such_signal")
	assert.Error(t, err)
	_, err = extractor.Extract(ctx, uuid.New(), "no_such_signal")
	assert.Error(t, err)
}

func TestTimelineBucketScore(t *testing.T) {
	tests := []struct {
		months int
		want   float64
	}{
		{1, 100}, {3, 100},
		{4, 85}, {6, 85},
		{7, 70}, {12, 70},
		{13, 50}, {24, 50},
		{25, 30}, {36, 30},
		{37, 10}, {120, 10},
	}
	for _, tt := range tests {
		got := timelineBucketScore(tt.months)
		require.NotNil(t, got)
		assert.Equal(t, tt.want, *got, "months=%d", tt.months)
	}
}

func TestTrendScore(t *testing.T) {
	tests := []struct {
		name          string
		recent, prior int64
		want          float64
	}{
		{"zero to some is maximal", 5, 0, 100},
		{"no activity either week", 0, 0, 50},
		{"steady pace", 4, 4, 50},
		{"fifty percent growth", 6, 4, 75},
		{"doubled", 8, 4, 100},
		{"explosive growth clamps", 40, 2, 100},
		{"halved", 2, 4, 25},
		{"stopped entirely", 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trendScore(tt.recent, tt.prior)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		stddevDays float64
		want       float64
	}{
		{0, 100},
		{0.5, 100},
		{1, 100},
		{4, 50},
		{7, 0},
		{10, 0},
	}
	for _, tt := range tests {
		got := consistencyScore(tt.stddevDays)
		require.NotNil(t, got)
		assert.InDelta(t, tt.want, *got, 1e-9, "stddev=%v", tt.stddevDays)
	}
}

func TestCountScore(t *testing.T) {
	assert.Equal(t, 0.0, *countScore(0, 10))
	assert.Equal(t, 50.0, *countScore(5, 10))
	assert.Equal(t, 100.0, *countScore(10, 10))
	assert.Equal(t, 100.0, *countScore(25, 10), "count past target clamps at 100")
}

func TestRatioScore(t *testing.T) {
	assert.Nil(t, ratioScore(3, 0), "zero denominator cannot be computed")
	assert.Equal(t, 75.0, *ratioScore(3, 4))
	assert.Equal(t, 100.0, *ratioScore(5, 4), "ratio past 1 clamps")
}

func TestRecencyScore(t *testing.T) {
	now := *recencyScore(time.Now(), 30)
	assert.InDelta(t, 100, now, 0.1)

	half := *recencyScore(time.Now().AddDate(0, 0, -15), 30)
	assert.InDelta(t, 50, half, 0.5)

	past := *recencyScore(time.Now().AddDate(0, 0, -45), 30)
	assert.Equal(t, 0.0, past)
}

func TestStddev(t *testing.T) {
	assert.Equal(t, 0.0, stddev(nil))
	assert.Equal(t, 0.0, stddev([]float64{3, 3, 3}))
	assert.InDelta(t, 2.0, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestSignalExtractor_FAQViewsNeverAvailable(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()
	userID := uuid.New()

	// Even a user drowning in events never gets this signal until FAQ-view
	// tracking ships.
	require.NoError(t, db.Create(&model.BehaviorEvent{
		EventID:       uuid.New(),
		UserID:        userID,
		EventType:     model.EventFAQViewed,
		EventCategory: model.CategoryHelpSeeking,
		EventWeight:   1,
		CreatedAt:     time.Now(),
	}).Error)

	available, err := extractor.Available(ctx, userID, signals.SigFAQViews)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestSignalExtractor_BinarySignals(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()
	userID := uuid.New()

	// No onboarding row: zipcode signal is unavailable, not zero.
	available, err := extractor.Available(ctx, userID, signals.SigHasZipcode)
	require.NoError(t, err)
	assert.False(t, available)

	zip := "97210"
	require.NoError(t, db.Create(&model.OnboardingProfile{UserID: userID, Zipcode: &zip}).Error)

	available, err = extractor.Available(ctx, userID, signals.SigHasZipcode)
	require.NoError(t, err)
	assert.True(t, available)

	v, err := extractor.Extract(ctx, userID, signals.SigHasZipcode)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 100.0, *v)

	// Onboarding present but no realtor on file computes to zero, which is
	// a real value, not an unavailable signal.
	available, err = extractor.Available(ctx, userID, signals.SigRealtorConnected)
	require.NoError(t, err)
	assert.True(t, available)
	v, err = extractor.Extract(ctx, userID, signals.SigRealtorConnected)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)
}

func TestSignalExtractor_PurchaseTimeline(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()
	userID := uuid.New()

	months := 3
	require.NoError(t, db.Create(&model.OnboardingProfile{UserID: userID, TimelineMonths: &months}).Error)

	available, err := extractor.Available(ctx, userID, signals.SigPurchaseTimeline)
	require.NoError(t, err)
	assert.True(t, available)

	v, err := extractor.Extract(ctx, userID, signals.SigPurchaseTimeline)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 100.0, *v)
}

func TestSignalExtractor_StudyConsistencyNeedsTwoCompletions(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()
	userID := uuid.New()

	completed := time.Now().AddDate(0, 0, -2)
	require.NoError(t, db.Create(&model.LessonProgress{
		UserID:      userID,
		LessonID:    uuid.New(),
		ModuleID:    uuid.New(),
		Status:      model.ProgressCompleted,
		ProgressPct: 100,
		CompletedAt: &completed,
	}).Error)

	available, err := extractor.Available(ctx, userID, signals.SigStudyConsistency)
	require.NoError(t, err)
	assert.True(t, available)

	// One completion has no gaps to measure.
	v, err := extractor.Extract(ctx, userID, signals.SigStudyConsistency)
	require.NoError(t, err)
	assert.Nil(t, v)

	second := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Create(&model.LessonProgress{
		UserID:      userID,
		LessonID:    uuid.New(),
		ModuleID:    uuid.New(),
		Status:      model.ProgressCompleted,
		ProgressPct: 100,
		CompletedAt: &second,
	}).Error)

	v, err = extractor.Extract(ctx, userID, signals.SigStudyConsistency)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 100.0, *v, "a single one-day gap has zero spread")
}

func TestSignalExtractor_QuizRates(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()
	userID := uuid.New()
	quizID := uuid.New()

	attempts := []model.QuizAttempt{
		{UserID: userID, QuizID: quizID, Score: 40, Passed: false, AttemptNumber: 1, CreatedAt: time.Now().Add(-3 * time.Hour)},
		{UserID: userID, QuizID: quizID, Score: 80, Passed: true, AttemptNumber: 2, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{UserID: userID, QuizID: uuid.New(), Score: 100, Passed: true, AttemptNumber: 1, CreatedAt: time.Now().Add(-time.Hour)},
	}
	for i := range attempts {
		require.NoError(t, db.Create(&attempts[i]).Error)
	}

	passRate, err := extractor.Extract(ctx, userID, signals.SigQuizPassRate)
	require.NoError(t, err)
	require.NotNil(t, passRate)
	assert.InDelta(t, 66.67, *passRate, 0.01)

	avg, err := extractor.Extract(ctx, userID, signals.SigQuizAvgScore)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 73.33, *avg, 0.01)

	// Two first attempts, one passed.
	firstRate, err := extractor.Extract(ctx, userID, signals.SigFirstAttemptPassRate)
	require.NoError(t, err)
	require.NotNil(t, firstRate)
	assert.InDelta(t, 50, *firstRate, 0.01)

	perfect, err := extractor.Extract(ctx, userID, signals.SigPerfectScores)
	require.NoError(t, err)
	require.NotNil(t, perfect)
	assert.InDelta(t, 100.0/3, *perfect, 0.01, "one perfect result against a target of three")
}

func TestSignalExtractor_AvailabilitySummary(t *testing.T) {
	db := setupTestDB(t)
	extractor := newTestExtractor(t, db)
	ctx := context.Background()

	t.Run("unknown user has nothing available", func(t *testing.T) {
		summary, err := extractor.AvailabilitySummary(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Available)
		assert.Equal(t, signals.Count(), summary.Total)
		assert.Equal(t, 0.0, summary.Pct)
		assert.Len(t, summary.Dimensions, len(model.AllDimensions))
	})

	t.Run("bare user row unlocks only structural signals", func(t *testing.T) {
		userID := uuid.New()
		require.NoError(t, db.Create(&model.User{UserID: userID, Email: "casey@example.com"}).Error)

		summary, err := extractor.AvailabilitySummary(ctx, userID)
		require.NoError(t, err)
		// has_ever_logged_in is available the moment the user exists.
		assert.Equal(t, 1, summary.Available)
		assert.Greater(t, summary.Pct, 0.0)
	})
}
