package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homequest/internal/model"
	"homequest/internal/repository"
	"homequest/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type schedulerFixture struct {
	db        *gorm.DB
	svc       SchedulerService
	scoreRepo repository.ScoreRepository
	eventRepo repository.EventRepository
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	t.Helper()
	db := setupTestDB(t)
	eventRepo := repository.NewGormEventRepository()
	scoreRepo := repository.NewGormScoreRepository()
	scoring := NewScoringService(newTestExtractor(t, db))
	svc := NewSchedulerService(db, repository.NewGormUserRepository(), scoreRepo, eventRepo, scoring, testConfig())
	return &schedulerFixture{db: db, svc: svc, scoreRepo: scoreRepo, eventRepo: eventRepo}
}

func (f *schedulerFixture) seedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, f.db.Create(&model.User{UserID: userID, Email: email}).Error)
	return userID
}

func (f *schedulerFixture) seedEvent(t *testing.T, userID uuid.UUID, eventType model.EventType, at time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.BehaviorEvent{
		EventID:       uuid.New(),
		UserID:        userID,
		EventType:     eventType,
		EventCategory: eventType.Category(),
		EventWeight:   eventType.DefaultWeight(),
		CreatedAt:     at,
	}).Error)
}

func Test_schedulerService_RecalculateScores_All(t *testing.T) {
	f := newSchedulerFixture(t)
	ctx := context.Background()

	active := f.seedUser(t, "active@example.com")
	quiet := f.seedUser(t, "quiet@example.com")
	f.seedEvent(t, active, model.EventLogin, time.Now().Add(-time.Hour))
	f.seedEvent(t, active, model.EventExpertContactRequested, time.Now().Add(-30*time.Minute))

	summary := f.svc.RecalculateScores(ctx, RecalcOptions{All: true})
	assert.Equal(t, model.StatusOK, summary.Status)
	assert.Equal(t, 2, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)

	activeScore, err := f.scoreRepo.FindByUserID(ctx, f.db, active)
	require.NoError(t, err)
	assert.Greater(t, activeScore.CompositeScore, 0.0)
	assert.NotEmpty(t, activeScore.LeadTemperature)
	assert.NotEmpty(t, activeScore.IntentBand)
	require.NotNil(t, activeScore.LastActivityAt)
	assert.WithinDuration(t, time.Now().Add(-30*time.Minute), *activeScore.LastActivityAt, time.Minute)

	quietScore, err := f.scoreRepo.FindByUserID(ctx, f.db, quiet)
	require.NoError(t, err)
	assert.Equal(t, model.TemperatureDormant, quietScore.LeadTemperature)
	assert.Nil(t, quietScore.LastActivityAt)
}

func Test_schedulerService_RecalculateScores_SkipsFresh(t *testing.T) {
	f := newSchedulerFixture(t)
	ctx := context.Background()

	fresh := f.seedUser(t, "fresh@example.com")
	stale := f.seedUser(t, "stale@example.com")
	never := f.seedUser(t, "never@example.com")

	require.NoError(t, f.db.Create(&model.UserLeadScore{
		UserID:           fresh,
		LeadTemperature:  model.TemperatureCold,
		IntentBand:       model.IntentLow,
		LastCalculatedAt: time.Now().Add(-time.Hour),
	}).Error)
	require.NoError(t, f.db.Create(&model.UserLeadScore{
		UserID:           stale,
		LeadTemperature:  model.TemperatureCold,
		IntentBand:       model.IntentLow,
		LastCalculatedAt: time.Now().Add(-25 * time.Hour),
	}).Error)

	// Default staleness is 24h: the fresh score is left alone, the stale
	// row and the user with no row at all are recalculated.
	summary := f.svc.RecalculateScores(ctx, RecalcOptions{})
	assert.Equal(t, model.StatusOK, summary.Status)
	assert.Equal(t, 2, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)

	freshScore, err := f.scoreRepo.FindByUserID(ctx, f.db, fresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), freshScore.LastCalculatedAt, time.Minute)

	staleScore, err := f.scoreRepo.FindByUserID(ctx, f.db, stale)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), staleScore.LastCalculatedAt, time.Minute)

	_, err = f.scoreRepo.FindByUserID(ctx, f.db, never)
	require.NoError(t, err, "user without a score row must be scored")
}

func Test_schedulerService_RecalculateScores_ListError(t *testing.T) {
	db := setupTestDB(t)
	userRepo := new(mocks.UserRepository)
	userRepo.On("ListUserIDs", mock.Anything, mock.AnythingOfType("*gorm.DB")).
		Return(nil, errors.New("relation users does not exist")).Once()

	scoring := NewScoringService(newTestExtractor(t, db))
	svc := NewSchedulerService(db, userRepo, repository.NewGormScoreRepository(),
		repository.NewGormEventRepository(), scoring, testConfig())

	summary := svc.RecalculateScores(context.Background(), RecalcOptions{All: true})
	assert.Equal(t, model.StatusError, summary.Status)
	assert.Contains(t, summary.Message, "listing users")
	userRepo.AssertExpectations(t)
}

func Test_schedulerService_CreateDailySnapshots_Idempotent(t *testing.T) {
	f := newSchedulerFixture(t)
	ctx := context.Background()

	userIDs := make([]uuid.UUID, 2)
	for i, email := range []string{"a@example.com", "b@example.com"} {
		userIDs[i] = f.seedUser(t, email)
		require.NoError(t, f.db.Create(&model.UserLeadScore{
			UserID:           userIDs[i],
			CompositeScore:   float64(300 + i*100),
			LeadTemperature:  model.TemperatureCold,
			IntentBand:       model.IntentMedium,
			LastCalculatedAt: time.Now(),
		}).Error)
	}

	first := f.svc.CreateDailySnapshots(ctx)
	assert.Equal(t, model.StatusOK, first.Status)
	assert.Equal(t, 2, first.SnapshotsCreated)
	assert.Equal(t, 0, first.AlreadyExisting)

	// Re-running on the same day creates nothing new.
	second := f.svc.CreateDailySnapshots(ctx)
	assert.Equal(t, model.StatusOK, second.Status)
	assert.Equal(t, 0, second.SnapshotsCreated)
	assert.Equal(t, 2, second.AlreadyExisting)

	var count int64
	require.NoError(t, f.db.Model(&model.LeadScoreHistory{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var snapshot model.LeadScoreHistory
	require.NoError(t, f.db.Where("user_id = ?", userIDs[0]).First(&snapshot).Error)
	assert.Equal(t, 300.0, snapshot.CompositeScore)
	assert.Contains(t, snapshot.Metrics, "engagement_score")
	assert.Contains(t, snapshot.Metrics, "profile_completion_pct")
	assert.Contains(t, snapshot.Metrics, "labels")
}

func TestLabels_RecomputedFromPersistedScore(t *testing.T) {
	score := &model.UserLeadScore{
		CompositeScore:   850,
		HelpSeekingScore: 90,
	}
	assert.Equal(t, []string{"hot lead", "very_high intent"}, Labels(score))

	assert.Equal(t, []string{"dormant lead", "low intent"}, Labels(&model.UserLeadScore{}))
}

func Test_schedulerService_CleanupOldEvents(t *testing.T) {
	f := newSchedulerFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	f.seedEvent(t, userID, model.EventLogin, time.Now().AddDate(0, 0, -120))
	f.seedEvent(t, userID, model.EventLogin, time.Now().AddDate(0, 0, -91))
	f.seedEvent(t, userID, model.EventLogin, time.Now().AddDate(0, 0, -10))
	f.seedEvent(t, userID, model.EventLogin, time.Now())

	summary := f.svc.CleanupOldEvents(ctx)
	assert.Equal(t, model.StatusOK, summary.Status)
	assert.EqualValues(t, 2, summary.DeletedEvents)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -90), summary.Cutoff, time.Minute)

	remaining, err := f.eventRepo.CountByUser(ctx, f.db, userID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, remaining)
}
