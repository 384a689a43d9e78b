package service

import (
	"fmt"
	"testing"

	"homequest/internal/config"
	"homequest/internal/model"
	"homequest/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database and migrates the full
// schema. The database name is derived from the test name so parallel tests
// do not share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&model.User{},
		&model.OnboardingProfile{},
		&model.BehaviorEvent{},
		&model.LessonProgress{},
		&model.ModuleProgress{},
		&model.QuizAttempt{},
		&model.MiniGameAttempt{},
		&model.CoinBalance{},
		&model.UserBadge{},
		&model.CouponRedemption{},
		&model.SupportTicket{},
		&model.CalculatorUsage{},
		&model.MaterialDownload{},
		&model.UserLeadScore{},
		&model.LeadScoreHistory{},
	)
	require.NoError(t, err, "failed to migrate test database")
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{
			EventRetentionDays: 90,
			StaleScoreMinutes:  1440,
			DedupWindowSeconds: 60,
		},
	}
}

// newTestExtractor builds a SignalExtractor over real repositories.
func newTestExtractor(t *testing.T, db *gorm.DB) *SignalExtractor {
	t.Helper()
	extractor, err := NewSignalExtractor(
		db,
		repository.NewGormEventRepository(),
		repository.NewGormUserRepository(),
		repository.NewGormLearningRepository(),
		repository.NewGormRewardsRepository(),
		repository.NewGormSupportRepository(),
	)
	require.NoError(t, err)
	return extractor
}
