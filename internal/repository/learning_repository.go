//go:generate mockery --name LearningRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"homequest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningRepository is the narrow read interface onto lesson/module
// progress and quiz/mini-game attempts.
type LearningRepository interface {
	CountLessonProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	CountCompletedLessons(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error)
	// ListLessonCompletionTimes returns completion timestamps ascending.
	ListLessonCompletionTimes(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]time.Time, error)
	ListModuleProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.ModuleProgress, error)
	CountCompletedModules(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error)
	ListQuizAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.QuizAttempt, error)
	CountQuizAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	ListMiniGameAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.MiniGameAttempt, error)
	CountMiniGameAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

type gormLearningRepository struct{}

func NewGormLearningRepository() LearningRepository {
	return &gormLearningRepository{}
}

func (r *gormLearningRepository) CountLessonProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormLearningRepository.CountLessonProgress: %w", err)
	}
	return count, nil
}

func (r *gormLearningRepository) CountCompletedLessons(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error) {
	query := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressCompleted)
	if since != nil {
		query = query.Where("completed_at >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormLearningRepository.CountCompletedLessons: %w", err)
	}
	return count, nil
}

func (r *gormLearningRepository) ListLessonCompletionTimes(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]time.Time, error) {
	var times []time.Time
	err := db.WithContext(ctx).Model(&model.LessonProgress{}).
		Where("user_id = ? AND status = ? AND completed_at IS NOT NULL", userID, model.ProgressCompleted).
		Order("completed_at ASC").
		Pluck("completed_at", &times).Error
	if err != nil {
		return nil, fmt.Errorf("gormLearningRepository.ListLessonCompletionTimes: %w", err)
	}
	return times, nil
}

func (r *gormLearningRepository) ListModuleProgress(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.ModuleProgress, error) {
	var rows []*model.ModuleProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormLearningRepository.ListModuleProgress: %w", result.Error)
	}
	return rows, nil
}

func (r *gormLearningRepository) CountCompletedModules(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error) {
	query := db.WithContext(ctx).Model(&model.ModuleProgress{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressCompleted)
	if since != nil {
		query = query.Where("completed_at >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormLearningRepository.CountCompletedModules: %w", err)
	}
	return count, nil
}

func (r *gormLearningRepository) ListQuizAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.QuizAttempt, error) {
	var rows []*model.QuizAttempt
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormLearningRepository.ListQuizAttempts: %w", result.Error)
	}
	return rows, nil
}

func (r *gormLearningRepository) CountQuizAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormLearningRepository.CountQuizAttempts: %w", err)
	}
	return count, nil
}

func (r *gormLearningRepository) ListMiniGameAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.MiniGameAttempt, error) {
	var rows []*model.MiniGameAttempt
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormLearningRepository.ListMiniGameAttempts: %w", result.Error)
	}
	return rows, nil
}

func (r *gormLearningRepository) CountMiniGameAttempts(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.MiniGameAttempt{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormLearningRepository.CountMiniGameAttempts: %w", err)
	}
	return count, nil
}
