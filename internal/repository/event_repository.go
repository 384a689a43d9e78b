//go:generate mockery --name EventRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homequest/internal/logging"
	"homequest/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type EventRepository interface {
	// Create inserts an event. A unique-constraint violation on the
	// (user, event_type, idempotency_key) index is returned as
	// model.ErrConflict so the caller can refetch the winning row.
	Create(ctx context.Context, tx *gorm.DB, event *model.BehaviorEvent) error
	FindByIdempotencyKey(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, key string) (*model.BehaviorEvent, error)
	// FindRecentByType returns events of the given type created at or after
	// since, newest first.
	FindRecentByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, since time.Time) ([]*model.BehaviorEvent, error)
	CountByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, since *time.Time) (int64, error)
	CountByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory, since *time.Time) (int64, error)
	CountByCategoryBetween(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory, from, to time.Time) (int64, error)
	CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error)
	// CountActiveDays counts distinct calendar days with at least one event.
	CountActiveDays(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
	LatestByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType) (*model.BehaviorEvent, error)
	LatestByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory) (*model.BehaviorEvent, error)
	LatestByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.BehaviorEvent, error)
	ExistsByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType) (bool, error)
	DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type gormEventRepository struct{}

func NewGormEventRepository() EventRepository {
	return &gormEventRepository{}
}

func (r *gormEventRepository) Create(ctx context.Context, tx *gorm.DB, event *model.BehaviorEvent) error {
	logger := logging.FromContext(ctx)

	result := tx.WithContext(ctx).Create(event)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if (errors.As(result.Error, &pgErr) && pgErr.Code == "23505") ||
			errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			logger.Warn("Duplicate key on event insert",
				"user_id", event.UserID,
				"event_type", event.EventType,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating behavior event", "error", result.Error, "event_type", event.EventType)
		return fmt.Errorf("gormEventRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEventRepository) FindByIdempotencyKey(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, key string) (*model.BehaviorEvent, error) {
	var event model.BehaviorEvent
	result := db.WithContext(ctx).
		Where("user_id = ? AND event_type = ? AND idempotency_key = ?", userID, eventType, key).
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormEventRepository.FindByIdempotencyKey: %w", result.Error)
	}
	return &event, nil
}

func (r *gormEventRepository) FindRecentByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, since time.Time) ([]*model.BehaviorEvent, error) {
	var events []*model.BehaviorEvent
	result := db.WithContext(ctx).
		Where("user_id = ? AND event_type = ? AND created_at >= ?", userID, eventType, since).
		Order("created_at DESC").
		Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("gormEventRepository.FindRecentByType: %w", result.Error)
	}
	return events, nil
}

func (r *gormEventRepository) CountByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType, since *time.Time) (int64, error) {
	query := db.WithContext(ctx).Model(&model.BehaviorEvent{}).
		Where("user_id = ? AND event_type = ?", userID, eventType)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormEventRepository.CountByType: %w", err)
	}
	return count, nil
}

func (r *gormEventRepository) CountByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory, since *time.Time) (int64, error) {
	query := db.WithContext(ctx).Model(&model.BehaviorEvent{}).
		Where("user_id = ? AND event_category = ?", userID, category)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormEventRepository.CountByCategory: %w", err)
	}
	return count, nil
}

func (r *gormEventRepository) CountByCategoryBetween(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.BehaviorEvent{}).
		Where("user_id = ? AND event_category = ? AND created_at >= ? AND created_at < ?", userID, category, from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormEventRepository.CountByCategoryBetween: %w", err)
	}
	return count, nil
}

func (r *gormEventRepository) CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, since *time.Time) (int64, error) {
	query := db.WithContext(ctx).Model(&model.BehaviorEvent{}).Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormEventRepository.CountByUser: %w", err)
	}
	return count, nil
}

func (r *gormEventRepository) CountActiveDays(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	// DATE() works on both Postgres and the sqlite test driver.
	var count int64
	err := db.WithContext(ctx).Model(&model.BehaviorEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Distinct("DATE(created_at)").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormEventRepository.CountActiveDays: %w", err)
	}
	return count, nil
}

func (r *gormEventRepository) LatestByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType) (*model.BehaviorEvent, error) {
	var event model.BehaviorEvent
	result := db.WithContext(ctx).
		Where("user_id = ? AND event_type = ?", userID, eventType).
		Order("created_at DESC").
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormEventRepository.LatestByType: %w", result.Error)
	}
	return &event, nil
}

func (r *gormEventRepository) LatestByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, category model.EventCategory) (*model.BehaviorEvent, error) {
	var event model.BehaviorEvent
	result := db.WithContext(ctx).
		Where("user_id = ? AND event_category = ?", userID, category).
		Order("created_at DESC").
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormEventRepository.LatestByCategory: %w", result.Error)
	}
	return &event, nil
}

func (r *gormEventRepository) LatestByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.BehaviorEvent, error) {
	var event model.BehaviorEvent
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormEventRepository.LatestByUser: %w", result.Error)
	}
	return &event, nil
}

func (r *gormEventRepository) ExistsByType(ctx context.Context, db *gorm.DB, userID uuid.UUID, eventType model.EventType) (bool, error) {
	count, err := r.CountByType(ctx, db, userID, eventType, nil)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormEventRepository) DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.BehaviorEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("gormEventRepository.DeleteOlderThan: %w", result.Error)
	}
	return result.RowsAffected, nil
}
