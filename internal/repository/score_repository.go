//go:generate mockery --name ScoreRepository --output ./mocks --outpkg mocks --case=underscore
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
	"gorm.io/gorm/clause"
)

type ScoreRepository interface {
	// Upsert fully overwrites the user's score row, inserting it if absent.
	// Safe under concurrent recalculation of the same user (last writer wins).
	Upsert(ctx context.Context, tx *gorm.DB, score *model.UserLeadScore) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserLeadScore, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]*model.UserLeadScore, error)
	// CreateSnapshot inserts a history row; a duplicate (user, date) is
	// returned as model.ErrConflict.
	CreateSnapshot(ctx context.Context, tx *gorm.DB, snapshot *model.LeadScoreHistory) error
	SnapshotExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (bool, error)
}

type gormScoreRepository struct{}

func NewGormScoreRepository() ScoreRepository {
	return &gormScoreRepository{}
}

func (r *gormScoreRepository) Upsert(ctx context.Context, tx *gorm.DB, score *model.UserLeadScore) error {
	logger := logging.FromContext(ctx)

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(score)
	if result.Error != nil {
		logger.Error("Error upserting lead score", "error", result.Error, "user_id", score.UserID)
		return fmt.Errorf("gormScoreRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormScoreRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserLeadScore, error) {
	var score model.UserLeadScore
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&score)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormScoreRepository.FindByUserID: %w", result.Error)
	}
	return &score, nil
}

func (r *gormScoreRepository) ListAll(ctx context.Context, db *gorm.DB) ([]*model.UserLeadScore, error) {
	var scores []*model.UserLeadScore
	result := db.WithContext(ctx).Order("user_id").Find(&scores)
	if result.Error != nil {
		return nil, fmt.Errorf("gormScoreRepository.ListAll: %w", result.Error)
	}
	return scores, nil
}

func (r *gormScoreRepository) CreateSnapshot(ctx context.Context, tx *gorm.DB, snapshot *model.LeadScoreHistory) error {
	logger := logging.FromContext(ctx)

	result := tx.WithContext(ctx).Create(snapshot)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if (errors.As(result.Error, &pgErr) && pgErr.Code == "23505") ||
			errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			logger.Warn("Duplicate daily snapshot",
				"user_id", snapshot.UserID,
				"snapshot_date", snapshot.SnapshotDate,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating score snapshot", "error", result.Error, "user_id", snapshot.UserID)
		return fmt.Errorf("gormScoreRepository.CreateSnapshot: %w", result.Error)
	}
	return nil
}

func (r *gormScoreRepository) SnapshotExists(ctx context.Context, db *gorm.DB, userID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.LeadScoreHistory{}).
		Where("user_id = ? AND snapshot_date = ?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gormScoreRepository.SnapshotExists: %w", err)
	}
	return count > 0, nil
}
