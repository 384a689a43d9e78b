//go:generate mockery --name SupportRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"homequest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupportRepository is the narrow read interface onto support tickets,
// calculators, and material downloads.
type SupportRepository interface {
	CountTickets(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	CountCalculatorUsage(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	LatestCalculatorUsage(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CalculatorUsage, error)
	CountMaterialDownloads(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

type gormSupportRepository struct{}

func NewGormSupportRepository() SupportRepository {
	return &gormSupportRepository{}
}

func (r *gormSupportRepository) CountTickets(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormSupportRepository.CountTickets: %w", err)
	}
	return count, nil
}

func (r *gormSupportRepository) CountCalculatorUsage(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.CalculatorUsage{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormSupportRepository.CountCalculatorUsage: %w", err)
	}
	return count, nil
}

func (r *gormSupportRepository) LatestCalculatorUsage(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CalculatorUsage, error) {
	var usage model.CalculatorUsage
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&usage)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSupportRepository.LatestCalculatorUsage: %w", result.Error)
	}
	return &usage, nil
}

func (r *gormSupportRepository) CountMaterialDownloads(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.MaterialDownload{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormSupportRepository.CountMaterialDownloads: %w", err)
	}
	return count, nil
}
