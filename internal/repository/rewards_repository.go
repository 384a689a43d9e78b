//go:generate mockery --name RewardsRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"homequest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardsRepository is the narrow read interface onto the coin/badge/coupon
// subsystem.
type RewardsRepository interface {
	FindCoinBalance(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CoinBalance, error)
	CountBadges(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	CountRareBadges(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	CountRedemptions(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

type gormRewardsRepository struct{}

func NewGormRewardsRepository() RewardsRepository {
	return &gormRewardsRepository{}
}

func (r *gormRewardsRepository) FindCoinBalance(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CoinBalance, error) {
	var balance model.CoinBalance
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&balance)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormRewardsRepository.FindCoinBalance: %w", result.Error)
	}
	return &balance, nil
}

func (r *gormRewardsRepository) CountBadges(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.UserBadge{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormRewardsRepository.CountBadges: %w", err)
	}
	return count, nil
}

func (r *gormRewardsRepository) CountRareBadges(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.UserBadge{}).
		Where("user_id = ? AND rarity IN ?", userID, []model.BadgeRarity{model.RarityRare, model.RarityEpic, model.RarityLegendary}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormRewardsRepository.CountRareBadges: %w", err)
	}
	return count, nil
}

func (r *gormRewardsRepository) CountRedemptions(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.CouponRedemption{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormRewardsRepository.CountRedemptions: %w", err)
	}
	return count, nil
}
