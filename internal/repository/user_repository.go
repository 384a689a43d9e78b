//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"homequest/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the narrow read interface onto the identity and
// onboarding subsystems.
type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	ListUserIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error)
	FindOnboarding(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.OnboardingProfile, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) ListUserIDs(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := db.WithContext(ctx).Model(&model.User{}).Order("created_at").Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("gormUserRepository.ListUserIDs: %w", result.Error)
	}
	return ids, nil
}

func (r *gormUserRepository) FindOnboarding(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.OnboardingProfile, error) {
	var profile model.OnboardingProfile
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindOnboarding: %w", result.Error)
	}
	return &profile, nil
}
