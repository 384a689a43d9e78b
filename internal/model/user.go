package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is owned by the identity subsystem. The scoring core only reads
// existence, created_at, and last_login_at.
type User struct {
	UserID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email       string         `gorm:"not null;uniqueIndex" json:"email"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// OnboardingProfile is written by the onboarding flow. The scoring core reads
// the timeline, zipcode, and contact flags.
type OnboardingProfile struct {
	ID     uint      `gorm:"primaryKey" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// TimelineMonths is the user's stated purchase horizon. Nil means not
	// yet answered.
	TimelineMonths *int    `json:"timeline_months,omitempty"`
	Zipcode        *string `gorm:"type:varchar(16)" json:"zipcode,omitempty"`
	BudgetAmount   *int64  `json:"budget_amount,omitempty"`

	HasRealtor         bool `gorm:"not null;default:false" json:"has_realtor"`
	HasLoanOfficer     bool `gorm:"not null;default:false" json:"has_loan_officer"`
	WantsExpertContact bool `gorm:"not null;default:false" json:"wants_expert_contact"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (OnboardingProfile) TableName() string {
	return "onboarding_profiles"
}
