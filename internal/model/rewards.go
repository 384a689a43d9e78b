package model

import (
	"time"

	"github.com/google/uuid"
)

// CoinBalance is maintained by the rewards subsystem, one row per user.
type CoinBalance struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CurrentBalance int64     `gorm:"not null;default:0" json:"current_balance"`
	LifetimeEarned int64     `gorm:"not null;default:0" json:"lifetime_earned"`
	LifetimeSpent  int64     `gorm:"not null;default:0" json:"lifetime_spent"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (CoinBalance) TableName() string {
	return "coin_balances"
}

// BadgeRarity is the rewards subsystem's rarity ladder.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Rare reports whether the rarity counts as a rare-tier badge for tracking.
func (r BadgeRarity) Rare() bool {
	switch r {
	case RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// UserBadge is one badge awarded to a user.
type UserBadge struct {
	ID       uint        `gorm:"primaryKey" json:"-"`
	UserID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	BadgeID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"badge_id"`
	Rarity   BadgeRarity `gorm:"type:varchar(16);not null" json:"rarity"`
	EarnedAt time.Time   `gorm:"index" json:"earned_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// CouponRedemption is one reward-shop redemption.
type CouponRedemption struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CouponID  uuid.UUID `gorm:"type:uuid;not null" json:"coupon_id"`
	CoinCost  int64     `gorm:"not null" json:"coin_cost"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (CouponRedemption) TableName() string {
	return "coupon_redemptions"
}
