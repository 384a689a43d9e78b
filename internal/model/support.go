package model

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicket is written by the support subsystem; read-only here.
type SupportTicket struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject   string    `gorm:"type:varchar(255)" json:"subject"`
	Status    string    `gorm:"type:varchar(32);not null" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// CalculatorUsage records one use of an affordability/mortgage calculator.
type CalculatorUsage struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CalculatorType string    `gorm:"type:varchar(64);not null" json:"calculator_type"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (CalculatorUsage) TableName() string {
	return "calculator_usage"
}

// MaterialDownload records one educational-material download.
type MaterialDownload struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null" json:"material_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (MaterialDownload) TableName() string {
	return "material_downloads"
}
