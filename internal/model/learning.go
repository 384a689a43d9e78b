package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the lifecycle of a lesson or module for one user.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// LessonProgress is written by the learning subsystem; read-only here.
type LessonProgress struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_lesson_progress_user_lesson,unique" json:"user_id"`
	LessonID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_lesson_progress_user_lesson,unique" json:"lesson_id"`
	ModuleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"module_id"`
	Status      ProgressStatus `gorm:"type:varchar(16);not null" json:"status"`
	ProgressPct int            `gorm:"not null;default:0" json:"progress_pct"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// ModuleProgress is written by the learning subsystem; read-only here.
type ModuleProgress struct {
	ID          uint           `gorm:"primaryKey" json:"-"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_progress_user_module,unique" json:"user_id"`
	ModuleID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_module_progress_user_module,unique" json:"module_id"`
	Status      ProgressStatus `gorm:"type:varchar(16);not null" json:"status"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}

// QuizAttempt is one graded quiz submission.
type QuizAttempt struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID        uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Score         int       `gorm:"not null" json:"score"`
	Passed        bool      `gorm:"not null" json:"passed"`
	AttemptNumber int       `gorm:"not null;default:1" json:"attempt_number"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// MiniGameAttempt is one mini-game play result.
type MiniGameAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;index" json:"game_id"`
	Score     int       `gorm:"not null" json:"score"`
	Passed    bool      `gorm:"not null" json:"passed"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (MiniGameAttempt) TableName() string {
	return "minigame_attempts"
}
