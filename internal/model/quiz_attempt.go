package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is append-only: one row per submission, never updated.
// "Latest" means highest CompletedAt.
type QuizAttempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	StudentID      uint           `json:"student_id" gorm:"not null;index"`
	QuizID         uint           `json:"quiz_id" gorm:"not null;index"`
	Score          float64        `json:"score" gorm:"not null"` // percentage, 0-100
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	CompletedAt    time.Time      `json:"completed_at" gorm:"autoCreateTime;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (QuizAttempt) TableName() string { return "quiz_attempts" }
