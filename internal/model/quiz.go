package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz belongs to exactly one note. A note may accumulate several quizzes
// across regenerations until old ones are deleted.
type Quiz struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	NoteID      uint           `json:"note_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Quiz) TableName() string { return "quizzes" }
