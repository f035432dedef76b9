package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	QuizID       uint           `json:"quiz_id" gorm:"not null;index"`
	QuestionText string         `json:"question_text" gorm:"type:text;not null"`
	QuestionType string         `json:"question_type" gorm:"default:'multiple_choice'"`
	Difficulty   string         `json:"difficulty" gorm:"default:'medium'"`
	Answers      []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Question) TableName() string { return "quiz_questions" }
