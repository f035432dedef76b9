package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one of the four options of a question. Exactly one per question
// carries IsCorrect=true; the generation adapter validates this before the
// quiz is stored.
type Answer struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	QuestionID  uint           `json:"question_id" gorm:"not null;index"`
	AnswerText  string         `json:"answer_text" gorm:"type:text;not null"`
	IsCorrect   bool           `json:"is_correct" gorm:"not null"`
	Explanation string         `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Answer) TableName() string { return "quiz_answers" }
