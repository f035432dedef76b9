package model

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	StudentID          uint           `json:"student_id" gorm:"not null;index"`
	ModuleID           uint           `json:"module_id" gorm:"not null;index"`
	Module             Module         `json:"module,omitempty" gorm:"foreignKey:ModuleID"`
	Title              string         `json:"title" gorm:"not null"`
	Content            string         `json:"content" gorm:"type:text"`
	Summary            *string        `json:"summary,omitempty" gorm:"type:text"`
	SummaryGeneratedAt *time.Time     `json:"summary_generated_at,omitempty"`
	Quizzes            []Quiz         `json:"quizzes,omitempty" gorm:"foreignKey:NoteID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
