package model

import (
	"time"

	"gorm.io/gorm"
)

// Module is a course/subject grouping that owns notes.
type Module struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	StudentID   uint           `json:"student_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Notes       []Note         `json:"notes,omitempty" gorm:"foreignKey:ModuleID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
