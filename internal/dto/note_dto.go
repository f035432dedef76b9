package dto

import "time"

type ModuleCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type ModuleDTO struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NoteCreateDTO struct {
	ModuleID uint   `json:"module_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
}

type NoteUpdateDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteDTO struct {
	ID                 uint       `json:"id"`
	StudentID          uint       `json:"student_id"`
	ModuleID           uint       `json:"module_id"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Summary            *string    `json:"summary,omitempty"`
	SummaryGeneratedAt *time.Time `json:"summary_generated_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NoteSummaryDTO is the response of the AI summarization endpoint.
type NoteSummaryDTO struct {
	NoteID      uint      `json:"note_id"`
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}
