package dto

import "time"

// GenerateQuizDTO is the request body for generating a quiz from a note.
type GenerateQuizDTO struct {
	QuestionCount int `json:"question_count" binding:"omitempty,min=1,max=20"`
	// Regenerate deletes the previous quizzes of the note after the new one
	// has been stored.
	Regenerate bool `json:"regenerate"`
}

type AnswerDTO struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	AnswerText string `json:"answer_text"`
	// IsCorrect and Explanation are only revealed in attempt results, not
	// when a quiz is fetched for taking.
	IsCorrect   *bool  `json:"is_correct,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type QuestionDTO struct {
	ID           uint        `json:"id"`
	QuizID       uint        `json:"quiz_id"`
	QuestionText string      `json:"question_text"`
	QuestionType string      `json:"question_type"`
	Difficulty   string      `json:"difficulty"`
	Answers      []AnswerDTO `json:"answers"`
}

type QuizDTO struct {
	ID          uint          `json:"id"`
	NoteID      uint          `json:"note_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// QuizSummaryDTO is one row of the student's quiz listing, joined with note
// and module context and decorated with the latest attempt, if any.
type QuizSummaryDTO struct {
	ID            uint        `json:"id"`
	NoteID        uint        `json:"note_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	NoteTitle     string      `json:"note_title"`
	ModuleName    string      `json:"module_name"`
	QuestionCount int         `json:"question_count"`
	CreatedAt     time.Time   `json:"created_at"`
	LatestAttempt *AttemptDTO `json:"latest_attempt,omitempty"`
}
