package dto

import "time"

// SubmitAttemptDTO maps question id -> selected answer id. Unanswered
// questions are simply absent from the map.
type SubmitAttemptDTO struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

type AttemptDTO struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	QuizID         uint      `json:"quiz_id"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// QuestionResultDTO is the per-question breakdown of a graded submission.
type QuestionResultDTO struct {
	QuestionID       uint   `json:"question_id"`
	QuestionText     string `json:"question_text"`
	SelectedAnswerID *uint  `json:"selected_answer_id"`
	CorrectAnswerID  *uint  `json:"correct_answer_id"`
	IsCorrect        bool   `json:"is_correct"`
	Explanation      string `json:"explanation,omitempty"`
}

type GradingResultDTO struct {
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	Percentage     float64             `json:"percentage"`
	Results        []QuestionResultDTO `json:"results"`
}

// AttemptResultDTO is returned after a submission: the stored attempt row
// plus the full grading breakdown.
type AttemptResultDTO struct {
	Attempt AttemptDTO       `json:"attempt"`
	Grading GradingResultDTO `json:"grading"`
}
