package service

import (
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
)

// GradingService scores a submitted answer set against the stored quiz.
// It performs no I/O; recording the attempt is the caller's job.
type GradingService interface {
	Grade(quiz *model.Quiz, selections map[uint]uint) dto.GradingResultDTO
}

type gradingService struct{}

func NewGradingService() GradingService {
	return &gradingService{}
}

func (s *gradingService) Grade(quiz *model.Quiz, selections map[uint]uint) dto.GradingResultDTO {
	result := dto.GradingResultDTO{
		TotalQuestions: len(quiz.Questions),
		Results:        make([]dto.QuestionResultDTO, 0, len(quiz.Questions)),
	}

	for _, question := range quiz.Questions {
		qr := dto.QuestionResultDTO{
			QuestionID:   question.ID,
			QuestionText: question.QuestionText,
		}

		var correctAnswer *model.Answer
		for i := range question.Answers {
			if question.Answers[i].IsCorrect {
				correctAnswer = &question.Answers[i]
				break
			}
		}
		if correctAnswer != nil {
			id := correctAnswer.ID
			qr.CorrectAnswerID = &id
			qr.Explanation = correctAnswer.Explanation
		}

		if selectedID, answered := selections[question.ID]; answered {
			// Only count a selection that actually belongs to the question.
			for i := range question.Answers {
				if question.Answers[i].ID == selectedID {
					id := selectedID
					qr.SelectedAnswerID = &id
					break
				}
			}
		}

		if qr.SelectedAnswerID != nil && correctAnswer != nil && *qr.SelectedAnswerID == correctAnswer.ID {
			qr.IsCorrect = true
			result.Score++
		}
		result.Results = append(result.Results, qr)
	}

	if result.TotalQuestions > 0 {
		result.Percentage = float64(result.Score) / float64(result.TotalQuestions) * 100
	}
	return result
}
