package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrEmptySubmission is returned when a submission carries no answers at
// all; nothing is graded or stored in that case.
var ErrEmptySubmission = errors.New("submission contains no answers")

type AttemptService interface {
	SubmitAttempt(studentID, quizID uint, req dto.SubmitAttemptDTO) (*dto.AttemptResultDTO, error)
	GetLatestAttempt(studentID, quizID uint) (*dto.AttemptDTO, error)
	GetAttemptHistory(studentID, quizID uint) ([]dto.AttemptDTO, error)
}

type attemptService struct {
	quizRepo    repository.QuizRepository
	noteRepo    repository.NoteRepository
	attemptRepo repository.AttemptRepository
	grader      GradingService
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	noteRepo repository.NoteRepository,
	attemptRepo repository.AttemptRepository,
	grader GradingService,
) AttemptService {
	return &attemptService{
		quizRepo:    quizRepo,
		noteRepo:    noteRepo,
		attemptRepo: attemptRepo,
		grader:      grader,
	}
}

func (s *attemptService) SubmitAttempt(studentID, quizID uint, req dto.SubmitAttemptDTO) (*dto.AttemptResultDTO, error) {
	if len(req.Answers) == 0 {
		return nil, ErrEmptySubmission
	}

	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: quiz not found")
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if _, err := s.noteRepo.FindByIDForStudent(quiz.NoteID, studentID); err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}

	grading := s.grader.Grade(quiz, req.Answers)

	attempt := model.QuizAttempt{
		StudentID:      studentID,
		QuizID:         quizID,
		Score:          grading.Percentage,
		TotalQuestions: grading.TotalQuestions,
		CompletedAt:    time.Now(),
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("studentID", studentID).Msg("SubmitAttempt: failed to record attempt")
		return nil, fmt.Errorf("database error recording attempt: %w", err)
	}

	log.Info().Uint("quizID", quizID).Uint("studentID", studentID).
		Int("score", grading.Score).Int("total", grading.TotalQuestions).Float64("percentage", grading.Percentage).
		Msg("Quiz attempt recorded")

	result := &dto.AttemptResultDTO{Grading: grading}
	if err := copier.Copy(&result.Attempt, &attempt); err != nil {
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}
	return result, nil
}

func (s *attemptService) GetLatestAttempt(studentID, quizID uint) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindLatest(studentID, quizID)
	if err != nil {
		return nil, fmt.Errorf("no attempt found for quiz %d: %w", quizID, err)
	}
	var d dto.AttemptDTO
	if err := copier.Copy(&d, attempt); err != nil {
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}
	return &d, nil
}

func (s *attemptService) GetAttemptHistory(studentID, quizID uint) ([]dto.AttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAllByStudentAndQuiz(studentID, quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("GetAttemptHistory: repository error")
		return nil, fmt.Errorf("error fetching attempts for quiz %d: %w", quizID, err)
	}
	dtos := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		var d dto.AttemptDTO
		if err := copier.Copy(&d, &attempts[i]); err != nil {
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
