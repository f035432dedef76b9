package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService owns the quiz lifecycle: generation from a note, retrieval,
// listing and deletion. The student id is threaded explicitly through every
// operation; a quiz belonging to someone else's note behaves as not-found.
type QuizService interface {
	GenerateQuizForNote(ctx context.Context, studentID, noteID uint, req dto.GenerateQuizDTO) (*dto.QuizDTO, error)
	GetQuiz(studentID, quizID uint) (*dto.QuizDTO, error)
	GetQuizzesForNote(studentID, noteID uint) ([]dto.QuizDTO, error)
	GetAllQuizzesForStudent(studentID uint) ([]dto.QuizSummaryDTO, error)
	DeleteQuiz(studentID, quizID uint) error
}

type quizService struct {
	quizRepo    repository.QuizRepository
	noteRepo    repository.NoteRepository
	attemptRepo repository.AttemptRepository
	generator   QuizGeneratorService
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	noteRepo repository.NoteRepository,
	attemptRepo repository.AttemptRepository,
	generator QuizGeneratorService,
) QuizService {
	return &quizService{
		quizRepo:    quizRepo,
		noteRepo:    noteRepo,
		attemptRepo: attemptRepo,
		generator:   generator,
	}
}

func (s *quizService) GenerateQuizForNote(ctx context.Context, studentID, noteID uint, req dto.GenerateQuizDTO) (*dto.QuizDTO, error) {
	note, err := s.noteRepo.FindByIDForStudent(noteID, studentID)
	if err != nil {
		log.Warn().Err(err).Uint("noteID", noteID).Uint("studentID", studentID).Msg("GenerateQuizForNote: note not found")
		return nil, fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}

	count := req.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}

	var previous []model.Quiz
	if req.Regenerate {
		// Snapshot the quizzes to replace before creating the new one, so a
		// failure between create and delete leaves the note with at least
		// one quiz rather than none.
		previous, err = s.quizRepo.FindAllByNote(note.ID)
		if err != nil {
			return nil, fmt.Errorf("error listing quizzes for note %d: %w", note.ID, err)
		}
	}

	generated := s.generator.GenerateQuiz(ctx, note.Title, note.Content, count)

	quiz := model.Quiz{
		NoteID:      note.ID,
		Title:       fmt.Sprintf("Quiz: %s", note.Title),
		Description: fmt.Sprintf("Auto-generated quiz with %d questions based on your note.", len(generated.Questions)),
	}
	for _, gq := range generated.Questions {
		question := model.Question{
			QuestionText: gq.Question,
			QuestionType: "multiple_choice",
			Difficulty:   "medium",
		}
		for _, ga := range gq.Answers {
			answer := model.Answer{
				AnswerText: ga.Text,
				IsCorrect:  ga.IsCorrect,
			}
			if ga.IsCorrect {
				answer.Explanation = gq.Explanation
			}
			question.Answers = append(question.Answers, answer)
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Uint("noteID", note.ID).Msg("GenerateQuizForNote: failed to store generated quiz")
		return nil, fmt.Errorf("database error storing quiz: %w", err)
	}

	for _, old := range previous {
		if old.ID == quiz.ID {
			continue
		}
		if err := s.quizRepo.Delete(old.ID); err != nil {
			// The new quiz exists; losing the cleanup only leaves history
			// behind, so log and continue.
			log.Error().Err(err).Uint("quizID", old.ID).Msg("GenerateQuizForNote: failed to delete replaced quiz")
		}
	}

	created, err := s.quizRepo.FindByIDWithQuestions(quiz.ID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("GenerateQuizForNote: failed to reload created quiz")
		return nil, fmt.Errorf("error loading created quiz: %w", err)
	}
	return quizToDTO(created, false), nil
}

func (s *quizService) GetQuiz(studentID, quizID uint) (*dto.QuizDTO, error) {
	quiz, err := s.findOwnedQuiz(studentID, quizID)
	if err != nil {
		return nil, err
	}
	return quizToDTO(quiz, false), nil
}

func (s *quizService) GetQuizzesForNote(studentID, noteID uint) ([]dto.QuizDTO, error) {
	if _, err := s.noteRepo.FindByIDForStudent(noteID, studentID); err != nil {
		return nil, fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}
	quizzes, err := s.quizRepo.FindAllByNote(noteID)
	if err != nil {
		log.Error().Err(err).Uint("noteID", noteID).Msg("GetQuizzesForNote: repository error")
		return nil, fmt.Errorf("error fetching quizzes for note %d: %w", noteID, err)
	}

	dtos := make([]dto.QuizDTO, 0, len(quizzes))
	for i := range quizzes {
		var d dto.QuizDTO
		if err := copier.Copy(&d, &quizzes[i]); err != nil {
			log.Error().Err(err).Uint("quizID", quizzes[i].ID).Msg("GetQuizzesForNote: copy error")
			continue
		}
		d.Questions = nil
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *quizService) GetAllQuizzesForStudent(studentID uint) ([]dto.QuizSummaryDTO, error) {
	rows, err := s.quizRepo.FindAllForStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetAllQuizzesForStudent: repository error")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	dtos := make([]dto.QuizSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summary := dto.QuizSummaryDTO{
			ID:            row.Quiz.ID,
			NoteID:        row.Quiz.NoteID,
			Title:         row.Quiz.Title,
			Description:   row.Quiz.Description,
			NoteTitle:     row.NoteTitle,
			ModuleName:    row.ModuleName,
			QuestionCount: row.QuestionCount,
			CreatedAt:     row.Quiz.CreatedAt,
		}

		// Decorate with the latest attempt. One extra lookup per quiz is
		// acceptable at the expected list sizes.
		latest, err := s.attemptRepo.FindLatest(studentID, row.Quiz.ID)
		if err == nil {
			var a dto.AttemptDTO
			if errCp := copier.Copy(&a, latest); errCp == nil {
				summary.LatestAttempt = &a
			}
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *quizService) DeleteQuiz(studentID, quizID uint) error {
	if _, err := s.findOwnedQuiz(studentID, quizID); err != nil {
		return err
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("DeleteQuiz: repository error")
		return fmt.Errorf("database error deleting quiz %d: %w", quizID, err)
	}
	return nil
}

// findOwnedQuiz loads a quiz with its questions and verifies that its note
// belongs to the requesting student.
func (s *quizService) findOwnedQuiz(studentID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	if _, err := s.noteRepo.FindByIDForStudent(quiz.NoteID, studentID); err != nil {
		return nil, fmt.Errorf("quiz not found with ID %d: %w", quizID, err)
	}
	return quiz, nil
}

// quizToDTO maps a quiz to its response shape. With revealCorrect false the
// is-correct flags and explanations are stripped, for students taking the
// quiz.
func quizToDTO(quiz *model.Quiz, revealCorrect bool) *dto.QuizDTO {
	d := &dto.QuizDTO{
		ID:          quiz.ID,
		NoteID:      quiz.NoteID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CreatedAt:   quiz.CreatedAt,
	}
	for _, q := range quiz.Questions {
		qd := dto.QuestionDTO{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Difficulty:   q.Difficulty,
		}
		for _, a := range q.Answers {
			ad := dto.AnswerDTO{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				AnswerText: a.AnswerText,
			}
			if revealCorrect {
				isCorrect := a.IsCorrect
				ad.IsCorrect = &isCorrect
				ad.Explanation = a.Explanation
			}
			qd.Answers = append(qd.Answers, ad)
		}
		d.Questions = append(d.Questions, qd)
	}
	return d
}
