package repository

import (
	"github.com/ndmanh/studynotes/internal/model"
	"gorm.io/gorm"
)

// QuizWithContext is one row of the student quiz listing, carrying the note
// and module the quiz was generated from.
type QuizWithContext struct {
	model.Quiz
	NoteTitle     string
	ModuleName    string
	QuestionCount int
}

type QuizRepository interface {
	// Create stores the quiz with its questions and answers in one
	// transaction; no partial quiz is ever visible to readers.
	Create(quiz *model.Quiz) error
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindAllByNote(noteID uint) ([]model.Quiz, error)
	FindAllForStudent(studentID uint) ([]QuizWithContext, error)
	// Delete removes the quiz together with its questions and answers
	// atomically.
	Delete(id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates the associated questions and answers with the quiz.
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_answers.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllByNote(noteID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Where("note_id = ?", noteID).Order("created_at desc").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindAllForStudent(studentID uint) ([]QuizWithContext, error) {
	var results []QuizWithContext
	err := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, notes.title as note_title, modules.name as module_name, " +
			"(SELECT COUNT(*) FROM quiz_questions WHERE quiz_questions.quiz_id = quizzes.id AND quiz_questions.deleted_at IS NULL) as question_count").
		Joins("JOIN notes ON notes.id = quizzes.note_id AND notes.deleted_at IS NULL").
		Joins("JOIN modules ON modules.id = notes.module_id AND modules.deleted_at IS NULL").
		Where("notes.student_id = ? AND quizzes.deleted_at IS NULL", studentID).
		Order("quizzes.created_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", id),
		).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}
