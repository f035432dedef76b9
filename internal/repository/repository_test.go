package repository

import (
	"testing"
	"time"

	"github.com/ndmanh/studynotes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Student{},
		&model.Module{},
		&model.Note{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizAttempt{},
	))
	return db
}

// seedNote creates a student with one module and one note and returns them.
func seedNote(t *testing.T, db *gorm.DB) (*model.Student, *model.Module, *model.Note) {
	t.Helper()
	student := &model.Student{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(student).Error)
	module := &model.Module{StudentID: student.ID, Name: "Biology"}
	require.NoError(t, db.Create(module).Error)
	note := &model.Note{
		StudentID: student.ID,
		ModuleID:  module.ID,
		Title:     "Photosynthesis",
		Content:   "Plants convert light into chemical energy.",
	}
	require.NoError(t, db.Create(note).Error)
	return student, module, note
}

func sampleQuiz(noteID uint) *model.Quiz {
	return &model.Quiz{
		NoteID:      noteID,
		Title:       "Quiz: Photosynthesis",
		Description: "Auto-generated quiz",
		Questions: []model.Question{
			{
				QuestionText: "Where does photosynthesis happen?",
				QuestionType: "multiple_choice",
				Difficulty:   "medium",
				Answers: []model.Answer{
					{AnswerText: "Chloroplasts", IsCorrect: true, Explanation: "Chloroplasts hold chlorophyll."},
					{AnswerText: "Mitochondria", IsCorrect: false},
					{AnswerText: "Nucleus", IsCorrect: false},
					{AnswerText: "Ribosomes", IsCorrect: false},
				},
			},
			{
				QuestionText: "What gas is consumed?",
				QuestionType: "multiple_choice",
				Difficulty:   "medium",
				Answers: []model.Answer{
					{AnswerText: "Oxygen", IsCorrect: false},
					{AnswerText: "Carbon dioxide", IsCorrect: true, Explanation: "CO2 is fixed into sugar."},
					{AnswerText: "Nitrogen", IsCorrect: false},
					{AnswerText: "Hydrogen", IsCorrect: false},
				},
			},
		},
	}
}

func TestQuizRepository_CreateAndFindWithQuestions(t *testing.T) {
	db := newTestDB(t)
	_, _, note := seedNote(t, db)
	repo := NewQuizRepository(db)

	quiz := sampleQuiz(note.ID)
	require.NoError(t, repo.Create(quiz))
	require.NotZero(t, quiz.ID)

	loaded, err := repo.FindByIDWithQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)
	assert.Len(t, loaded.Questions[0].Answers, 4)
	assert.Len(t, loaded.Questions[1].Answers, 4)
	assert.Equal(t, "Quiz: Photosynthesis", loaded.Title)
}

func TestQuizRepository_DeleteRemovesQuestionsAndAnswers(t *testing.T) {
	db := newTestDB(t)
	_, _, note := seedNote(t, db)
	repo := NewQuizRepository(db)

	quiz := sampleQuiz(note.ID)
	require.NoError(t, repo.Create(quiz))

	require.NoError(t, repo.Delete(quiz.ID))

	_, err := repo.FindByIDWithQuestions(quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var questionCount, answerCount int64
	require.NoError(t, db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error)
	assert.Zero(t, questionCount)
	require.NoError(t, db.Model(&model.Answer{}).Count(&answerCount).Error)
	assert.Zero(t, answerCount)
}

func TestQuizRepository_FindAllByNote_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	_, _, note := seedNote(t, db)
	repo := NewQuizRepository(db)

	first := &model.Quiz{NoteID: note.ID, Title: "old", CreatedAt: time.Now().Add(-time.Hour)}
	second := &model.Quiz{NoteID: note.ID, Title: "new", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	quizzes, err := repo.FindAllByNote(note.ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "new", quizzes[0].Title)
	assert.Equal(t, "old", quizzes[1].Title)
}

func TestQuizRepository_FindAllForStudent_JoinsNoteAndModule(t *testing.T) {
	db := newTestDB(t)
	student, module, note := seedNote(t, db)
	repo := NewQuizRepository(db)

	quiz := sampleQuiz(note.ID)
	require.NoError(t, repo.Create(quiz))

	// Another student's quiz must not appear.
	otherStudent := &model.Student{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(otherStudent).Error)
	otherModule := &model.Module{StudentID: otherStudent.ID, Name: "History"}
	require.NoError(t, db.Create(otherModule).Error)
	otherNote := &model.Note{StudentID: otherStudent.ID, ModuleID: otherModule.ID, Title: "WW2", Content: "..."}
	require.NoError(t, db.Create(otherNote).Error)
	require.NoError(t, repo.Create(&model.Quiz{NoteID: otherNote.ID, Title: "other"}))

	rows, err := repo.FindAllForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, quiz.ID, rows[0].Quiz.ID)
	assert.Equal(t, note.Title, rows[0].NoteTitle)
	assert.Equal(t, module.Name, rows[0].ModuleName)
	assert.Equal(t, 2, rows[0].QuestionCount)
}

func TestAttemptRepository_FindLatestByCompletionTime(t *testing.T) {
	db := newTestDB(t)
	student, _, note := seedNote(t, db)
	quizRepo := NewQuizRepository(db)
	attemptRepo := NewAttemptRepository(db)

	quiz := sampleQuiz(note.ID)
	require.NoError(t, quizRepo.Create(quiz))

	earlier := time.Now().Add(-time.Hour)
	later := time.Now()
	require.NoError(t, attemptRepo.Create(&model.QuizAttempt{
		StudentID: student.ID, QuizID: quiz.ID, Score: 40, TotalQuestions: 5, CompletedAt: earlier,
	}))
	require.NoError(t, attemptRepo.Create(&model.QuizAttempt{
		StudentID: student.ID, QuizID: quiz.ID, Score: 80, TotalQuestions: 5, CompletedAt: later,
	}))

	latest, err := attemptRepo.FindLatest(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, latest.Score)

	history, err := attemptRepo.FindAllByStudentAndQuiz(student.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 80.0, history[0].Score)
	assert.Equal(t, 40.0, history[1].Score)
}

func TestAttemptRepository_FindLatest_NoneRecorded(t *testing.T) {
	db := newTestDB(t)
	student, _, note := seedNote(t, db)
	quizRepo := NewQuizRepository(db)
	attemptRepo := NewAttemptRepository(db)

	quiz := sampleQuiz(note.ID)
	require.NoError(t, quizRepo.Create(quiz))

	_, err := attemptRepo.FindLatest(student.ID, quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_OwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	student, _, note := seedNote(t, db)
	repo := NewNoteRepository(db)

	found, err := repo.FindByIDForStudent(note.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Title, found.Title)

	// A different student id behaves like not-found.
	_, err = repo.FindByIDForStudent(note.ID, student.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepository_UpdateSummary(t *testing.T) {
	db := newTestDB(t)
	student, _, note := seedNote(t, db)
	repo := NewNoteRepository(db)

	at := time.Now()
	require.NoError(t, repo.UpdateSummary(note.ID, "Plants make sugar from light.", at))

	updated, err := repo.FindByIDForStudent(note.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Summary)
	assert.Equal(t, "Plants make sugar from light.", *updated.Summary)
	require.NotNil(t, updated.SummaryGeneratedAt)
}
