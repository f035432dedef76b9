package service

import (
	"context"
	"testing"

	"github.com/ndmanh/studynotes/config"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
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

func seedStudentNote(t *testing.T, db *gorm.DB) (*model.Student, *model.Note) {
	t.Helper()
	student := &model.Student{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(student).Error)
	module := &model.Module{StudentID: student.ID, Name: "Chemistry"}
	require.NoError(t, db.Create(module).Error)
	note := &model.Note{
		StudentID: student.ID,
		ModuleID:  module.ID,
		Title:     "Atomic Structure",
		Content:   "Atoms consist of protons, neutrons and electrons.",
	}
	require.NoError(t, db.Create(note).Error)
	return student, note
}

// stubGenerator returns a fixed payload without touching the network.
type stubGenerator struct {
	quiz       *GeneratedQuiz
	summary    string
	summaryErr error
}

func (s *stubGenerator) GenerateQuiz(_ context.Context, noteTitle, _ string, _ int) *GeneratedQuiz {
	if s.quiz != nil {
		return s.quiz
	}
	return FallbackQuiz(noteTitle)
}

func (s *stubGenerator) GenerateSummary(_ context.Context, _, _ string) (string, error) {
	return s.summary, s.summaryErr
}

func twoQuestionPayload() *GeneratedQuiz {
	return &GeneratedQuiz{Questions: []GeneratedQuestion{
		{
			Question: "How many protons does hydrogen have?",
			Answers: []GeneratedAnswer{
				{Text: "One", IsCorrect: true},
				{Text: "Two", IsCorrect: false},
				{Text: "Zero", IsCorrect: false},
				{Text: "Eight", IsCorrect: false},
			},
			Explanation: "Hydrogen has atomic number 1.",
		},
		{
			Question: "Which particle is negatively charged?",
			Answers: []GeneratedAnswer{
				{Text: "Proton", IsCorrect: false},
				{Text: "Neutron", IsCorrect: false},
				{Text: "Electron", IsCorrect: true},
				{Text: "Photon", IsCorrect: false},
			},
			Explanation: "Electrons carry negative charge.",
		},
	}}
}

func newQuizServiceForTest(t *testing.T, db *gorm.DB, generator QuizGeneratorService) QuizService {
	t.Helper()
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewNoteRepository(db),
		repository.NewAttemptRepository(db),
		generator,
	)
}

func TestGenerateQuizForNote_PersistsGeneratedQuiz(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	svc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})

	quiz, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	assert.Equal(t, note.ID, quiz.NoteID)
	assert.Contains(t, quiz.Title, note.Title)
	require.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		require.Len(t, q.Answers, AnswersPerQuestion)
		for _, a := range q.Answers {
			// Correct flags stay hidden when a quiz is fetched for taking.
			assert.Nil(t, a.IsCorrect)
		}
	}

	var stored model.Quiz
	require.NoError(t, db.Preload("Questions.Answers").First(&stored, quiz.ID).Error)
	for _, q := range stored.Questions {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		assert.Equal(t, 1, correct)
	}
}

func TestGenerateQuizForNote_RegenerateReplacesOldQuiz(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	svc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})

	first, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	second, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{Regenerate: true})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	remaining, err := svc.GetQuizzesForNote(student.ID, note.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)

	_, err = svc.GetQuiz(student.ID, first.ID)
	assert.Error(t, err)
}

func TestGenerateQuizForNote_WithoutRegenerateKeepsHistory(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	svc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})

	_, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)
	_, err = svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	quizzes, err := svc.GetQuizzesForNote(student.ID, note.ID)
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)
}

func TestGenerateQuizForNote_OtherStudentsNoteNotFound(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	svc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})

	_, err := svc.GenerateQuizForNote(context.Background(), student.ID+99, note.ID, dto.GenerateQuizDTO{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGenerateQuizForNote_FallbackWhenGenerationUnavailable(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)

	// A real adapter without an API key behaves like one whose endpoint
	// failed: the fallback quiz is stored.
	generator, err := NewGeminiQuizService(&config.Config{})
	require.NoError(t, err)
	svc := newQuizServiceForTest(t, db, generator)

	quiz, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	require.Len(t, quiz.Questions, DefaultQuestionCount)
	assert.Contains(t, quiz.Questions[0].QuestionText, note.Title)
}

func TestDeleteQuiz_ThenGetNotFound(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	svc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})

	quiz, err := svc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(student.ID, quiz.ID))

	_, err = svc.GetQuiz(student.ID, quiz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetAllQuizzesForStudent_DecoratedWithLatestAttempt(t *testing.T) {
	db := newServiceTestDB(t)
	student, note := seedStudentNote(t, db)
	quizSvc := newQuizServiceForTest(t, db, &stubGenerator{quiz: twoQuestionPayload()})
	attemptSvc := NewAttemptService(
		repository.NewQuizRepository(db),
		repository.NewNoteRepository(db),
		repository.NewAttemptRepository(db),
		NewGradingService(),
	)

	quiz, err := quizSvc.GenerateQuizForNote(context.Background(), student.ID, note.ID, dto.GenerateQuizDTO{})
	require.NoError(t, err)

	summaries, err := quizSvc.GetAllQuizzesForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].LatestAttempt)
	assert.Equal(t, note.Title, summaries[0].NoteTitle)
	assert.Equal(t, "Chemistry", summaries[0].ModuleName)
	assert.Equal(t, 2, summaries[0].QuestionCount)

	// Submit one attempt, then the listing must carry it.
	selections := correctSelections(t, db, quiz.ID)
	_, err = attemptSvc.SubmitAttempt(student.ID, quiz.ID, dto.SubmitAttemptDTO{Answers: selections})
	require.NoError(t, err)

	summaries, err = quizSvc.GetAllQuizzesForStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].LatestAttempt)
	assert.Equal(t, 100.0, summaries[0].LatestAttempt.Score)
}

// correctSelections builds the answer map choosing the correct answer of
// every question of the quiz.
func correctSelections(t *testing.T, db *gorm.DB, quizID uint) map[uint]uint {
	t.Helper()
	var stored model.Quiz
	require.NoError(t, db.Preload("Questions.Answers").First(&stored, quizID).Error)
	selections := make(map[uint]uint)
	for _, q := range stored.Questions {
		for _, a := range q.Answers {
			if a.IsCorrect {
				selections[q.ID] = a.ID
			}
		}
	}
	return selections
}
