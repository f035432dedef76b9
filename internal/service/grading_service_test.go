package service

import (
	"testing"

	"github.com/ndmanh/studynotes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mcq builds a question with four answers; the answer at correctIdx is
// flagged correct. Answer IDs are baseID+1..baseID+4.
func mcq(id, baseID uint, text string, correctIdx int) model.Question {
	q := model.Question{ID: id, QuestionText: text}
	for i := 0; i < 4; i++ {
		q.Answers = append(q.Answers, model.Answer{
			ID:          baseID + uint(i) + 1,
			QuestionID:  id,
			AnswerText:  "option",
			IsCorrect:   i == correctIdx,
			Explanation: "because",
		})
	}
	return q
}

func TestGrade_AllCorrect(t *testing.T) {
	grader := NewGradingService()
	quiz := &model.Quiz{Questions: []model.Question{
		mcq(1, 10, "q1", 0),
		mcq(2, 20, "q2", 1),
		mcq(3, 30, "q3", 2),
	}}

	result := grader.Grade(quiz, map[uint]uint{1: 11, 2: 22, 3: 33})

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 100.0, result.Percentage)
	require.Len(t, result.Results, 3)
	for _, qr := range result.Results {
		assert.True(t, qr.IsCorrect)
	}
}

func TestGrade_MixedAndUnanswered(t *testing.T) {
	grader := NewGradingService()
	quiz := &model.Quiz{Questions: []model.Question{
		mcq(1, 10, "q1", 0), // answered correctly
		mcq(2, 20, "q2", 0), // answered incorrectly
		mcq(3, 30, "q3", 0), // unanswered
		mcq(4, 40, "q4", 0), // unanswered
	}}

	result := grader.Grade(quiz, map[uint]uint{1: 11, 2: 22})

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 25.0, result.Percentage)
	require.Len(t, result.Results, 4)

	assert.True(t, result.Results[0].IsCorrect)
	assert.False(t, result.Results[1].IsCorrect)

	// Unanswered questions count as wrong with no selection recorded.
	assert.False(t, result.Results[2].IsCorrect)
	assert.Nil(t, result.Results[2].SelectedAnswerID)
	require.NotNil(t, result.Results[2].CorrectAnswerID)
	assert.Equal(t, uint(31), *result.Results[2].CorrectAnswerID)
}

func TestGrade_EmptyQuiz(t *testing.T) {
	grader := NewGradingService()

	result := grader.Grade(&model.Quiz{}, map[uint]uint{})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Empty(t, result.Results)
}

func TestGrade_Idempotent(t *testing.T) {
	grader := NewGradingService()
	quiz := &model.Quiz{Questions: []model.Question{
		mcq(1, 10, "q1", 0),
		mcq(2, 20, "q2", 3),
	}}
	selections := map[uint]uint{1: 11, 2: 21}

	first := grader.Grade(quiz, selections)
	second := grader.Grade(quiz, selections)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Equal(t, first.Results, second.Results)
}

func TestGrade_SelectionFromAnotherQuestionIgnored(t *testing.T) {
	grader := NewGradingService()
	quiz := &model.Quiz{Questions: []model.Question{
		mcq(1, 10, "q1", 0),
		mcq(2, 20, "q2", 0),
	}}

	// Answer 21 is correct for question 2 but submitted for question 1.
	result := grader.Grade(quiz, map[uint]uint{1: 21})

	assert.Equal(t, 0, result.Score)
	assert.Nil(t, result.Results[0].SelectedAnswerID)
}

func TestGrade_NoCorrectAnswerFlagged(t *testing.T) {
	grader := NewGradingService()
	q := model.Question{ID: 1, QuestionText: "q1"}
	for i := uint(0); i < 4; i++ {
		q.Answers = append(q.Answers, model.Answer{ID: 11 + i, QuestionID: 1, AnswerText: "option"})
	}
	quiz := &model.Quiz{Questions: []model.Question{q}}

	result := grader.Grade(quiz, map[uint]uint{1: 11})

	assert.Equal(t, 0, result.Score)
	assert.Nil(t, result.Results[0].CorrectAnswerID)
	require.NotNil(t, result.Results[0].SelectedAnswerID)
	assert.False(t, result.Results[0].IsCorrect)
}

func TestGrade_ExplanationComesFromCorrectAnswer(t *testing.T) {
	grader := NewGradingService()
	quiz := &model.Quiz{Questions: []model.Question{mcq(1, 10, "q1", 2)}}

	result := grader.Grade(quiz, map[uint]uint{})

	assert.Equal(t, "because", result.Results[0].Explanation)
	require.NotNil(t, result.Results[0].CorrectAnswerID)
	assert.Equal(t, uint(13), *result.Results[0].CorrectAnswerID)
}
