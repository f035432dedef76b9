package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/ndmanh/studynotes/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuizJSON = `{
	"questions": [
		{
			"question": "What does CPU stand for?",
			"answers": [
				{"text": "Central Processing Unit", "isCorrect": true},
				{"text": "Computer Personal Unit", "isCorrect": false},
				{"text": "Central Program Utility", "isCorrect": false},
				{"text": "Core Processing Unit", "isCorrect": false}
			],
			"explanation": "CPU is the Central Processing Unit."
		}
	]
}`

func TestParseGeneratedQuiz_Valid(t *testing.T) {
	quiz, err := ParseGeneratedQuiz(validQuizJSON, 1)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "What does CPU stand for?", quiz.Questions[0].Question)
	assert.Len(t, quiz.Questions[0].Answers, 4)
	assert.True(t, quiz.Questions[0].Answers[0].IsCorrect)
}

func TestParseGeneratedQuiz_SurroundedByProse(t *testing.T) {
	raw := "Sure! Here is your quiz:\n```json\n" + validQuizJSON + "\n```\nGood luck!"
	quiz, err := ParseGeneratedQuiz(raw, 1)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 1)
}

func TestParseGeneratedQuiz_NoJSON(t *testing.T) {
	_, err := ParseGeneratedQuiz("I cannot help with that.", 1)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_InvalidJSON(t *testing.T) {
	_, err := ParseGeneratedQuiz(`{"questions": [}`, 1)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_MissingQuestionsKey(t *testing.T) {
	_, err := ParseGeneratedQuiz(`{"items": []}`, 1)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_WrongAnswerCount(t *testing.T) {
	raw := `{"questions":[{"question":"q","answers":[{"text":"a","isCorrect":true},{"text":"b","isCorrect":false}],"explanation":"e"}]}`
	_, err := ParseGeneratedQuiz(raw, 1)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_WrongQuestionCountRejected(t *testing.T) {
	// One question back when five were requested: reject, so the caller
	// falls back instead of storing a short quiz.
	_, err := ParseGeneratedQuiz(validQuizJSON, 5)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_MultipleCorrectAnswersRejected(t *testing.T) {
	raw := `{"questions":[{"question":"q","answers":[
		{"text":"a","isCorrect":true},{"text":"b","isCorrect":true},
		{"text":"c","isCorrect":false},{"text":"d","isCorrect":false}],"explanation":"e"}]}`
	_, err := ParseGeneratedQuiz(raw, 1)
	assert.Error(t, err)
}

func TestParseGeneratedQuiz_NoCorrectAnswerRejected(t *testing.T) {
	raw := `{"questions":[{"question":"q","answers":[
		{"text":"a","isCorrect":false},{"text":"b","isCorrect":false},
		{"text":"c","isCorrect":false},{"text":"d","isCorrect":false}],"explanation":"e"}]}`
	_, err := ParseGeneratedQuiz(raw, 1)
	assert.Error(t, err)
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	raw := `prefix {"questions":[{"question":"use {braces} and \"quotes\"","answers":[]}]} suffix`
	payload, err := extractJSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[{"question":"use {braces} and \"quotes\"","answers":[]}]}`, payload)
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	_, err := extractJSONObject(`{"questions": [`)
	assert.Error(t, err)
}

func TestFallbackQuiz_Shape(t *testing.T) {
	quiz := FallbackQuiz("Photosynthesis")

	require.Len(t, quiz.Questions, DefaultQuestionCount)
	assert.Contains(t, quiz.Questions[0].Question, "Photosynthesis")
	for i, q := range quiz.Questions {
		assert.Len(t, q.Answers, AnswersPerQuestion, "question %d", i)
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		assert.Equal(t, 1, correct, "question %d", i)
		assert.NotEmpty(t, q.Explanation, "question %d", i)
	}
}

func TestGenerateQuiz_WithoutClientReturnsFallback(t *testing.T) {
	// No API key configured: the adapter must degrade to the fallback quiz
	// instead of failing, the same behavior as a timed-out endpoint.
	svc, err := NewGeminiQuizService(&config.Config{})
	require.NoError(t, err)

	quiz := svc.GenerateQuiz(context.Background(), "Linear Algebra", "Matrices and vectors.", 7)

	require.NotNil(t, quiz)
	assert.Len(t, quiz.Questions, DefaultQuestionCount)
	assert.Contains(t, quiz.Questions[0].Question, "Linear Algebra")
}

func TestNewGeminiQuizService_WithAPIKey(t *testing.T) {
	// Client construction with a configured key must succeed without any
	// ambient Google credentials; a constructor error here would keep the
	// whole application from starting.
	cfg := &config.Config{Gemini: config.Gemini{ApiKey: "test-key", Model: "gemini-1.5-flash"}}
	svc, err := NewGeminiQuizService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestGenerateSummary_WithoutClientFails(t *testing.T) {
	svc, err := NewGeminiQuizService(&config.Config{})
	require.NoError(t, err)

	_, err = svc.GenerateSummary(context.Background(), "title", "content")
	assert.Error(t, err)
}

func TestBuildQuizPrompt_EmbedsNoteAndCount(t *testing.T) {
	prompt := buildQuizPrompt("Cell Biology", "Mitochondria produce ATP.", 3)

	assert.Contains(t, prompt, "Cell Biology")
	assert.Contains(t, prompt, "Mitochondria produce ATP.")
	assert.Contains(t, prompt, fmt.Sprintf("exactly %d questions", 3))
}
