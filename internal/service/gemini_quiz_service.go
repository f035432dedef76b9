package service

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/ndmanh/studynotes/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const (
	// DefaultQuestionCount is used when the caller does not ask for a
	// specific number of questions.
	DefaultQuestionCount = 5
	// AnswersPerQuestion is fixed for multiple choice quizzes.
	AnswersPerQuestion = 4

	llmOverallTimeout = 60 * time.Second
	llmConnectTimeout = 10 * time.Second
)

// GeneratedAnswer, GeneratedQuestion and GeneratedQuiz mirror the JSON
// shape the LLM is instructed to return.
type GeneratedAnswer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type GeneratedQuestion struct {
	Question    string            `json:"question"`
	Answers     []GeneratedAnswer `json:"answers"`
	Explanation string            `json:"explanation"`
}

type GeneratedQuiz struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// QuizGeneratorService turns a note into a quiz payload. GenerateQuiz never
// fails: any upstream error degrades to the built-in fallback quiz.
type QuizGeneratorService interface {
	GenerateQuiz(ctx context.Context, noteTitle, noteContent string, questionCount int) *GeneratedQuiz
	GenerateSummary(ctx context.Context, noteTitle, noteContent string) (string, error)
}

type geminiQuizService struct {
	model *genai.GenerativeModel
	cfg   *config.Config
}

func NewGeminiQuizService(cfg *config.Config) (QuizGeneratorService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Quiz generation will always use the fallback quiz.")
		return &geminiQuizService{cfg: cfg, model: nil}, nil
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: llmConnectTimeout}).DialContext,
	}
	if cfg.Gemini.InsecureSkipVerify {
		log.Warn().Msg("TLS certificate verification against the Gemini endpoint is DISABLED.")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	httpClient := &http.Client{
		Timeout:   llmOverallTimeout,
		Transport: transport,
	}

	// WithAPIKey must accompany WithHTTPClient: the SDK builds internal
	// sub-clients without the custom HTTP client, and those still need an
	// auth option or they go looking for default credentials.
	ctx := context.Background()
	client, err := genai.NewClient(ctx,
		option.WithAPIKey(cfg.Gemini.ApiKey),
		option.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetTopK(40)
	model.SetMaxOutputTokens(2048)

	return &geminiQuizService{model: model, cfg: cfg}, nil
}

func (s *geminiQuizService) GenerateQuiz(ctx context.Context, noteTitle, noteContent string, questionCount int) *GeneratedQuiz {
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}

	if s.model == nil {
		log.Warn().Str("noteTitle", noteTitle).Msg("Gemini client not initialized, returning fallback quiz")
		return FallbackQuiz(noteTitle)
	}

	prompt := buildQuizPrompt(noteTitle, noteContent, questionCount)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("noteTitle", noteTitle).Msg("Gemini API error during quiz generation, using fallback quiz")
		return FallbackQuiz(noteTitle)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Str("noteTitle", noteTitle).Msg("Gemini returned no candidates, using fallback quiz")
		return FallbackQuiz(noteTitle)
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}

	quiz, err := ParseGeneratedQuiz(raw.String(), questionCount)
	if err != nil {
		log.Warn().Err(err).Str("noteTitle", noteTitle).Str("rawResponse", truncate(raw.String(), 512)).
			Msg("Could not parse a valid quiz from the Gemini response, using fallback quiz")
		return FallbackQuiz(noteTitle)
	}

	log.Info().Str("noteTitle", noteTitle).Int("questions", len(quiz.Questions)).Msg("Quiz generated from note")
	return quiz
}

func (s *geminiQuizService) GenerateSummary(ctx context.Context, noteTitle, noteContent string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	var b strings.Builder
	b.WriteString("You are a study assistant. Summarize the following student note in 3-5 concise sentences, ")
	b.WriteString("keeping the key facts and definitions a student would need for revision.\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n\nNote:\n---\n%s\n---\n\nSummary:", noteTitle, noteContent))

	resp, err := s.model.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		log.Error().Err(err).Str("noteTitle", noteTitle).Msg("Gemini API error during summarization")
		return "", fmt.Errorf("gemini summarization failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var summary strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			summary.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(summary.String()) == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return strings.TrimSpace(summary.String()), nil
}

func buildQuizPrompt(noteTitle, noteContent string, questionCount int) string {
	var b strings.Builder
	b.WriteString("You are an expert quiz author for university students.\n")
	b.WriteString(fmt.Sprintf("Create a multiple choice quiz with exactly %d questions based on the study note below.\n\n", questionCount))
	b.WriteString(fmt.Sprintf("Note title: %s\n\nNote content:\n---\n%s\n---\n\n", noteTitle, noteContent))
	b.WriteString("Requirements:\n")
	b.WriteString(fmt.Sprintf("- Each question has exactly %d answer options.\n", AnswersPerQuestion))
	b.WriteString("- Exactly one option per question is correct.\n")
	b.WriteString("- Each question includes a short explanation of the correct answer.\n")
	b.WriteString("- Questions must be answerable from the note content alone.\n\n")
	b.WriteString("Respond with ONLY a JSON object, no markdown fences and no prose, in exactly this shape:\n")
	b.WriteString(`{"questions":[{"question":"...","answers":[{"text":"...","isCorrect":true},{"text":"...","isCorrect":false},{"text":"...","isCorrect":false},{"text":"...","isCorrect":false}],"explanation":"..."}]}`)
	return b.String()
}

// ParseGeneratedQuiz extracts the first JSON object from the raw LLM text,
// decodes it and validates the quiz shape, including that the model produced
// exactly the number of questions it was asked for. Anything malformed is
// rejected so the caller falls back to the canned quiz.
func ParseGeneratedQuiz(raw string, questionCount int) (*GeneratedQuiz, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		return nil, fmt.Errorf("undecodable quiz JSON: %w", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz JSON has no questions")
	}
	if questionCount > 0 && len(quiz.Questions) != questionCount {
		return nil, fmt.Errorf("quiz JSON has %d questions, want %d", len(quiz.Questions), questionCount)
	}

	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Answers) != AnswersPerQuestion {
			return nil, fmt.Errorf("question %d has %d answers, want %d", i, len(q.Answers), AnswersPerQuestion)
		}
		correct := 0
		for j, a := range q.Answers {
			if strings.TrimSpace(a.Text) == "" {
				return nil, fmt.Errorf("question %d answer %d has empty text", i, j)
			}
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, fmt.Errorf("question %d has %d correct answers, want exactly 1", i, correct)
		}
	}
	return &quiz, nil
}

// extractJSONObject returns the first balanced {...} region of the text.
// The scan is aware of JSON strings and escapes, so braces inside question
// text do not break the match.
func extractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}

// FallbackQuiz is the fixed generic study-skills quiz used whenever the LLM
// path fails. Only the note title is interpolated, into the first question.
func FallbackQuiz(noteTitle string) *GeneratedQuiz {
	return &GeneratedQuiz{
		Questions: []GeneratedQuestion{
			{
				Question: fmt.Sprintf("Which strategy is most effective when reviewing your notes on \"%s\"?", noteTitle),
				Answers: []GeneratedAnswer{
					{Text: "Re-reading the notes passively from start to finish", IsCorrect: false},
					{Text: "Testing yourself on the material without looking at the notes", IsCorrect: true},
					{Text: "Highlighting every sentence that seems important", IsCorrect: false},
					{Text: "Copying the notes out word for word", IsCorrect: false},
				},
				Explanation: "Active recall, retrieving information from memory, is far more effective than passive review techniques.",
			},
			{
				Question: "What is the main benefit of spacing study sessions over several days?",
				Answers: []GeneratedAnswer{
					{Text: "It reduces the total time needed to study", IsCorrect: false},
					{Text: "It strengthens long-term retention of the material", IsCorrect: true},
					{Text: "It makes cramming before exams unnecessary forever", IsCorrect: false},
					{Text: "It guarantees a perfect score on the quiz", IsCorrect: false},
				},
				Explanation: "Spaced repetition interrupts forgetting and consolidates memories better than massed practice.",
			},
			{
				Question: "When is the best time to create quiz questions from new material?",
				Answers: []GeneratedAnswer{
					{Text: "Shortly after first studying it, while it is fresh", IsCorrect: true},
					{Text: "Only the night before the exam", IsCorrect: false},
					{Text: "Never; quizzes should come from the teacher", IsCorrect: false},
					{Text: "After you have forgotten most of it", IsCorrect: false},
				},
				Explanation: "Writing questions soon after studying forces you to process the material and identify its key points.",
			},
			{
				Question: "Which habit most improves understanding of difficult concepts?",
				Answers: []GeneratedAnswer{
					{Text: "Explaining the concept in your own words", IsCorrect: true},
					{Text: "Reading the same paragraph repeatedly", IsCorrect: false},
					{Text: "Memorizing the exact wording of the textbook", IsCorrect: false},
					{Text: "Skipping it and hoping it is not on the test", IsCorrect: false},
				},
				Explanation: "Self-explanation exposes gaps in understanding that re-reading hides.",
			},
			{
				Question: "How should you handle questions you answered incorrectly on a practice quiz?",
				Answers: []GeneratedAnswer{
					{Text: "Ignore them and focus on what you already know", IsCorrect: false},
					{Text: "Review the related notes and retry the questions later", IsCorrect: true},
					{Text: "Assume the quiz was wrong", IsCorrect: false},
					{Text: "Memorize the letter of the correct option", IsCorrect: false},
				},
				Explanation: "Errors mark the material that needs another pass; revisiting it closes the gap.",
			},
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
