package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/middleware"
	"github.com/ndmanh/studynotes/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuizController struct {
	quizService    service.QuizService
	attemptService service.AttemptService
}

func NewQuizController(quizService service.QuizService, attemptService service.AttemptService) *QuizController {
	return &QuizController{quizService: quizService, attemptService: attemptService}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a note
// @Description Builds a multiple choice quiz from the note content via the AI service. Falls back to a generic study-skills quiz when generation fails, so this endpoint always produces a quiz for an existing note.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param note_id path int true "Note ID"
// @Param options body dto.GenerateQuizDTO false "Question count and regeneration flag"
// @Success 201 {object} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Security BearerAuth
// @Router /notes/{note_id}/quizzes [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	noteID, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	var req dto.GenerateQuizDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.quizService.GenerateQuizForNote(ctx.Request.Context(), middleware.StudentID(ctx), noteID, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to generate quiz, please try again")
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Returns the quiz for taking; correct-answer flags are not included.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parsePathID(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(middleware.StudentID(ctx), quizID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// GetQuizzesForNote godoc
// @Summary List quizzes generated from a note
// @Tags Quizzes
// @Produce json
// @Param note_id path int true "Note ID"
// @Success 200 {array} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Security BearerAuth
// @Router /notes/{note_id}/quizzes [get]
func (c *QuizController) GetQuizzesForNote(ctx *gin.Context) {
	noteID, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	quizzes, err := c.quizService.GetQuizzesForNote(middleware.StudentID(ctx), noteID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to retrieve quizzes")
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetAllQuizzes godoc
// @Summary List every quiz of the student
// @Description Quizzes across all notes, joined with note and module context and decorated with the latest attempt.
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAllQuizzesForStudent(middleware.StudentID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes"})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Removes the quiz with all its questions and answers.
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{quiz_id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	quizID, ok := parsePathID(ctx, "quiz_id")
	if !ok {
		return
	}
	if err := c.quizService.DeleteQuiz(middleware.StudentID(ctx), quizID); err != nil {
		respondServiceError(ctx, err, "Failed to delete quiz")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary Submit answers for a quiz
// @Description Grades the submitted answers, records the attempt and returns the per-question breakdown.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.SubmitAttemptDTO true "Mapping of question id to selected answer id"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Empty submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Security BearerAuth
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	quizID, ok := parsePathID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.SubmitAttempt(middleware.StudentID(ctx), quizID, req)
	if err != nil {
		if errors.Is(err, service.ErrEmptySubmission) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to record attempt, please try again"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetLatestAttempt godoc
// @Summary Get the latest attempt for a quiz
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.AttemptDTO
// @Failure 404 {object} dto.ErrorResponse "No attempt yet"
// @Security BearerAuth
// @Router /quizzes/{quiz_id}/attempts/latest [get]
func (c *QuizController) GetLatestAttempt(ctx *gin.Context) {
	quizID, ok := parsePathID(ctx, "quiz_id")
	if !ok {
		return
	}
	attempt, err := c.attemptService.GetLatestAttempt(middleware.StudentID(ctx), quizID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetAttemptHistory godoc
// @Summary List all attempts for a quiz
// @Tags Quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.AttemptDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{quiz_id}/attempts [get]
func (c *QuizController) GetAttemptHistory(ctx *gin.Context) {
	quizID, ok := parsePathID(ctx, "quiz_id")
	if !ok {
		return
	}
	attempts, err := c.attemptService.GetAttemptHistory(middleware.StudentID(ctx), quizID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts"})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
