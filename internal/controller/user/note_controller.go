package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/middleware"
	"github.com/ndmanh/studynotes/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type NoteController struct {
	noteService   service.NoteService
	moduleService service.ModuleService
}

func NewNoteController(noteService service.NoteService, moduleService service.ModuleService) *NoteController {
	return &NoteController{noteService: noteService, moduleService: moduleService}
}

// CreateModule godoc
// @Summary Create a course module
// @Tags Modules
// @Accept json
// @Produce json
// @Param module body dto.ModuleCreateDTO true "Module data"
// @Success 201 {object} dto.ModuleDTO
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /modules [post]
func (c *NoteController) CreateModule(ctx *gin.Context) {
	var req dto.ModuleCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	module, err := c.moduleService.CreateModule(middleware.StudentID(ctx), req)
	if err != nil {
		log.Error().Err(err).Msg("CreateModule: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create module"})
		return
	}
	ctx.JSON(http.StatusCreated, module)
}

// GetModules godoc
// @Summary List the student's modules
// @Tags Modules
// @Produce json
// @Success 200 {array} dto.ModuleDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /modules [get]
func (c *NoteController) GetModules(ctx *gin.Context) {
	modules, err := c.moduleService.GetModules(middleware.StudentID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve modules"})
		return
	}
	ctx.JSON(http.StatusOK, modules)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags Modules
// @Accept json
// @Produce json
// @Param module_id path int true "Module ID"
// @Param module body dto.ModuleCreateDTO true "Module data"
// @Success 200 {object} dto.ModuleDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /modules/{module_id} [put]
func (c *NoteController) UpdateModule(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "module_id")
	if !ok {
		return
	}
	var req dto.ModuleCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	module, err := c.moduleService.UpdateModule(middleware.StudentID(ctx), id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update module")
		return
	}
	ctx.JSON(http.StatusOK, module)
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags Modules
// @Produce json
// @Param module_id path int true "Module ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /modules/{module_id} [delete]
func (c *NoteController) DeleteModule(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "module_id")
	if !ok {
		return
	}
	if err := c.moduleService.DeleteModule(middleware.StudentID(ctx), id); err != nil {
		respondServiceError(ctx, err, "Failed to delete module")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateNote godoc
// @Summary Create a note under a module
// @Tags Notes
// @Accept json
// @Produce json
// @Param note body dto.NoteCreateDTO true "Note data"
// @Success 201 {object} dto.NoteDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Security BearerAuth
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	var req dto.NoteCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	note, err := c.noteService.CreateNote(middleware.StudentID(ctx), req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create note")
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

// GetNotes godoc
// @Summary List the student's notes
// @Description Lists all notes, or the notes of one module when 'module_id' is given.
// @Tags Notes
// @Produce json
// @Param module_id query int false "Filter by module"
// @Success 200 {array} dto.NoteDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes [get]
func (c *NoteController) GetNotes(ctx *gin.Context) {
	studentID := middleware.StudentID(ctx)

	if moduleIDStr := ctx.Query("module_id"); moduleIDStr != "" {
		moduleID, err := strconv.ParseUint(moduleIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid module_id format"})
			return
		}
		notes, err := c.noteService.GetNotesForModule(studentID, uint(moduleID))
		if err != nil {
			respondServiceError(ctx, err, "Failed to retrieve notes")
			return
		}
		ctx.JSON(http.StatusOK, notes)
		return
	}

	notes, err := c.noteService.GetNotes(studentID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve notes"})
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// GetNote godoc
// @Summary Get one note
// @Tags Notes
// @Produce json
// @Param note_id path int true "Note ID"
// @Success 200 {object} dto.NoteDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{note_id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	note, err := c.noteService.GetNote(middleware.StudentID(ctx), id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, note)
}

// UpdateNote godoc
// @Summary Update a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param note_id path int true "Note ID"
// @Param note body dto.NoteUpdateDTO true "Fields to update"
// @Success 200 {object} dto.NoteDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{note_id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	var req dto.NoteUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	note, err := c.noteService.UpdateNote(middleware.StudentID(ctx), id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update note")
		return
	}
	ctx.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags Notes
// @Produce json
// @Param note_id path int true "Note ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notes/{note_id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	if err := c.noteService.DeleteNote(middleware.StudentID(ctx), id); err != nil {
		respondServiceError(ctx, err, "Failed to delete note")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SummarizeNote godoc
// @Summary Generate an AI summary for a note
// @Tags Notes
// @Produce json
// @Param note_id path int true "Note ID"
// @Success 200 {object} dto.NoteSummaryDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Summary generation failed"
// @Security BearerAuth
// @Router /notes/{note_id}/summary [post]
func (c *NoteController) SummarizeNote(ctx *gin.Context) {
	id, ok := parsePathID(ctx, "note_id")
	if !ok {
		return
	}
	summary, err := c.noteService.SummarizeNote(ctx.Request.Context(), middleware.StudentID(ctx), id)
	if err != nil {
		respondServiceError(ctx, err, "Failed to generate summary, please try again")
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

func parsePathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// respondServiceError maps a service error to 404 for missing records and
// 500 for everything else.
func respondServiceError(ctx *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Service error")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallbackMsg})
}
