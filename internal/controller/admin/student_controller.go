package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type StudentController struct {
	studentService service.StudentService
}

func NewStudentController(studentService service.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent godoc
// @Summary (Admin) Register a new student account
// @Tags Admin - Students
// @Accept json
// @Produce json
// @Param student body dto.StudentCreateDTO true "Student account data"
// @Success 201 {object} dto.StudentDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	student, err := c.studentService.RegisterStudent(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateStudent: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create student", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// GetStudents godoc
// @Summary (Admin) List all students
// @Tags Admin - Students
// @Produce json
// @Success 200 {array} dto.StudentDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	students, err := c.studentService.GetStudents()
	if err != nil {
		log.Error().Err(err).Msg("Admin GetStudents: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve students"})
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetStudent godoc
// @Summary (Admin) Get one student
// @Tags Admin - Students
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.StudentDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{student_id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "student_id")
	if !ok {
		return
	}
	student, err := c.studentService.GetStudent(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// UpdateStudent godoc
// @Summary (Admin) Update a student account
// @Tags Admin - Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Param student body dto.StudentUpdateDTO true "Fields to update"
// @Success 200 {object} dto.StudentDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{student_id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "student_id")
	if !ok {
		return
	}
	var req dto.StudentUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	student, err := c.studentService.UpdateStudent(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("studentID", id).Msg("Admin UpdateStudent: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update student"})
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary (Admin) Delete a student account
// @Tags Admin - Students
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{student_id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "student_id")
	if !ok {
		return
	}
	if err := c.studentService.DeleteStudent(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("studentID", id).Msg("Admin DeleteStudent: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete student"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
