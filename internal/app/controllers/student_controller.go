package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/services"
	"github.com/mrc-edu/matricula-backend/internal/middleware"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
)

// StudentController handles student and guardian endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new student controller
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// --- Guardians ---

// CreateGuardian registers a new guardian
func (c *StudentController) CreateGuardian(ctx *gin.Context) {
	var req dto.CreateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	guardian, err := c.studentService.CreateGuardian(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(guardian))
}

// GetAllGuardians lists guardians with skip/limit pagination
func (c *StudentController) GetAllGuardians(ctx *gin.Context) {
	skip, limit := helpers.ParseListParams(ctx)

	guardians, err := c.studentService.GetAllGuardians(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(guardians))
}

// UpdateGuardian updates the guardian identified by DNI
func (c *StudentController) UpdateGuardian(ctx *gin.Context) {
	dni := ctx.Param("dni")

	var req dto.CreateGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	guardian, err := c.studentService.UpdateGuardian(ctx, dni, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(guardian))
}

// DeleteGuardian removes the guardian identified by DNI
func (c *StudentController) DeleteGuardian(ctx *gin.Context) {
	dni := ctx.Param("dni")

	if err := c.studentService.DeleteGuardian(ctx, dni); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Apoderado eliminado"}))
}

// --- Students ---

// CreateStudent registers a new student under an existing guardian
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetStudentByDNI retrieves a single student by DNI
func (c *StudentController) GetStudentByDNI(ctx *gin.Context) {
	dni := ctx.Param("dni")

	student, err := c.studentService.GetStudentByDNI(ctx, dni)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// GetAllStudents lists students with skip/limit pagination
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	skip, limit := helpers.ParseListParams(ctx)

	students, err := c.studentService.GetAllStudents(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// UpdateStudent updates the student identified by ID
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// DeleteStudent removes the student identified by ID
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Estudiante eliminado"}))
}
