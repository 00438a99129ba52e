package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/services"
	"github.com/mrc-edu/matricula-backend/internal/middleware"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
)

// AcademicController handles academic year, grade and section endpoints
type AcademicController struct {
	academicService *services.AcademicService
}

// NewAcademicController creates a new academic controller
func NewAcademicController(academicService *services.AcademicService) *AcademicController {
	return &AcademicController{academicService: academicService}
}

// CreateAcademicYear registers a new academic year
func (c *AcademicController) CreateAcademicYear(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	year, err := c.academicService.CreateAcademicYear(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(year))
}

// GetAllAcademicYears lists all academic years
func (c *AcademicController) GetAllAcademicYears(ctx *gin.Context) {
	years, err := c.academicService.GetAllAcademicYears(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(years))
}

// CreateGrade registers a new grade
func (c *AcademicController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	grade, err := c.academicService.CreateGrade(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(grade))
}

// GetAllGrades lists all grades
func (c *AcademicController) GetAllGrades(ctx *gin.Context) {
	grades, err := c.academicService.GetAllGrades(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// CreateSection registers a new section for an existing grade
func (c *AcademicController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	section, err := c.academicService.CreateSection(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(section))
}

// GetAllSections lists sections, optionally filtered by gradeId
func (c *AcademicController) GetAllSections(ctx *gin.Context) {
	var gradeID *int64
	if raw := ctx.Query("gradeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("gradeId inválido"))
			return
		}
		gradeID = &parsed
	}

	sections, err := c.academicService.GetAllSections(ctx, gradeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sections))
}
