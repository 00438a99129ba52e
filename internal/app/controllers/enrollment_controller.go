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

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new enrollment controller
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment runs the admission workflow for a student
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// GetAllEnrollments lists enrollments with student, grade and section attached
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	skip, limit := helpers.ParseListParams(ctx)

	enrollments, err := c.enrollmentService.GetAllEnrollments(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// UpdateEnrollmentStatus moves an enrollment to a new status
func (c *EnrollmentController) UpdateEnrollmentStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	var req dto.UpdateEnrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollmentStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}

// DeleteEnrollment removes an enrollment
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Matrícula eliminada"}))
}
