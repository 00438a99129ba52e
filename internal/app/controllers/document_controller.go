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

// DocumentController handles enrollment document endpoints
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new document controller
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// UploadDocument receives a multipart upload and records it against an enrollment
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	var req dto.UploadDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Archivo requerido"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInternalError("Error al leer archivo"))
		return
	}
	defer file.Close()

	document, err := c.documentService.UploadDocument(ctx, req.EnrollmentID, req.Type, fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(document))
}

// GetAllDocuments lists documents, optionally filtered by enrollmentId
func (c *DocumentController) GetAllDocuments(ctx *gin.Context) {
	skip, limit := helpers.ParseListParams(ctx)

	var enrollmentID *int64
	if raw := ctx.Query("enrollmentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("enrollmentId inválido"))
			return
		}
		enrollmentID = &parsed
	}

	documents, err := c.documentService.GetAllDocuments(ctx, skip, limit, enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(documents))
}

// GetDocumentByID retrieves a single document
func (c *DocumentController) GetDocumentByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	document, err := c.documentService.GetDocumentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(document))
}

// UpdateDocumentStatus moves a document to a new review status
func (c *DocumentController) UpdateDocumentStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	var req dto.UpdateDocumentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	document, err := c.documentService.UpdateDocumentStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(document))
}

// DeleteDocument removes a document record and its stored file
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("ID inválido"))
		return
	}

	if err := c.documentService.DeleteDocument(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Documento eliminado"}))
}
