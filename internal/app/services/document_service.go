package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/filestorage"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
)

// allowedExtensions is the closed set of accepted document file extensions
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

// DocumentStore is the persistence surface for document records
type DocumentStore interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	GetAll(ctx context.Context, skip, limit int, enrollmentID *int64) ([]*models.Document, error)
	UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentGetter reads an enrollment by ID
type EnrollmentGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// DocumentService handles document uploads and their review status
type DocumentService struct {
	documentRepo   DocumentStore
	enrollmentRepo EnrollmentGetter
	storage        filestorage.Storage
	logger         zerolog.Logger
}

// NewDocumentService creates a new document service instance
func NewDocumentService(
	documentRepo DocumentStore,
	enrollmentRepo EnrollmentGetter,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo:   documentRepo,
		enrollmentRepo: enrollmentRepo,
		storage:        storage,
		logger:         logger,
	}
}

// UploadDocument stores an uploaded file and records it against an enrollment.
// The file is written before the database row is created, so a failed write
// never leaves an orphaned record.
func (s *DocumentService) UploadDocument(ctx context.Context, enrollmentID int64, docType, originalFilename string, src io.Reader) (*models.Document, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.NewResourceNotFoundError("Matrícula no encontrada")
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Tipo de archivo no permitido: %s", ext))
	}

	// Second-precision timestamp keeps names unique for staff-driven uploads.
	timestamp := time.Now().Format("20060102_150405")
	storedName := fmt.Sprintf("%d_%s_%s%s", enrollmentID, docType, timestamp, ext)

	fileURL, err := s.storage.Save(storedName, src)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", storedName).Msg("Failed to store document file")
		return nil, apperrors.NewInternalError("Error al guardar archivo")
	}

	document := &models.Document{
		EnrollmentID: enrollmentID,
		Type:         docType,
		FileURL:      fileURL,
		Status:       models.DocumentPending,
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("error creating document record: %w", err)
	}

	return document, nil
}

// GetDocumentByID retrieves a single document
func (s *DocumentService) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	if document == nil {
		return nil, apperrors.NewResourceNotFoundError("Documento no encontrado")
	}
	return document, nil
}

// GetAllDocuments retrieves documents, optionally filtered by enrollment
func (s *DocumentService) GetAllDocuments(ctx context.Context, skip, limit int, enrollmentID *int64) ([]*models.Document, error) {
	skip, limit = helpers.NormalizeListParams(skip, limit)
	documents, err := s.documentRepo.GetAll(ctx, skip, limit, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving documents: %w", err)
	}
	return documents, nil
}

// UpdateDocumentStatus moves a document to a new review status
func (s *DocumentService) UpdateDocumentStatus(ctx context.Context, id int64, status string) (*models.Document, error) {
	newStatus := models.DocumentStatus(status)
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Estado inválido: %s", status))
	}

	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	if document == nil {
		return nil, apperrors.NewResourceNotFoundError("Documento no encontrado")
	}

	if err := s.documentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("error updating document status: %w", err)
	}

	document.Status = newStatus
	return document, nil
}

// DeleteDocument removes a document record and, best effort, its stored file.
// A failed file removal is logged and never blocks the row delete.
func (s *DocumentService) DeleteDocument(ctx context.Context, id int64) error {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving document: %w", err)
	}
	if document == nil {
		return apperrors.NewResourceNotFoundError("Documento no encontrado")
	}

	if err := s.storage.Delete(document.FileURL); err != nil {
		s.logger.Warn().Err(err).Str("fileUrl", document.FileURL).Msg("Failed to delete document file")
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}

	return nil
}
