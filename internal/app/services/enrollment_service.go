package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/repositories"
	"github.com/mrc-edu/matricula-backend/internal/db"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/dberrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/filestorage"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
)

// TxRunner runs a function within a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// EnrollmentStore is the persistence surface the enrollment workflow needs
type EnrollmentStore interface {
	Create(ctx context.Context, q repositories.DBTX, enrollment *models.Enrollment) error
	CountActive(ctx context.Context, q repositories.DBTX, sectionID, academicYearID int64) (int, error)
	ExistsForStudentYear(ctx context.Context, q repositories.DBTX, studentID, academicYearID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, skip, limit int) ([]*models.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// DocumentRemover deletes the document rows of an enrollment, returning the
// stored file paths of the removed records
type DocumentRemover interface {
	DeleteByEnrollmentID(ctx context.Context, enrollmentID int64) ([]string, error)
}

// StudentChecker checks student existence within the caller's transaction
type StudentChecker interface {
	ExistsByID(ctx context.Context, q repositories.DBTX, id int64) (bool, error)
}

// AcademicYearChecker checks academic year existence within the caller's transaction
type AcademicYearChecker interface {
	ExistsByID(ctx context.Context, q repositories.DBTX, id int64) (bool, error)
}

// SectionGetter reads a section (and its capacity) within the caller's transaction
type SectionGetter interface {
	GetByID(ctx context.Context, q repositories.DBTX, id int64) (*models.Section, error)
}

// EnrollmentService implements the admission workflow. All checks and the
// insert run inside one transaction so two concurrent requests cannot both
// pass the capacity check and jointly exceed it.
type EnrollmentService struct {
	db             TxRunner
	enrollmentRepo EnrollmentStore
	documentRepo   DocumentRemover
	studentRepo    StudentChecker
	yearRepo       AcademicYearChecker
	sectionRepo    SectionGetter
	storage        filestorage.Storage
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	db TxRunner,
	enrollmentRepo EnrollmentStore,
	documentRepo DocumentRemover,
	studentRepo StudentChecker,
	yearRepo AcademicYearChecker,
	sectionRepo SectionGetter,
	storage filestorage.Storage,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		documentRepo:   documentRepo,
		studentRepo:    studentRepo,
		yearRepo:       yearRepo,
		sectionRepo:    sectionRepo,
		storage:        storage,
		logger:         logger,
	}
}

// CreateEnrollment validates and creates an enrollment. Validation order,
// first failure wins: student exists, academic year exists, section exists,
// seats available, not already enrolled that year. Whether the academic year
// is active is not checked.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		StudentID:      req.StudentID,
		AcademicYearID: req.AcademicYearID,
		GradeID:        req.GradeID,
		SectionID:      req.SectionID,
		Status:         models.EnrollmentEnrolled,
	}

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exists, err := s.studentRepo.ExistsByID(ctx, tx, req.StudentID)
		if err != nil {
			return fmt.Errorf("error checking student: %w", err)
		}
		if !exists {
			return apperrors.NewResourceNotFoundError("Estudiante no encontrado")
		}

		exists, err = s.yearRepo.ExistsByID(ctx, tx, req.AcademicYearID)
		if err != nil {
			return fmt.Errorf("error checking academic year: %w", err)
		}
		if !exists {
			return apperrors.NewResourceNotFoundError("Año académico no encontrado")
		}

		section, err := s.sectionRepo.GetByID(ctx, tx, req.SectionID)
		if err != nil {
			return fmt.Errorf("error checking section: %w", err)
		}
		if section == nil {
			return apperrors.NewResourceNotFoundError("Sección no encontrada")
		}

		occupied, err := s.enrollmentRepo.CountActive(ctx, tx, req.SectionID, req.AcademicYearID)
		if err != nil {
			return fmt.Errorf("error counting enrollments: %w", err)
		}
		if occupied >= section.Capacity {
			return apperrors.NewCapacityExceededError("No hay vacantes disponibles en esta sección")
		}

		enrolled, err := s.enrollmentRepo.ExistsForStudentYear(ctx, tx, req.StudentID, req.AcademicYearID)
		if err != nil {
			return fmt.Errorf("error checking existing enrollment: %w", err)
		}
		if enrolled {
			return apperrors.NewDuplicateEnrollmentError("El estudiante ya está matriculado en este año académico")
		}

		return s.enrollmentRepo.Create(ctx, tx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("studentId", enrollment.StudentID).
		Int64("sectionId", enrollment.SectionID).
		Msg("Enrollment created")

	return enrollment, nil
}

// GetAllEnrollments retrieves enrollments with student, grade and section attached
func (s *EnrollmentService) GetAllEnrollments(ctx context.Context, skip, limit int) ([]*models.Enrollment, error) {
	skip, limit = helpers.NormalizeListParams(skip, limit)
	enrollments, err := s.enrollmentRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return enrollments, nil
}

// UpdateEnrollmentStatus moves an enrollment to a new status. Any status may
// move to any other status, only set membership is checked.
func (s *EnrollmentService) UpdateEnrollmentStatus(ctx context.Context, id int64, status string) (*models.Enrollment, error) {
	newStatus := models.EnrollmentStatus(status)
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Estado inválido: %s", status))
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.NewResourceNotFoundError("Matrícula no encontrada")
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("error updating enrollment status: %w", err)
	}

	enrollment.Status = newStatus
	return enrollment, nil
}

// DeleteEnrollment removes an enrollment together with its document records.
// Stored files are removed best effort, a failed file removal never blocks
// the delete.
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment == nil {
		return apperrors.NewResourceNotFoundError("Matrícula no encontrada")
	}

	fileURLs, err := s.documentRepo.DeleteByEnrollmentID(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment documents: %w", err)
	}
	for _, fileURL := range fileURLs {
		if err := s.storage.Delete(fileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileUrl", fileURL).Msg("Failed to delete document file")
		}
	}

	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		// A document uploaded between the cleanup and the delete trips the
		// foreign key.
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("No se puede eliminar. La matrícula tiene documentos asociados")
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	return nil
}
