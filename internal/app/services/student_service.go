package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/repositories"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/dberrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
)

const birthDateLayout = "2006-01-02"

// StudentService handles students and their guardians
type StudentService struct {
	studentRepo    *repositories.StudentRepository
	guardianRepo   *repositories.GuardianRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	guardianRepo *repositories.GuardianRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		guardianRepo:   guardianRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// --- Guardians ---

// CreateGuardian registers a guardian. The DNI must not be taken.
func (s *StudentService) CreateGuardian(ctx context.Context, req *dto.CreateGuardianRequest) (*models.Guardian, error) {
	existing, err := s.guardianRepo.GetByDNI(ctx, req.DNI)
	if err != nil {
		return nil, fmt.Errorf("error checking guardian: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Apoderado ya registrado")
	}

	guardian := &models.Guardian{
		DNI:       req.DNI,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	if err := s.guardianRepo.Create(ctx, guardian); err != nil {
		// Concurrent insert can slip past the read check, the unique index
		// on dni is authoritative.
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("Apoderado ya registrado")
		}
		return nil, fmt.Errorf("error creating guardian: %w", err)
	}

	return guardian, nil
}

// GetAllGuardians lists guardians with skip/limit pagination
func (s *StudentService) GetAllGuardians(ctx context.Context, skip, limit int) ([]*models.Guardian, error) {
	skip, limit = helpers.NormalizeListParams(skip, limit)
	guardians, err := s.guardianRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guardians: %w", err)
	}
	return guardians, nil
}

// UpdateGuardian overwrites all fields of the guardian identified by DNI
func (s *StudentService) UpdateGuardian(ctx context.Context, dni string, req *dto.CreateGuardianRequest) (*models.Guardian, error) {
	guardian, err := s.guardianRepo.GetByDNI(ctx, dni)
	if err != nil {
		return nil, fmt.Errorf("error retrieving guardian: %w", err)
	}
	if guardian == nil {
		return nil, apperrors.NewResourceNotFoundError("Apoderado no encontrado")
	}

	guardian.DNI = req.DNI
	guardian.FirstName = req.FirstName
	guardian.LastName = req.LastName
	guardian.Phone = req.Phone
	guardian.Email = req.Email

	if err := s.guardianRepo.Update(ctx, guardian); err != nil {
		return nil, fmt.Errorf("error updating guardian: %w", err)
	}

	return guardian, nil
}

// DeleteGuardian removes a guardian. Blocked while any student references it,
// leaving the dependent graph unchanged.
func (s *StudentService) DeleteGuardian(ctx context.Context, dni string) error {
	guardian, err := s.guardianRepo.GetByDNI(ctx, dni)
	if err != nil {
		return fmt.Errorf("error retrieving guardian: %w", err)
	}
	if guardian == nil {
		return apperrors.NewResourceNotFoundError("Apoderado no encontrado")
	}

	count, err := s.studentRepo.CountByGuardianID(ctx, guardian.ID)
	if err != nil {
		return fmt.Errorf("error counting students: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("No se puede eliminar. Tiene %d estudiante(s) asociado(s)", count))
	}

	if err := s.guardianRepo.Delete(ctx, guardian.ID); err != nil {
		return fmt.Errorf("error deleting guardian: %w", err)
	}

	return nil
}

// --- Students ---

// CreateStudent registers a student. The guardian must already exist and the
// student DNI must not be taken.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	guardian, err := s.guardianRepo.GetByDNI(ctx, req.GuardianDNI)
	if err != nil {
		return nil, fmt.Errorf("error checking guardian: %w", err)
	}
	if guardian == nil {
		return nil, apperrors.NewResourceNotFoundError("Apoderado no encontrado. Registre al apoderado primero.")
	}

	existing, err := s.studentRepo.GetByDNI(ctx, req.DNI)
	if err != nil {
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Estudiante ya registrado")
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Fecha de nacimiento inválida, use el formato YYYY-MM-DD")
	}

	student := &models.Student{
		DNI:        req.DNI,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BirthDate:  birthDate,
		Address:    req.Address,
		GuardianID: guardian.ID,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("Estudiante ya registrado")
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	student.Guardian = guardian
	return student, nil
}

// GetStudentByDNI retrieves a student by DNI
func (s *StudentService) GetStudentByDNI(ctx context.Context, dni string) (*models.Student, error) {
	student, err := s.studentRepo.GetByDNI(ctx, dni)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.NewResourceNotFoundError("Estudiante no encontrado")
	}
	return student, nil
}

// GetAllStudents lists students with their guardian attached
func (s *StudentService) GetAllStudents(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	skip, limit = helpers.NormalizeListParams(skip, limit)
	students, err := s.studentRepo.GetAll(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent overwrites all mutable fields of a student, re-validating the
// referenced guardian
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.CreateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return nil, apperrors.NewResourceNotFoundError("Estudiante no encontrado")
	}

	guardian, err := s.guardianRepo.GetByDNI(ctx, req.GuardianDNI)
	if err != nil {
		return nil, fmt.Errorf("error checking guardian: %w", err)
	}
	if guardian == nil {
		return nil, apperrors.NewResourceNotFoundError("Apoderado no encontrado")
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Fecha de nacimiento inválida, use el formato YYYY-MM-DD")
	}

	student.DNI = req.DNI
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.BirthDate = birthDate
	student.Address = req.Address
	student.GuardianID = guardian.ID

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	student.Guardian = guardian
	return student, nil
}

// DeleteStudent removes a student. Blocked while any enrollment references it.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving student: %w", err)
	}
	if student == nil {
		return apperrors.NewResourceNotFoundError("Estudiante no encontrado")
	}

	count, err := s.enrollmentRepo.CountByStudentID(ctx, id)
	if err != nil {
		return fmt.Errorf("error counting enrollments: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("No se puede eliminar. Tiene %d matrícula(s) registrada(s)", count))
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
