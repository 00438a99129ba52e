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
)

const academicDateLayout = "2006-01-02"

// AcademicService handles the academic catalog: years, grades and sections
type AcademicService struct {
	yearRepo    *repositories.AcademicYearRepository
	gradeRepo   *repositories.GradeRepository
	sectionRepo *repositories.SectionRepository
}

// NewAcademicService creates a new academic service instance
func NewAcademicService(
	yearRepo *repositories.AcademicYearRepository,
	gradeRepo *repositories.GradeRepository,
	sectionRepo *repositories.SectionRepository,
) *AcademicService {
	return &AcademicService{
		yearRepo:    yearRepo,
		gradeRepo:   gradeRepo,
		sectionRepo: sectionRepo,
	}
}

// CreateAcademicYear registers a calendar year. The year number must be unique.
func (s *AcademicService) CreateAcademicYear(ctx context.Context, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	exists, err := s.yearRepo.YearExists(ctx, req.Year)
	if err != nil {
		return nil, fmt.Errorf("error checking academic year: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("Año académico ya existe")
	}

	startDate, err := time.Parse(academicDateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Fecha de inicio inválida, use el formato YYYY-MM-DD")
	}
	endDate, err := time.Parse(academicDateLayout, req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Fecha de fin inválida, use el formato YYYY-MM-DD")
	}

	year := &models.AcademicYear{
		Year:      req.Year,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  req.IsActive,
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("Año académico ya existe")
		}
		return nil, fmt.Errorf("error creating academic year: %w", err)
	}

	return year, nil
}

// GetAllAcademicYears lists all academic years
func (s *AcademicService) GetAllAcademicYears(ctx context.Context) ([]*models.AcademicYear, error) {
	years, err := s.yearRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academic years: %w", err)
	}
	return years, nil
}

// CreateGrade registers a grade. Grade names are not checked for uniqueness.
func (s *AcademicService) CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error) {
	grade := &models.Grade{
		Name:  req.Name,
		Level: req.Level,
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("error creating grade: %w", err)
	}

	return grade, nil
}

// GetAllGrades lists all grades
func (s *AcademicService) GetAllGrades(ctx context.Context) ([]*models.Grade, error) {
	grades, err := s.gradeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grades: %w", err)
	}
	return grades, nil
}

// CreateSection registers a section for an existing grade. Capacity defaults
// to 30 when not given.
func (s *AcademicService) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*models.Section, error) {
	exists, err := s.gradeRepo.ExistsByID(ctx, req.GradeID)
	if err != nil {
		return nil, fmt.Errorf("error checking grade: %w", err)
	}
	if !exists {
		return nil, apperrors.NewResourceNotFoundError("Grado no encontrado")
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = models.DefaultSectionCapacity
	}

	section := &models.Section{
		Name:     req.Name,
		GradeID:  req.GradeID,
		Capacity: capacity,
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("error creating section: %w", err)
	}

	return section, nil
}

// GetAllSections lists sections, optionally filtered by grade
func (s *AcademicService) GetAllSections(ctx context.Context, gradeID *int64) ([]*models.Section, error) {
	sections, err := s.sectionRepo.GetAll(ctx, gradeID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving sections: %w", err)
	}
	return sections, nil
}
