package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/app/repositories"
	"github.com/mrc-edu/matricula-backend/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"

	primariaCapacity   = 30
	secundariaCapacity = 35
)

var sectionNames = []string{"A", "B", "C"}

// CreateDefaultData seeds the admin account, academic years, grades and
// sections. Every entity is existence-checked first so repeated startups
// leave the data unchanged.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	yearRepo := repositories.NewAcademicYearRepository(dbPool)
	gradeRepo := repositories.NewGradeRepository(dbPool)
	sectionRepo := repositories.NewSectionRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := seedAdminUser(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedAcademicYears(ctx, yearRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedGradesAndSections(ctx, gradeRepo, sectionRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdminUser(ctx context.Context, userRepo *repositories.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		return fmt.Errorf("error checking admin user: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.User{
		Username:       defaultAdminUsername,
		Email:          "admin@mrc.edu.pe",
		HashedPassword: hashed,
		FullName:       "Administrador del Sistema",
		Role:           models.RoleAdmin,
		IsActive:       true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("error creating admin user: %w", err)
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Admin user created")
	return nil
}

func seedAcademicYears(ctx context.Context, yearRepo *repositories.AcademicYearRepository, lgr zerolog.Logger) error {
	var finalErr error
	for _, y := range []int{2024, 2025, 2026} {
		exists, err := yearRepo.YearExists(ctx, y)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		year := &models.AcademicYear{
			Year:      y,
			StartDate: time.Date(y, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(y, time.December, 20, 0, 0, 0, 0, time.UTC),
			IsActive:  y == 2025,
		}
		if err := yearRepo.Create(ctx, year); err != nil {
			lgr.Error().Err(err).Int("year", y).Msg("Error creating academic year")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int("year", y).Msg("Academic year created")
	}
	return finalErr
}

func seedGradesAndSections(
	ctx context.Context,
	gradeRepo *repositories.GradeRepository,
	sectionRepo *repositories.SectionRepository,
	lgr zerolog.Logger,
) error {
	type gradeDef struct {
		name     string
		level    string
		capacity int
	}

	var defs []gradeDef
	for i := 1; i <= 6; i++ {
		defs = append(defs, gradeDef{fmt.Sprintf("%d° Primaria", i), "Primaria", primariaCapacity})
	}
	for i := 1; i <= 5; i++ {
		defs = append(defs, gradeDef{fmt.Sprintf("%d° Secundaria", i), "Secundaria", secundariaCapacity})
	}

	var finalErr error
	for _, def := range defs {
		grade, err := gradeRepo.GetByName(ctx, def.name)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if grade == nil {
			grade = &models.Grade{Name: def.name, Level: def.level}
			if err := gradeRepo.Create(ctx, grade); err != nil {
				lgr.Error().Err(err).Str("grade", def.name).Msg("Error creating grade")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			lgr.Info().Str("grade", def.name).Msg("Grade created")
		}

		// Sections are checked one by one so a partially seeded grade is
		// completed on the next startup.
		for _, name := range sectionNames {
			existing, err := sectionRepo.GetByGradeAndName(ctx, grade.ID, name)
			if err != nil {
				finalErr = errors.Join(finalErr, err)
				continue
			}
			if existing != nil {
				continue
			}

			section := &models.Section{
				Name:     name,
				GradeID:  grade.ID,
				Capacity: def.capacity,
			}
			if err := sectionRepo.Create(ctx, section); err != nil {
				lgr.Error().Err(err).Str("grade", def.name).Str("section", name).Msg("Error creating section")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}
	return finalErr
}
