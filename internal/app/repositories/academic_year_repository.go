package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// AcademicYearRepository handles database operations for academic years
type AcademicYearRepository struct {
	db *pgxpool.Pool
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Create inserts a new academic year
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (year, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		year.Year, year.StartDate, year.EndDate, year.IsActive,
	).Scan(&year.ID)
	if err != nil {
		return fmt.Errorf("error creating academic year: %w", err)
	}

	return nil
}

// YearExists checks whether a calendar year is already registered
func (r *AcademicYearRepository) YearExists(ctx context.Context, year int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM academic_years WHERE year = $1)`, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking academic year existence: %w", err)
	}
	return exists, nil
}

// ExistsByID checks whether an academic year exists, using the caller's transaction
func (r *AcademicYearRepository) ExistsByID(ctx context.Context, q DBTX, id int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM academic_years WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking academic year existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all academic years
func (r *AcademicYearRepository) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	query := `
		SELECT id, year, start_date, end_date, is_active
		FROM academic_years
		ORDER BY year
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(
			&year.ID,
			&year.Year,
			&year.StartDate,
			&year.EndDate,
			&year.IsActive,
		); err != nil {
			return nil, err
		}
		years = append(years, &year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}
