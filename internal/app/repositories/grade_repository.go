package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create inserts a new grade. Grade names are not unique.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (name, level)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, grade.Name, grade.Level).Scan(&grade.ID)
	if err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

// ExistsByID checks whether a grade exists
func (r *GradeRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM grades WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking grade existence: %w", err)
	}
	return exists, nil
}

// GetByName retrieves a grade by name, returning nil when none exists
func (r *GradeRepository) GetByName(ctx context.Context, name string) (*models.Grade, error) {
	query := `SELECT id, name, level FROM grades WHERE name = $1 LIMIT 1`

	var grade models.Grade
	err := r.db.QueryRow(ctx, query, name).Scan(&grade.ID, &grade.Name, &grade.Level)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return &grade, nil
}

// GetAll retrieves all grades
func (r *GradeRepository) GetAll(ctx context.Context) ([]*models.Grade, error) {
	query := `SELECT id, name, level FROM grades ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(&grade.ID, &grade.Name, &grade.Level); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}
