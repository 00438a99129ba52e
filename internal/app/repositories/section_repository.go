package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{db: db}
}

// Create inserts a new section
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := `
		INSERT INTO sections (name, grade_id, capacity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, section.Name, section.GradeID, section.Capacity).Scan(&section.ID)
	if err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}

	return nil
}

// GetByID retrieves a section using the caller's transaction, returning nil
// when none exists. The capacity read here backs the seat check.
func (r *SectionRepository) GetByID(ctx context.Context, q DBTX, id int64) (*models.Section, error) {
	query := `SELECT id, name, grade_id, capacity FROM sections WHERE id = $1`

	var section models.Section
	err := q.QueryRow(ctx, query, id).Scan(&section.ID, &section.Name, &section.GradeID, &section.Capacity)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	return &section, nil
}

// GetByGradeAndName retrieves a section for a grade by letter, returning nil
// when none exists
func (r *SectionRepository) GetByGradeAndName(ctx context.Context, gradeID int64, name string) (*models.Section, error) {
	query := `SELECT id, name, grade_id, capacity FROM sections WHERE grade_id = $1 AND name = $2`

	var section models.Section
	err := r.db.QueryRow(ctx, query, gradeID, name).Scan(&section.ID, &section.Name, &section.GradeID, &section.Capacity)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}

	return &section, nil
}

// GetAll retrieves sections, optionally filtered by grade
func (r *SectionRepository) GetAll(ctx context.Context, gradeID *int64) ([]*models.Section, error) {
	query := `SELECT id, name, grade_id, capacity FROM sections`
	args := []any{}
	if gradeID != nil {
		query += ` WHERE grade_id = $1`
		args = append(args, *gradeID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		var section models.Section
		if err := rows.Scan(&section.ID, &section.Name, &section.GradeID, &section.Capacity); err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}
