package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// EnrollmentRepository handles database operations for enrollments.
// The admission checks take a DBTX so the workflow can run its existence,
// capacity and duplicate checks and the insert inside one transaction.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment using the caller's transaction
func (r *EnrollmentRepository) Create(ctx context.Context, q DBTX, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, academic_year_id, grade_id, section_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.AcademicYearID, enrollment.GradeID,
		enrollment.SectionID, enrollment.Status,
	).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// CountActive counts enrollments occupying a seat for (section, year).
// Rejected enrollments do not consume a seat; pending and withdrawn ones do.
func (r *EnrollmentRepository) CountActive(ctx context.Context, q DBTX, sectionID, academicYearID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM enrollments
		WHERE section_id = $1 AND academic_year_id = $2 AND status != $3
	`

	var count int
	err := q.QueryRow(ctx, query, sectionID, academicYearID, models.EnrollmentRejected).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// ExistsForStudentYear checks whether the student already has an enrollment
// for the academic year, regardless of status
func (r *EnrollmentRepository) ExistsForStudentYear(ctx context.Context, q DBTX, studentID, academicYearID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND academic_year_id = $2)`,
		studentID, academicYearID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// GetByID retrieves an enrollment by ID, returning nil when none exists
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, academic_year_id, grade_id, section_id, status, created_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.AcademicYearID,
		&enrollment.GradeID,
		&enrollment.SectionID,
		&enrollment.Status,
		&enrollment.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetAll retrieves enrollments with student, grade and section attached for
// display, paginated by skip/limit
func (r *EnrollmentRepository) GetAll(ctx context.Context, skip, limit int) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.academic_year_id, e.grade_id, e.section_id, e.status, e.created_at,
		       s.id, s.dni, s.first_name, s.last_name, s.birth_date, s.address, s.guardian_id,
		       g.id, g.name, g.level,
		       sec.id, sec.name, sec.grade_id, sec.capacity
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN grades g ON g.id = e.grade_id
		JOIN sections sec ON sec.id = e.section_id
		ORDER BY e.id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.Student
		var grade models.Grade
		var section models.Section
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.AcademicYearID,
			&enrollment.GradeID,
			&enrollment.SectionID,
			&enrollment.Status,
			&enrollment.CreatedAt,
			&student.ID,
			&student.DNI,
			&student.FirstName,
			&student.LastName,
			&student.BirthDate,
			&student.Address,
			&student.GuardianID,
			&grade.ID,
			&grade.Name,
			&grade.Level,
			&section.ID,
			&section.Name,
			&section.GradeID,
			&section.Capacity,
		); err != nil {
			return nil, err
		}
		enrollment.Student = &student
		enrollment.Grade = &grade
		enrollment.Section = &section
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// UpdateStatus sets the status of an enrollment
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CountByStudentID counts the enrollments referencing a student
func (r *EnrollmentRepository) CountByStudentID(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments for student: %w", err)
	}
	return count, nil
}
