package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (dni, first_name, last_name, birth_date, address, guardian_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.DNI, student.FirstName, student.LastName, student.BirthDate, student.Address, student.GuardianID,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID, returning nil when none exists
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, dni, first_name, last_name, birth_date, address, guardian_id
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.DNI,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
		&student.Address,
		&student.GuardianID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetByDNI retrieves a student by DNI, returning nil when none exists
func (r *StudentRepository) GetByDNI(ctx context.Context, dni string) (*models.Student, error) {
	query := `
		SELECT id, dni, first_name, last_name, birth_date, address, guardian_id
		FROM students
		WHERE dni = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, dni).Scan(
		&student.ID,
		&student.DNI,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
		&student.Address,
		&student.GuardianID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// ExistsByID checks whether a student exists, using the caller's transaction
func (r *StudentRepository) ExistsByID(ctx context.Context, q DBTX, id int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves students with their guardian attached, paginated by skip/limit
func (r *StudentRepository) GetAll(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.dni, s.first_name, s.last_name, s.birth_date, s.address, s.guardian_id,
		       g.id, g.dni, g.first_name, g.last_name, g.phone, g.email
		FROM students s
		JOIN guardians g ON g.id = s.guardian_id
		ORDER BY s.id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var guardian models.Guardian
		if err := rows.Scan(
			&student.ID,
			&student.DNI,
			&student.FirstName,
			&student.LastName,
			&student.BirthDate,
			&student.Address,
			&student.GuardianID,
			&guardian.ID,
			&guardian.DNI,
			&guardian.FirstName,
			&guardian.LastName,
			&guardian.Phone,
			&guardian.Email,
		); err != nil {
			return nil, err
		}
		student.Guardian = &guardian
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update overwrites all mutable fields of the student identified by ID
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET dni = $1, first_name = $2, last_name = $3, birth_date = $4, address = $5, guardian_id = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.DNI, student.FirstName, student.LastName, student.BirthDate,
		student.Address, student.GuardianID, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// CountByGuardianID counts the students referencing a guardian
func (r *StudentRepository) CountByGuardianID(ctx context.Context, guardianID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE guardian_id = $1`, guardianID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students for guardian: %w", err)
	}
	return count, nil
}
