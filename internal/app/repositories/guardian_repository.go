package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// GuardianRepository handles database operations for guardians
type GuardianRepository struct {
	db *pgxpool.Pool
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db *pgxpool.Pool) *GuardianRepository {
	return &GuardianRepository{db: db}
}

// Create inserts a new guardian
func (r *GuardianRepository) Create(ctx context.Context, guardian *models.Guardian) error {
	query := `
		INSERT INTO guardians (dni, first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		guardian.DNI, guardian.FirstName, guardian.LastName, guardian.Phone, guardian.Email,
	).Scan(&guardian.ID)
	if err != nil {
		return fmt.Errorf("error creating guardian: %w", err)
	}

	return nil
}

// GetByDNI retrieves a guardian by DNI, returning nil when none exists
func (r *GuardianRepository) GetByDNI(ctx context.Context, dni string) (*models.Guardian, error) {
	query := `
		SELECT id, dni, first_name, last_name, phone, email
		FROM guardians
		WHERE dni = $1
	`

	var guardian models.Guardian
	err := r.db.QueryRow(ctx, query, dni).Scan(
		&guardian.ID,
		&guardian.DNI,
		&guardian.FirstName,
		&guardian.LastName,
		&guardian.Phone,
		&guardian.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving guardian: %w", err)
	}

	return &guardian, nil
}

// GetAll retrieves guardians with skip/limit pagination
func (r *GuardianRepository) GetAll(ctx context.Context, skip, limit int) ([]*models.Guardian, error) {
	query := `
		SELECT id, dni, first_name, last_name, phone, email
		FROM guardians
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guardians []*models.Guardian
	for rows.Next() {
		var guardian models.Guardian
		if err := rows.Scan(
			&guardian.ID,
			&guardian.DNI,
			&guardian.FirstName,
			&guardian.LastName,
			&guardian.Phone,
			&guardian.Email,
		); err != nil {
			return nil, err
		}
		guardians = append(guardians, &guardian)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return guardians, nil
}

// Update overwrites all mutable fields of the guardian identified by ID
func (r *GuardianRepository) Update(ctx context.Context, guardian *models.Guardian) error {
	query := `
		UPDATE guardians
		SET dni = $1, first_name = $2, last_name = $3, phone = $4, email = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		guardian.DNI, guardian.FirstName, guardian.LastName, guardian.Phone, guardian.Email, guardian.ID)
	if err != nil {
		return fmt.Errorf("error updating guardian: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes a guardian by ID
func (r *GuardianRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM guardians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting guardian: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
