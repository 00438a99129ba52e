package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document record
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	query := `
		INSERT INTO documents (enrollment_id, type, file_url, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		document.EnrollmentID, document.Type, document.FileURL, document.Status,
	).Scan(&document.ID, &document.UploadedAt)
	if err != nil {
		return fmt.Errorf("error creating document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID, returning nil when none exists
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := `
		SELECT id, enrollment_id, type, file_url, status, uploaded_at
		FROM documents
		WHERE id = $1
	`

	var document models.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&document.ID,
		&document.EnrollmentID,
		&document.Type,
		&document.FileURL,
		&document.Status,
		&document.UploadedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return &document, nil
}

// GetAll retrieves documents, optionally filtered by enrollment, paginated by
// skip/limit
func (r *DocumentRepository) GetAll(ctx context.Context, skip, limit int, enrollmentID *int64) ([]*models.Document, error) {
	query := `
		SELECT id, enrollment_id, type, file_url, status, uploaded_at
		FROM documents
	`
	args := []any{}
	if enrollmentID != nil {
		query += ` WHERE enrollment_id = $1 ORDER BY id OFFSET $2 LIMIT $3`
		args = append(args, *enrollmentID, skip, limit)
	} else {
		query += ` ORDER BY id OFFSET $1 LIMIT $2`
		args = append(args, skip, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		var document models.Document
		if err := rows.Scan(
			&document.ID,
			&document.EnrollmentID,
			&document.Type,
			&document.FileURL,
			&document.Status,
			&document.UploadedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &document)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}

// DeleteByEnrollmentID removes every document row of an enrollment and
// returns the stored file paths of the removed records for cleanup
func (r *DocumentRepository) DeleteByEnrollmentID(ctx context.Context, enrollmentID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM documents WHERE enrollment_id = $1 RETURNING file_url`, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error deleting documents for enrollment: %w", err)
	}
	defer rows.Close()

	var fileURLs []string
	for rows.Next() {
		var fileURL string
		if err := rows.Scan(&fileURL); err != nil {
			return nil, err
		}
		fileURLs = append(fileURLs, fileURL)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fileURLs, nil
}

// UpdateStatus sets the review status of a document
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE documents SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating document status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// Delete removes a document record by ID
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
