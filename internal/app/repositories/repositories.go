package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// isNoRows reports whether err is pgx.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx. Repository
// methods that must run inside the caller's transaction take it explicitly.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	GuardianRepository     *GuardianRepository
	StudentRepository      *StudentRepository
	AcademicYearRepository *AcademicYearRepository
	GradeRepository        *GradeRepository
	SectionRepository      *SectionRepository
	EnrollmentRepository   *EnrollmentRepository
	DocumentRepository     *DocumentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		GuardianRepository:     NewGuardianRepository(db),
		StudentRepository:      NewStudentRepository(db),
		AcademicYearRepository: NewAcademicYearRepository(db),
		GradeRepository:        NewGradeRepository(db),
		SectionRepository:      NewSectionRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
	}
}
