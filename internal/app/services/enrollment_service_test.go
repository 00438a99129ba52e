package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/app/repositories"
	"github.com/mrc-edu/matricula-backend/internal/db"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
	"github.com/mrc-edu/matricula-backend/internal/pkg/helpers"
)

// fakeTxRunner executes the callback directly, no real transaction involved.
type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

// fakeEnrollmentStore keeps enrollments in memory. CountActive mirrors the
// production query: every status except Rechazado occupies a seat.
type fakeEnrollmentStore struct {
	nextID    int64
	existing  []*models.Enrollment
	lastSkip  int
	lastLimit int
	deleteErr error
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, q repositories.DBTX, enrollment *models.Enrollment) error {
	f.nextID++
	enrollment.ID = f.nextID
	f.existing = append(f.existing, enrollment)
	return nil
}

func (f *fakeEnrollmentStore) CountActive(ctx context.Context, q repositories.DBTX, sectionID, academicYearID int64) (int, error) {
	count := 0
	for _, e := range f.existing {
		if e.SectionID == sectionID && e.AcademicYearID == academicYearID && e.Status != models.EnrollmentRejected {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentStore) ExistsForStudentYear(ctx context.Context, q repositories.DBTX, studentID, academicYearID int64) (bool, error) {
	for _, e := range f.existing {
		if e.StudentID == studentID && e.AcademicYearID == academicYearID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	for _, e := range f.existing {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentStore) GetAll(ctx context.Context, skip, limit int) ([]*models.Enrollment, error) {
	f.lastSkip = skip
	f.lastLimit = limit
	return f.existing, nil
}

func (f *fakeEnrollmentStore) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	for _, e := range f.existing {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, e := range f.existing {
		if e.ID == id {
			f.existing = append(f.existing[:i], f.existing[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeStudentChecker struct{ exists bool }

func (f *fakeStudentChecker) ExistsByID(ctx context.Context, q repositories.DBTX, id int64) (bool, error) {
	return f.exists, nil
}

type fakeYearChecker struct{ exists bool }

func (f *fakeYearChecker) ExistsByID(ctx context.Context, q repositories.DBTX, id int64) (bool, error) {
	return f.exists, nil
}

type fakeSectionGetter struct{ section *models.Section }

func (f *fakeSectionGetter) GetByID(ctx context.Context, q repositories.DBTX, id int64) (*models.Section, error) {
	return f.section, nil
}

// fakeDocumentRemover hands back the configured file paths once, the way the
// row delete returns each document a single time.
type fakeDocumentRemover struct {
	fileURLs   []string
	removedFor []int64
}

func (f *fakeDocumentRemover) DeleteByEnrollmentID(ctx context.Context, enrollmentID int64) ([]string, error) {
	f.removedFor = append(f.removedFor, enrollmentID)
	urls := f.fileURLs
	f.fileURLs = nil
	return urls, nil
}

func newTestEnrollmentService(store *fakeEnrollmentStore, students *fakeStudentChecker, years *fakeYearChecker, sections *fakeSectionGetter) *EnrollmentService {
	return NewEnrollmentService(&fakeTxRunner{}, store, &fakeDocumentRemover{}, students, years, sections, &fakeStorage{}, zerolog.Nop())
}

func enrollmentRequest() *dto.CreateEnrollmentRequest {
	return &dto.CreateEnrollmentRequest{
		StudentID:      1,
		AcademicYearID: 10,
		GradeID:        20,
		SectionID:      30,
	}
}

func TestCreateEnrollmentSuccess(t *testing.T) {
	store := &fakeEnrollmentStore{}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	enrollment, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.NotZero(t, enrollment.ID)
	assert.Len(t, store.existing, 1)
}

func TestCreateEnrollmentStudentNotFound(t *testing.T) {
	store := &fakeEnrollmentStore{}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: false},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, store.existing)
}

func TestCreateEnrollmentYearNotFound(t *testing.T) {
	svc := newTestEnrollmentService(
		&fakeEnrollmentStore{},
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: false},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateEnrollmentSectionNotFound(t *testing.T) {
	svc := newTestEnrollmentService(
		&fakeEnrollmentStore{},
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: nil},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateEnrollmentCapacityExceeded(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 2,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 100, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
			{ID: 2, StudentID: 101, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentPending},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Len(t, store.existing, 2)
}

func TestCreateEnrollmentWithdrawnStillOccupiesSeat(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 2,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 100, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
			{ID: 2, StudentID: 101, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentWithdrawn},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
}

func TestCreateEnrollmentRejectedFreesSeat(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 2,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 100, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
			{ID: 2, StudentID: 101, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentRejected},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	enrollment, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
}

func TestCreateEnrollmentDuplicateStudentYear(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			// Rejected earlier, yet still counts as already enrolled this year.
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 99, Status: models.EnrollmentRejected},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.CreateEnrollment(context.Background(), enrollmentRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)
	assert.Len(t, store.existing, 1)
}

func TestUpdateEnrollmentStatusInvalid(t *testing.T) {
	svc := newTestEnrollmentService(
		&fakeEnrollmentStore{},
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.UpdateEnrollmentStatus(context.Background(), 1, "Aprobado")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateEnrollmentStatusNotFound(t *testing.T) {
	svc := newTestEnrollmentService(
		&fakeEnrollmentStore{},
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	_, err := svc.UpdateEnrollmentStatus(context.Background(), 999, string(models.EnrollmentWithdrawn))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateEnrollmentStatusSuccess(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	enrollment, err := svc.UpdateEnrollmentStatus(context.Background(), 1, string(models.EnrollmentWithdrawn))
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentWithdrawn, enrollment.Status)
}

func TestDeleteEnrollmentNotFound(t *testing.T) {
	svc := newTestEnrollmentService(
		&fakeEnrollmentStore{},
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	err := svc.DeleteEnrollment(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteEnrollmentSuccess(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
		},
	}
	svc := newTestEnrollmentService(
		store,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
	)

	err := svc.DeleteEnrollment(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, store.existing)
}

func TestDeleteEnrollmentForeignKeyConflict(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
		},
		deleteErr: &pgconn.PgError{Code: "23503"},
	}
	svc := newTestEnrollmentService(store, &fakeStudentChecker{exists: true}, &fakeYearChecker{exists: true}, &fakeSectionGetter{})

	err := svc.DeleteEnrollment(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestGetAllEnrollmentsClampsListParams(t *testing.T) {
	store := &fakeEnrollmentStore{}
	svc := newTestEnrollmentService(store, &fakeStudentChecker{exists: true}, &fakeYearChecker{exists: true}, &fakeSectionGetter{})

	_, err := svc.GetAllEnrollments(context.Background(), -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, store.lastSkip)
	assert.Equal(t, helpers.DefaultLimit, store.lastLimit)
}

func TestDeleteEnrollmentRemovesDocuments(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
		},
	}
	remover := &fakeDocumentRemover{
		fileURLs: []string{"uploads/documents/1_DNI_x.pdf", "uploads/documents/1_Certificado_y.pdf"},
	}
	storage := &fakeStorage{}
	svc := NewEnrollmentService(
		&fakeTxRunner{},
		store,
		remover,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
		storage,
		zerolog.Nop(),
	)

	err := svc.DeleteEnrollment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, remover.removedFor)
	assert.Equal(t, []string{"uploads/documents/1_DNI_x.pdf", "uploads/documents/1_Certificado_y.pdf"}, storage.removed)
	assert.Empty(t, store.existing)
}

func TestDeleteEnrollmentFileFailureStillDeletes(t *testing.T) {
	store := &fakeEnrollmentStore{
		nextID: 1,
		existing: []*models.Enrollment{
			{ID: 1, StudentID: 1, AcademicYearID: 10, SectionID: 30, Status: models.EnrollmentEnrolled},
		},
	}
	remover := &fakeDocumentRemover{fileURLs: []string{"uploads/documents/1_DNI_x.pdf"}}
	storage := &fakeStorage{deleteErr: errors.New("permission denied")}
	svc := NewEnrollmentService(
		&fakeTxRunner{},
		store,
		remover,
		&fakeStudentChecker{exists: true},
		&fakeYearChecker{exists: true},
		&fakeSectionGetter{section: &models.Section{ID: 30, Capacity: 2}},
		storage,
		zerolog.Nop(),
	)

	err := svc.DeleteEnrollment(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, store.existing)
}
