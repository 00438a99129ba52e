package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrc-edu/matricula-backend/internal/app/models"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
)

type fakeDocumentStore struct {
	nextID    int64
	documents []*models.Document
	deleted   []int64
}

func (f *fakeDocumentStore) Create(ctx context.Context, document *models.Document) error {
	f.nextID++
	document.ID = f.nextID
	f.documents = append(f.documents, document)
	return nil
}

func (f *fakeDocumentStore) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	for _, d := range f.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDocumentStore) GetAll(ctx context.Context, skip, limit int, enrollmentID *int64) ([]*models.Document, error) {
	return f.documents, nil
}

func (f *fakeDocumentStore) UpdateStatus(ctx context.Context, id int64, status models.DocumentStatus) error {
	for _, d := range f.documents {
		if d.ID == id {
			d.Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeDocumentStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	for i, d := range f.documents {
		if d.ID == id {
			f.documents = append(f.documents[:i], f.documents[i+1:]...)
			break
		}
	}
	return nil
}

type fakeEnrollmentGetter struct{ enrollment *models.Enrollment }

func (f *fakeEnrollmentGetter) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return f.enrollment, nil
}

// fakeStorage records saves and deletes and can be forced to fail either.
type fakeStorage struct {
	saveErr   error
	deleteErr error
	saved     []string
	removed   []string
}

func (f *fakeStorage) Save(filename string, src io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, filename)
	return "uploads/documents/" + filename, nil
}

func (f *fakeStorage) Delete(filePath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.removed = append(f.removed, filePath)
	return nil
}

func (f *fakeStorage) FullPath(filePath string) string { return filePath }

func newTestDocumentService(store *fakeDocumentStore, enrollments *fakeEnrollmentGetter, storage *fakeStorage) *DocumentService {
	return NewDocumentService(store, enrollments, storage, zerolog.Nop())
}

func TestUploadDocumentSuccess(t *testing.T) {
	store := &fakeDocumentStore{}
	storage := &fakeStorage{}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{enrollment: &models.Enrollment{ID: 7}}, storage)

	document, err := svc.UploadDocument(context.Background(), 7, "DNI", "copia.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)
	require.NotNil(t, document)

	assert.Equal(t, int64(7), document.EnrollmentID)
	assert.Equal(t, models.DocumentPending, document.Status)
	require.Len(t, storage.saved, 1)
	assert.True(t, strings.HasPrefix(storage.saved[0], "7_DNI_"))
	assert.True(t, strings.HasSuffix(storage.saved[0], ".pdf"))
	assert.Equal(t, "uploads/documents/"+storage.saved[0], document.FileURL)
}

func TestUploadDocumentEnrollmentNotFound(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestDocumentService(&fakeDocumentStore{}, &fakeEnrollmentGetter{enrollment: nil}, storage)

	_, err := svc.UploadDocument(context.Background(), 7, "DNI", "copia.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, storage.saved)
}

func TestUploadDocumentRejectsExtension(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestDocumentService(&fakeDocumentStore{}, &fakeEnrollmentGetter{enrollment: &models.Enrollment{ID: 7}}, storage)

	_, err := svc.UploadDocument(context.Background(), 7, "DNI", "script.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, storage.saved)
}

func TestUploadDocumentExtensionCaseInsensitive(t *testing.T) {
	store := &fakeDocumentStore{}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{enrollment: &models.Enrollment{ID: 7}}, &fakeStorage{})

	_, err := svc.UploadDocument(context.Background(), 7, "Certificado", "FOTO.JPG", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Len(t, store.documents, 1)
}

func TestUploadDocumentStorageFailureLeavesNoRecord(t *testing.T) {
	store := &fakeDocumentStore{}
	storage := &fakeStorage{saveErr: errors.New("disk full")}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{enrollment: &models.Enrollment{ID: 7}}, storage)

	_, err := svc.UploadDocument(context.Background(), 7, "DNI", "copia.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Empty(t, store.documents)
}

func TestUpdateDocumentStatusInvalid(t *testing.T) {
	svc := newTestDocumentService(&fakeDocumentStore{}, &fakeEnrollmentGetter{}, &fakeStorage{})

	_, err := svc.UpdateDocumentStatus(context.Background(), 1, "Aprobado")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateDocumentStatusSuccess(t *testing.T) {
	store := &fakeDocumentStore{
		nextID: 1,
		documents: []*models.Document{
			{ID: 1, EnrollmentID: 7, Status: models.DocumentPending},
		},
	}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{}, &fakeStorage{})

	document, err := svc.UpdateDocumentStatus(context.Background(), 1, string(models.DocumentValidated))
	require.NoError(t, err)
	assert.Equal(t, models.DocumentValidated, document.Status)
}

func TestDeleteDocumentRemovesFileAndRecord(t *testing.T) {
	store := &fakeDocumentStore{
		nextID: 1,
		documents: []*models.Document{
			{ID: 1, EnrollmentID: 7, FileURL: "uploads/documents/7_DNI_x.pdf"},
		},
	}
	storage := &fakeStorage{}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{}, storage)

	err := svc.DeleteDocument(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/documents/7_DNI_x.pdf"}, storage.removed)
	assert.Equal(t, []int64{1}, store.deleted)
}

func TestDeleteDocumentFileFailureStillDeletesRecord(t *testing.T) {
	store := &fakeDocumentStore{
		nextID: 1,
		documents: []*models.Document{
			{ID: 1, EnrollmentID: 7, FileURL: "uploads/documents/7_DNI_x.pdf"},
		},
	}
	storage := &fakeStorage{deleteErr: errors.New("permission denied")}
	svc := newTestDocumentService(store, &fakeEnrollmentGetter{}, storage)

	err := svc.DeleteDocument(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, store.deleted)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	svc := newTestDocumentService(&fakeDocumentStore{}, &fakeEnrollmentGetter{}, &fakeStorage{})

	err := svc.DeleteDocument(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
