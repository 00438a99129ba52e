package models

import "time"

// DocumentStatus is the closed set of review states for an uploaded document.
// It is tracked independently of the enrollment's own status.
type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "Pendiente"
	DocumentValidated DocumentStatus = "Validado"
	DocumentObserved  DocumentStatus = "Observado"
)

// IsValid reports whether s is a member of the document status set.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentValidated, DocumentObserved:
		return true
	}
	return false
}

// Document defines the document model based on the 'documents' table.
// FileURL is the stored path of the uploaded file.
type Document struct {
	ID           int64          `json:"id" db:"id"`
	EnrollmentID int64          `json:"enrollmentId" db:"enrollment_id"`
	Type         string         `json:"type" db:"type"` // DNI, Certificado, etc.
	FileURL      string         `json:"fileUrl" db:"file_url"`
	Status       DocumentStatus `json:"status" db:"status"`
	UploadedAt   time.Time      `json:"uploadedAt" db:"uploaded_at"`
}
