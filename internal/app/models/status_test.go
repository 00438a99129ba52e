package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentStatusIsValid(t *testing.T) {
	valid := []EnrollmentStatus{EnrollmentEnrolled, EnrollmentPending, EnrollmentWithdrawn, EnrollmentRejected}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	invalid := []EnrollmentStatus{"", "Aprobado", "matriculado", "MATRICULADO"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "expected %q to be invalid", s)
	}
}

func TestDocumentStatusIsValid(t *testing.T) {
	valid := []DocumentStatus{DocumentPending, DocumentValidated, DocumentObserved}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	invalid := []DocumentStatus{"", "Rechazado", "pendiente"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "expected %q to be invalid", s)
	}
}
