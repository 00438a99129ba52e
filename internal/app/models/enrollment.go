package models

import "time"

// EnrollmentStatus is the closed set of states an enrollment can be in.
// The Spanish literals are the values stored in the database and exposed
// through the API.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "Matriculado"
	EnrollmentPending   EnrollmentStatus = "Pendiente"
	EnrollmentWithdrawn EnrollmentStatus = "Retirado"
	EnrollmentRejected  EnrollmentStatus = "Rechazado"
)

// IsValid reports whether s is a member of the enrollment status set.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentEnrolled, EnrollmentPending, EnrollmentWithdrawn, EnrollmentRejected:
		return true
	}
	return false
}

// Enrollment binds a student to a grade/section within one academic year.
// Any status may move to any other status, there is no terminal state.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	AcademicYearID int64            `json:"academicYearId" db:"academic_year_id"`
	GradeID        int64            `json:"gradeId" db:"grade_id"`
	SectionID      int64            `json:"sectionId" db:"section_id"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`

	// Relations (populated for listings)
	Student *Student `json:"student,omitempty"`
	Grade   *Grade   `json:"grade,omitempty"`
	Section *Section `json:"section,omitempty"`
}
