package models

import "time"

// AcademicYear defines the academic year model based on the 'academic_years' table.
// At most one year should be active at a time, but the system does not enforce it.
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	Year      int       `json:"year" db:"year"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsActive  bool      `json:"isActive" db:"is_active"`
}

// Grade defines the grade model based on the 'grades' table (1° Primaria, ...).
type Grade struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Level string `json:"level" db:"level"` // Primaria, Secundaria
}

// DefaultSectionCapacity is the seat capacity assigned when none is given.
const DefaultSectionCapacity = 30

// Section defines the section model based on the 'sections' table.
// Capacity is fixed at creation and never recomputed.
type Section struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"` // A, B, C...
	GradeID  int64  `json:"gradeId" db:"grade_id"`
	Capacity int    `json:"capacity" db:"capacity"`

	// Relation (populated when needed)
	Grade *Grade `json:"grade,omitempty"`
}
