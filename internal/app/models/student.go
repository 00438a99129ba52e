package models

import "time"

// Student defines the student model based on the 'students' table.
// Every student references exactly one guardian.
type Student struct {
	ID         int64     `json:"id" db:"id"`
	DNI        string    `json:"dni" db:"dni"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	BirthDate  time.Time `json:"birthDate" db:"birth_date"`
	Address    *string   `json:"address,omitempty" db:"address"`
	GuardianID int64     `json:"guardianId" db:"guardian_id"`

	// Relation (populated when needed)
	Guardian *Guardian `json:"guardian,omitempty"`
}
