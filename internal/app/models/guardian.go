package models

// Guardian defines the guardian (apoderado) model based on the 'guardians' table.
// The DNI is the natural key used by the admission staff.
type Guardian struct {
	ID        int64   `json:"id" db:"id"`
	DNI       string  `json:"dni" db:"dni"`
	FirstName string  `json:"firstName" db:"first_name"`
	LastName  string  `json:"lastName" db:"last_name"`
	Phone     *string `json:"phone,omitempty" db:"phone"`
	Email     *string `json:"email,omitempty" db:"email"`
}
