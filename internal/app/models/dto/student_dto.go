package dto

// CreateGuardianRequest is the request body for creating or updating a guardian
type CreateGuardianRequest struct {
	DNI       string  `json:"dni" binding:"required,len=8"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// CreateStudentRequest is the request body for creating or updating a student.
// BirthDate uses the 2006-01-02 layout. GuardianDNI must reference an existing
// guardian.
type CreateStudentRequest struct {
	DNI         string  `json:"dni" binding:"required,len=8"`
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	BirthDate   string  `json:"birthDate" binding:"required"`
	Address     *string `json:"address"`
	GuardianDNI string  `json:"guardianDni" binding:"required,len=8"`
}
