package models

// RoleAdmin is the only role in use, the backend serves administrative staff.
const RoleAdmin = "admin"

// User defines the staff account model based on the 'users' table.
type User struct {
	ID             int64  `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	Email          string `json:"email" db:"email"`
	HashedPassword string `json:"-" db:"hashed_password"`
	FullName       string `json:"fullName" db:"full_name"`
	Role           string `json:"role" db:"role"`
	IsActive       bool   `json:"isActive" db:"is_active"`
}
