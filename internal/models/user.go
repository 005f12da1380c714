package models

import "time"

// UserDB represents a user record in the database.
// PasswordHash is excluded from JSON output: responses never carry the hash.
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt digest
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`  // Set once at creation

	// Optional profile fields, absent at registration.
	FullName    *string    `json:"fullName,omitempty" db:"full_name"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Gender      *string    `json:"gender,omitempty" db:"gender"`
	Position    *string    `json:"position,omitempty" db:"position"`
	Department  *string    `json:"department,omitempty" db:"department"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	PhotoPath   *string    `json:"photoPath,omitempty" db:"photo_path"`
}
