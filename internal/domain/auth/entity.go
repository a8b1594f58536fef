package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password so callers cannot tell which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateCredential signals a registration colliding on a unique key.
	ErrDuplicateCredential = errors.New("credential already registered")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrNotFound indicates a missing principal record.
	ErrNotFound = errors.New("principal not found")
)

// ValidationError marks malformed or missing input so the transport layer
// can surface it as a client error rather than a server fault.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a short message.
func Validation(msg string) error { return ValidationError{Msg: msg} }

// Role labels the principal kind carried in token claims.
type Role string

const (
	// RoleStudent represents a student principal.
	RoleStudent Role = "student"
	// RoleTeacher represents a teacher principal.
	RoleTeacher Role = "teacher"
)

// Student models the student entity persisted in storage.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MatricNumber string    `json:"matricNumber"`
	Level        string    `json:"level"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Teacher models the teacher entity persisted in storage.
type Teacher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Identifier string
	Password   string
}
