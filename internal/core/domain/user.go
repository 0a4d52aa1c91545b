package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles. Keeping it a named type
// (instead of passing raw strings around) prevents typo-driven privilege bugs.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the recognised roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrDuplicateEmail = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")

// User models a registered account. The password is stored only as a bcrypt
// hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified claim set extracted from a bearer token. It is
// produced by the Auth middleware and threaded explicitly into service calls.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
