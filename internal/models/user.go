// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a named permission bundle a user can hold.
// Users may hold several roles at once via the user_roles table.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
	RoleReader   Role = "reader"
)

// Roles lists every valid role, in privilege order.
var Roles = []Role{RoleAdmin, RoleEditor, RoleAuthor, RoleReviewer, RoleReader}

// ValidRole reports whether name is one of the known role names.
func ValidRole(name string) bool {
	for _, r := range Roles {
		if string(r) == name {
			return true
		}
	}
	return false
}

// User represents an account that can authenticate against the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	IsSuperuser  bool      `json:"is_superuser"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole returns true if the user holds the given role explicitly.
// Superuser bypass is handled by the rbac package, not here.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
