// Package store provides database access methods for all blog entities.
// Each store struct wraps a *sql.DB and exposes typed query methods. Every
// mutation runs in a single transaction so a crash mid-operation never
// leaves partial state behind.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"linguablog/internal/apperr"
	"linguablog/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user with the given role set. The password must
// already be hashed by the caller.
func (s *UserStore) Create(email, passwordHash, displayName string, roles []models.Role) (*models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create user begin: %w", err)
	}
	defer tx.Rollback()

	u := &models.User{}
	err = tx.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, display_name, is_superuser, created_at, updated_at
	`, email, passwordHash, displayName).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsSuperuser,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validationf("email %q is already registered", email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	for _, role := range roles {
		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		`, u.ID, role); err != nil {
			return nil, fmt.Errorf("create user role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create user commit: %w", err)
	}

	u.Roles = append([]models.Role(nil), roles...)
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, display_name, is_superuser, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsSuperuser,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u.Roles, err = s.rolesOf(u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, display_name, is_superuser, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsSuperuser,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u.Roles, err = s.rolesOf(u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// rolesOf loads the explicit role assignment for a user.
func (s *UserStore) rolesOf(userID uuid.UUID) ([]models.Role, error) {
	rows, err := s.db.Query(`
		SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("user roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// AssignRoles replaces the user's entire role assignment with exactly the
// given set, atomically. The caller validates role names beforehand; an
// empty set is rejected here as a final guard.
func (s *UserStore) AssignRoles(userID uuid.UUID, roles []models.Role) error {
	if len(roles) == 0 {
		return apperr.Validationf("at least one role is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("assign roles begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("assign roles clear: %w", err)
	}
	for _, role := range roles {
		if _, err := tx.Exec(`
			INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		`, userID, role); err != nil {
			return fmt.Errorf("assign role %s: %w", role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("assign roles commit: %w", err)
	}
	return nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, email, password_hash, display_name, is_superuser, created_at, updated_at
		FROM users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsSuperuser,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Roles, err = s.rolesOf(users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}
