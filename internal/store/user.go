package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateUserParams represents parameters for creating a user
type CreateUserParams struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash *string
	GoogleID     *string
}

const userColumns = `id, email, first_name, last_name, password_hash, google_id, created_at, updated_at`

const sqlCreateUser = `
INSERT INTO users (email, first_name, last_name, password_hash, google_id)
VALUES (LOWER($1), $2, $3, $4, $5)
RETURNING ` + userColumns

// CreateUser inserts a user; a duplicate email returns ErrUniqueViolation
func (s *Store) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlCreateUser,
		params.Email,
		params.FirstName,
		params.LastName,
		params.PasswordHash,
		params.GoogleID)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUniqueViolation
		}
		s.logger.Error(ctx, "failed to create user", err)
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

const sqlGetUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by id", err)
		return User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

const sqlGetUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = LOWER($1)`

// GetUserByEmail retrieves a user by email, case-insensitively
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByEmail, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by email", err)
		return User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

const sqlGetUserByGoogleID = `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`

// GetUserByGoogleID retrieves a user linked to a Google account
func (s *Store) GetUserByGoogleID(ctx context.Context, googleID string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlGetUserByGoogleID, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get user by google id", err)
		return User{}, fmt.Errorf("failed to get user by google id: %w", err)
	}
	return user, nil
}

const sqlLinkGoogleAccount = `
UPDATE users
SET google_id = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + userColumns

// LinkGoogleAccount attaches a Google account to an existing user
func (s *Store) LinkGoogleAccount(ctx context.Context, userID uuid.UUID, googleID string) (User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, sqlLinkGoogleAccount, userID, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrUniqueViolation
		}
		s.logger.Error(ctx, "failed to link google account", err)
		return User{}, fmt.Errorf("failed to link google account: %w", err)
	}
	return user, nil
}
