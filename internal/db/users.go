package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"tubemetrics/internal/models"

	"github.com/lib/pq"
)

const userColumns = "id, email, hashed_password, is_active, is_superuser, is_verified, created_at"

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// CreateUser inserts a new user. A duplicate email yields ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, hashed_password, is_active, is_superuser, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	created := &models.User{}
	err := s.db.GetContext(ctx, created, query,
		user.ID, user.Email, user.HashedPassword, user.IsActive, user.IsSuperuser, user.IsVerified)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		log.Printf("Error creating user: %v", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// GetUserByEmail looks a user up by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// GetUserByID looks a user up by id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (s *Store) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := s.db.GetContext(ctx, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return nil, err
	}
	return user, nil
}
