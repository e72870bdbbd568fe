// Package auth registers and authenticates users and issues session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"tubemetrics/internal/db"
	"tubemetrics/internal/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// dummyHash is compared against when the email is unknown so that login
// takes the same time whether or not the account exists.
var dummyHash, _ = HashPassword("not-a-real-password")

// UserStore is the persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type Service struct {
	users         UserStore
	secret        []byte
	tokenLifetime time.Duration
}

func NewService(users UserStore, secret string, tokenLifetime time.Duration) *Service {
	return &Service{
		users:         users,
		secret:        []byte(secret),
		tokenLifetime: tokenLifetime,
	}
}

// TokenLifetime is how long issued tokens stay valid.
func (s *Service) TokenLifetime() time.Duration {
	return s.tokenLifetime
}

// Register creates an active, unverified user. Emails are compared
// case-insensitively.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		ID:             uuid.NewString(),
		Email:          normalizeEmail(email),
		HashedPassword: hash,
		IsActive:       true,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, db.ErrNotFound) {
		CheckPassword(dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPassword(user.HashedPassword, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInactiveUser
	}

	token, err := GenerateToken(user.ID, s.secret, s.tokenLifetime)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves a session token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := GetUserIDFromToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
