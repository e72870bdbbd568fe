package test

import (
	"testing"
	"time"
	"tubemetrics/internal/auth"
	"tubemetrics/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

// Secret signs tokens in tests.
const Secret = "test-secret"

// UserColumns are the columns returned by user queries.
var UserColumns = []string{"id", "email", "hashed_password", "is_active", "is_superuser", "is_verified", "created_at"}

// NewMockDB returns a Store backed by sqlmock.
func NewMockDB(t *testing.T) (*db.Store, sqlmock.Sqlmock) {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockDb.Close() })

	return db.New(sqlx.NewDb(mockDb, "sqlmock")), mock
}

// Token signs a valid session token for userID.
func Token(t *testing.T, userID string) string {
	token, err := auth.GenerateToken(userID, []byte(Secret), time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// ExpectUserLookup expects the middleware's user-by-id query.
func ExpectUserLookup(mock sqlmock.Sqlmock, userID, email string, active bool) {
	rows := sqlmock.NewRows(UserColumns).AddRow(userID, email, "hash", active, false, false, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).WithArgs(userID).WillReturnRows(rows)
}
