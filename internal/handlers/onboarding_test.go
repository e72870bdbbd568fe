package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tubemetrics/internal/test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var profileCols = []string{"id", "user_id", "role", "primary_goal", "niche", "posting_cadence",
	"audience_description", "completed", "created_at", "updated_at"}

func onboardingRequestFor(t *testing.T, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, "u-1"))
	return req
}

func TestOnboardingSubmittedTwice(t *testing.T) {
	router, mock := newTestRouter(t, nil)
	now := time.Now()

	// first submission creates the row
	test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM onboarding_profiles WHERE user_id = \$1 FOR UPDATE`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO onboarding_profiles`).
		WithArgs("u-1", "creator", "grow", "cooking", "weekly", "home cooks", false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(int64(1), "u-1", "creator", "grow", "cooking", "weekly", "home cooks", false, now, now))
	mock.ExpectCommit()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, onboardingRequestFor(t, `{"role":" creator ","primary_goal":"grow","niche":"cooking","posting_cadence":"weekly","audience_description":"home cooks"}`))
	assert.Equal(t, http.StatusCreated, rr.Code)

	// second submission overwrites the same row
	test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM onboarding_profiles WHERE user_id = \$1 FOR UPDATE`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`UPDATE onboarding_profiles`).
		WithArgs("educator", "monetize", "baking", "daily", "students", true, sqlmock.AnyArg(), int64(1)).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(int64(1), "u-1", "educator", "monetize", "baking", "daily", "students", true, now, now.Add(time.Minute)))
	mock.ExpectCommit()

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, onboardingRequestFor(t, `{"role":"educator","primary_goal":"monetize","niche":"baking","posting_cadence":"daily","audience_description":"students","completed":true}`))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["id"])

	// read sees the second submission
	test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)
	mock.ExpectQuery(`SELECT (.+) FROM onboarding_profiles WHERE user_id = \$1`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(int64(1), "u-1", "educator", "monetize", "baking", "daily", "students", true, now, now.Add(time.Minute)))

	req := httptest.NewRequest(http.MethodGet, "/onboarding/me", nil)
	req.AddCookie(sessionCookie(t, "u-1"))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "educator", body["role"])
	assert.Equal(t, "baking", body["niche"])
	assert.Equal(t, true, body["completed"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnboardingValidation(t *testing.T) {
	router, mock := newTestRouter(t, nil)
	test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, onboardingRequestFor(t, `{"role":"   ","niche":"cooking"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"role":"required","primary_goal":"required"}}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOnboardingNotFound(t *testing.T) {
	router, mock := newTestRouter(t, nil)
	test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)
	mock.ExpectQuery(`SELECT (.+) FROM onboarding_profiles WHERE user_id = \$1`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(profileCols))

	req := httptest.NewRequest(http.MethodGet, "/onboarding/me", nil)
	req.AddCookie(sessionCookie(t, "u-1"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"onboarding profile not found"}`, rr.Body.String())
}
