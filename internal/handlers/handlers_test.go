package handlers

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"tubemetrics/internal/auth"
	"tubemetrics/internal/middleware"
	"tubemetrics/internal/test"
	"tubemetrics/internal/youtube"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeFetcher struct {
	stats     *youtube.ChannelStats
	err       error
	channelID string
}

func (f *fakeFetcher) FetchChannelStats(ctx context.Context, channelID string) (*youtube.ChannelStats, error) {
	f.channelID = channelID
	return f.stats, f.err
}

// notBefore matches a time argument at or after the given instant.
type notBefore time.Time

func (nb notBefore) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	return ok && !ts.Before(time.Time(nb))
}

func newTestRouter(t *testing.T, fetcher StatsFetcher) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	store, mock := test.NewMockDB(t)
	svc := auth.NewService(store, test.Secret, time.Hour)
	sessions := middleware.NewAuthenticator(svc, false)
	h := New(store, fetcher, "UC123", svc, sessions)
	return h.Routes(middleware.NewRateLimiterMiddleware(rate.Inf, 1)), mock
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	return &http.Cookie{Name: middleware.SessionCookieName, Value: test.Token(t, userID)}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}
