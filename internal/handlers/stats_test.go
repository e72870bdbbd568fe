package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"tubemetrics/internal/test"
	"tubemetrics/internal/youtube"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var snapshotCols = []string{"id", "created_at", "subscriber_count", "view_count", "video_count", "user_id"}

func TestRoot(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"TubeMetrics API is running"}`, rr.Body.String())
}

func TestGetStats(t *testing.T) {
	t.Run("fetches and stores snapshot", func(t *testing.T) {
		fetcher := &fakeFetcher{stats: &youtube.ChannelStats{SubscriberCount: 100, ViewCount: 500, VideoCount: 10}}
		router, mock := newTestRouter(t, fetcher)
		start := time.Now().UTC()

		rows := sqlmock.NewRows(snapshotCols).AddRow(int64(1), start, int64(100), int64(500), int64(10), nil)
		mock.ExpectQuery(`INSERT INTO stat_snapshots`).
			WithArgs(notBefore(start), int64(100), int64(500), int64(10), nil).
			WillReturnRows(rows)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, float64(100), body["subscriber_count"])
		assert.Equal(t, float64(500), body["view_count"])
		assert.Equal(t, float64(10), body["video_count"])
		assert.NotEmpty(t, body["timestamp"])
		assert.NotContains(t, body, "user_id")
		assert.Equal(t, "UC123", fetcher.channelID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("records owner when signed in", func(t *testing.T) {
		fetcher := &fakeFetcher{stats: &youtube.ChannelStats{SubscriberCount: 1, ViewCount: 2, VideoCount: 3}}
		router, mock := newTestRouter(t, fetcher)

		test.ExpectUserLookup(mock, "u-1", "creator@example.com", true)
		rows := sqlmock.NewRows(snapshotCols).AddRow(int64(2), time.Now(), int64(1), int64(2), int64(3), "u-1")
		mock.ExpectQuery(`INSERT INTO stat_snapshots`).
			WithArgs(sqlmock.AnyArg(), int64(1), int64(2), int64(3), "u-1").
			WillReturnRows(rows)

		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.AddCookie(sessionCookie(t, "u-1"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "u-1", decodeBody(t, rr)["user_id"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	failures := []struct {
		name    string
		fetcher StatsFetcher
		status  int
		body    string
	}{
		{"channel not found", &fakeFetcher{err: youtube.ErrChannelNotFound}, http.StatusNotFound, `{"error":"channel not found"}`},
		{"upstream failure", &fakeFetcher{err: fmt.Errorf("%w: quota", youtube.ErrUpstreamUnavailable)}, http.StatusBadGateway, `{"error":"upstream unavailable"}`},
		{"no fetcher configured", nil, http.StatusBadGateway, `{"error":"upstream unavailable"}`},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			router, mock := newTestRouter(t, tc.fetcher)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

			assert.Equal(t, tc.status, rr.Code)
			assert.JSONEq(t, tc.body, rr.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("store failure", func(t *testing.T) {
		fetcher := &fakeFetcher{stats: &youtube.ChannelStats{}}
		router, mock := newTestRouter(t, fetcher)
		mock.ExpectQuery(`INSERT INTO stat_snapshots`).WillReturnError(errors.New("db down"))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetHistoricalStats(t *testing.T) {
	t.Run("no data yet", func(t *testing.T) {
		router, mock := newTestRouter(t, nil)
		mock.ExpectQuery(`SELECT (.+) FROM stat_snapshots`).WillReturnRows(sqlmock.NewRows(snapshotCols))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/historical_stats", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"No data yet"}`, rr.Body.String())
	})

	t.Run("latest snapshot", func(t *testing.T) {
		router, mock := newTestRouter(t, nil)
		rows := sqlmock.NewRows(snapshotCols).AddRow(int64(9), time.Now(), int64(42), int64(4200), int64(7), nil)
		mock.ExpectQuery(`SELECT (.+) FROM stat_snapshots ORDER BY created_at DESC, id DESC LIMIT 1`).WillReturnRows(rows)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/historical_stats", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, float64(9), body["id"])
		assert.Equal(t, float64(42), body["subscriber_count"])
	})
}

func TestGetStatsHistory(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		router, mock := newTestRouter(t, nil)
		rows := sqlmock.NewRows(snapshotCols).AddRow(int64(1), time.Now(), int64(1), int64(1), int64(1), nil)
		mock.ExpectQuery(`SELECT (.+) FROM stat_snapshots (.+) LIMIT \$1`).WithArgs(defaultHistoryLimit).WillReturnRows(rows)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats/history", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid limit", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats/history?limit=abc", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
