package handlers

import (
	"net/http"
	"tubemetrics/internal/middleware"

	"github.com/gorilla/mux"
)

// Routes registers every endpoint on a new router.
func (h *Handlers) Routes(limiter *middleware.RateLimiterMiddleware) *mux.Router {
	r := mux.NewRouter()
	require := func(fn http.HandlerFunc) http.Handler {
		return h.sessions.Require(fn)
	}

	r.HandleFunc("/", h.Root).Methods(http.MethodGet)

	r.Handle("/stats", h.sessions.Optional(limiter.Middleware(http.HandlerFunc(h.GetStats)))).Methods(http.MethodGet)
	r.HandleFunc("/stats/history", h.GetStatsHistory).Methods(http.MethodGet)
	r.HandleFunc("/historical_stats", h.GetHistoricalStats).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/jwt/login", h.Login).Methods(http.MethodPost)
	r.Handle("/auth/jwt/logout", require(h.Logout)).Methods(http.MethodPost)

	r.Handle("/users/me", require(h.GetMe)).Methods(http.MethodGet)

	r.Handle("/onboarding", require(h.PostOnboarding)).Methods(http.MethodPost)
	r.Handle("/onboarding/me", require(h.GetOnboarding)).Methods(http.MethodGet)

	return r
}
