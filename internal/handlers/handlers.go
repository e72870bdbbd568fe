package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"tubemetrics/internal/auth"
	"tubemetrics/internal/db"
	"tubemetrics/internal/middleware"
	"tubemetrics/internal/youtube"
)

// StatsFetcher fetches the current statistics of a channel.
type StatsFetcher interface {
	FetchChannelStats(ctx context.Context, channelID string) (*youtube.ChannelStats, error)
}

type Handlers struct {
	store     *db.Store
	fetcher   StatsFetcher
	channelID string
	auth      *auth.Service
	sessions  *middleware.Authenticator
}

// New wires the handlers. fetcher may be nil when no YouTube credential is
// configured; /stats then reports the upstream as unavailable.
func New(store *db.Store, fetcher StatsFetcher, channelID string, authService *auth.Service, sessions *middleware.Authenticator) *Handlers {
	return &Handlers{
		store:     store,
		fetcher:   fetcher,
		channelID: channelID,
		auth:      authService,
		sessions:  sessions,
	}
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "TubeMetrics API is running"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
