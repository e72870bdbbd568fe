package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"tubemetrics/internal/middleware"
	"tubemetrics/internal/models"
	"tubemetrics/internal/youtube"
)

const defaultHistoryLimit = 30

// GetStats fetches the channel statistics, stores them and returns the
// stored snapshot.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.fetcher == nil {
		log.Println("Stats requested but no YouTube API key is configured")
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}

	stats, err := h.fetcher.FetchChannelStats(r.Context(), h.channelID)
	if errors.Is(err, youtube.ErrChannelNotFound) {
		writeError(w, http.StatusNotFound, "channel not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching stats for channel %s: %v", h.channelID, err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}

	snap := models.StatSnapshot{
		SubscriberCount: stats.SubscriberCount,
		ViewCount:       stats.ViewCount,
		VideoCount:      stats.VideoCount,
	}
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		snap.UserID = &user.ID
	}

	stored, err := h.store.AppendSnapshot(r.Context(), snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

func (h *Handlers) GetHistoricalStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.LatestSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if snap == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No data yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) GetStatsHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeValidationError(w, map[string]string{"limit": "positive integer"})
			return
		}
		limit = n
	}

	snaps, err := h.store.ListSnapshots(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}
