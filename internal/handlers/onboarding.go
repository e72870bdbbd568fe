package handlers

import (
	"errors"
	"net/http"
	"strings"
	"tubemetrics/internal/db"
	"tubemetrics/internal/middleware"
	"tubemetrics/internal/models"
)

type onboardingRequest struct {
	Role                string `json:"role" validate:"required,max=100"`
	PrimaryGoal         string `json:"primary_goal" validate:"required,max=200"`
	Niche               string `json:"niche" validate:"max=100"`
	PostingCadence      string `json:"posting_cadence" validate:"max=50"`
	AudienceDescription string `json:"audience_description" validate:"max=2000"`
	Completed           bool   `json:"completed"`
}

func (req *onboardingRequest) trim() {
	req.Role = strings.TrimSpace(req.Role)
	req.PrimaryGoal = strings.TrimSpace(req.PrimaryGoal)
	req.Niche = strings.TrimSpace(req.Niche)
	req.PostingCadence = strings.TrimSpace(req.PostingCadence)
	req.AudienceDescription = strings.TrimSpace(req.AudienceDescription)
}

// PostOnboarding creates or replaces the caller's onboarding profile.
func (h *Handlers) PostOnboarding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req onboardingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.trim()
	if !check(w, &req) {
		return
	}

	profile, created, err := h.store.UpsertOnboardingProfile(r.Context(), models.OnboardingProfile{
		UserID:              user.ID,
		Role:                req.Role,
		PrimaryGoal:         req.PrimaryGoal,
		Niche:               req.Niche,
		PostingCadence:      req.PostingCadence,
		AudienceDescription: req.AudienceDescription,
		Completed:           req.Completed,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, profile)
}

func (h *Handlers) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	profile, err := h.store.GetOnboardingProfile(r.Context(), user.ID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "onboarding profile not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
