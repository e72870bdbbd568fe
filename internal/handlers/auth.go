package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"tubemetrics/internal/auth"
	"tubemetrics/internal/db"
	"tubemetrics/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

func (req *registerRequest) trim() {
	req.Email = strings.TrimSpace(req.Email)
}

type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.trim()
	if !check(w, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, db.ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "REGISTER_USER_ALREADY_EXISTS")
		return
	}
	if err != nil {
		log.Printf("Error registering user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("Registered user %s", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// Login takes form-encoded username and password and sets the session cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeValidationError(w, map[string]string{"body": "invalid form"})
		return
	}

	form := loginForm{Username: r.PostFormValue("username"), Password: r.PostFormValue("password")}
	if !check(w, &form) {
		return
	}

	token, _, err := h.auth.Login(r.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInactiveUser) {
		writeError(w, http.StatusBadRequest, "LOGIN_BAD_CREDENTIALS")
		return
	}
	if err != nil {
		log.Printf("Error logging in: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.sessions.SetSession(w, token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
