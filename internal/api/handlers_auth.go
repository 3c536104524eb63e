package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/openmenuboard/menuboard/internal/auth"
	"github.com/openmenuboard/menuboard/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string        `json:"message"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      auth.Identity `json:"user"`
}

func (h *Handlers) loginPost(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.ErrBadRequest("invalid JSON body"))
		return
	}

	token, expires, appErr := h.auth.Login(req.Username, req.Password)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Message:   "login successful",
		Token:     token,
		ExpiresAt: expires,
		User:      auth.Identity{Username: req.Username},
	})
}

func (h *Handlers) verifyGet(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		writeError(w, models.ErrUnauthorized)
		return
	}
	id, appErr := h.auth.Verify(token)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]auth.Identity{"user": id})
}
