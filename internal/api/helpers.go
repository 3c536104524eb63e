// Package api implements the HTTP REST API for the menu board.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openmenuboard/menuboard/internal/auth"
	"github.com/openmenuboard/menuboard/internal/menu"
	"github.com/openmenuboard/menuboard/internal/models"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	ctrl   *menu.Controller
	auth   *auth.Service
	events EventBus
}

// EventBus is the interface the SSE endpoint uses to attach subscribers.
type EventBus interface {
	Subscribe(id string) <-chan models.ChangeEvent
	Unsubscribe(id string)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if appErr, ok := err.(*models.AppError); ok {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal("internal error"))
}

// weekdayParam reads the {day} path parameter, accepting weekdays only.
func weekdayParam(r *http.Request) (models.Slot, *models.AppError) {
	raw := chi.URLParam(r, "day")
	slot, ok := models.ParseWeekdaySlot(raw)
	if !ok {
		return "", models.ErrBadRequest("invalid day, use monday-friday")
	}
	return slot, nil
}

// slotParam reads the {day} path parameter, accepting weekdays and weekly.
func slotParam(r *http.Request) (models.Slot, *models.AppError) {
	raw := chi.URLParam(r, "day")
	slot, ok := models.ParseSlot(raw)
	if !ok {
		return "", models.ErrBadRequest("invalid day")
	}
	return slot, nil
}
