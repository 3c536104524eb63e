package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openmenuboard/menuboard/internal/models"
)

// keepAliveInterval is how often an idle event stream sends a comment line
// so intermediary proxies do not time the connection out.
const keepAliveInterval = 30 * time.Second

// sseEvents handles the display clients' SSE subscription. Each client
// receives a connected event with the currently resolved day immediately,
// then change events as admin actions happen, with a ping every 30s while
// idle. The handler returns (and the subscriber is removed) when the client
// disconnects or a write fails.
func (h *Handlers) sseEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	id := uuid.New().String()
	ch := h.events.Subscribe(id)
	defer h.events.Unsubscribe(id)
	slog.Debug("sse: display connected", "id", id)
	defer slog.Debug("sse: display disconnected", "id", id)

	connected := models.ChangeEvent{
		Type:        models.EventConnected,
		Message:     "SSE connection established",
		SelectedDay: h.ctrl.SelectedOrToday(),
		Timestamp:   time.Now(),
	}
	if err := writeSSE(w, flusher, connected); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := writeSSE(w, flusher, ev); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
