package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openmenuboard/menuboard/internal/menu"
	"github.com/openmenuboard/menuboard/internal/models"
)

// uploadField is the multipart form field the image arrives in.
const uploadField = "menu"

func (h *Handlers) uploadDaily(w http.ResponseWriter, r *http.Request) {
	slot, appErr := weekdayParam(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	h.upload(w, r, slot)
}

func (h *Handlers) uploadWeekly(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, models.SlotWeekly)
}

func (h *Handlers) upload(w http.ResponseWriter, r *http.Request, slot models.Slot) {
	data, appErr := readUpload(w, r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.ctrl.Upload(slot, data)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload pulls the image bytes out of the multipart body, mapping
// oversize and missing-file failures to validation errors.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, *models.AppError) {
	// Leave headroom for the multipart framing around a max-size image.
	r.Body = http.MaxBytesReader(w, r.Body, menu.MaxImageBytes+1<<20)

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, models.ErrBadRequest("image exceeds the 10 MB limit")
		}
		return nil, models.ErrBadRequest("no file uploaded")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, models.ErrBadRequest("image exceeds the 10 MB limit")
		}
		return nil, models.ErrBadRequest("failed to read uploaded file")
	}
	return data, nil
}

func (h *Handlers) setDisplay(w http.ResponseWriter, r *http.Request) {
	slot, appErr := weekdayParam(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.ctrl.Pin(slot)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) resetToAuto(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.ResetToAutomatic())
}

func (h *Handlers) deleteMenu(w http.ResponseWriter, r *http.Request) {
	slot, appErr := slotParam(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	if appErr := h.ctrl.Delete(slot); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "menu for " + slot.String() + " removed",
	})
}

func (h *Handlers) getAll(w http.ResponseWriter, r *http.Request) {
	all, appErr := h.ctrl.ListAll()
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *Handlers) currentDisplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.CurrentDisplay())
}

func (h *Handlers) today(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.ResolveForDisplay())
}

// displayDay resolves the payload for an explicit day, or for the current
// calendar day when the path parameter is absent. Unlike /menu/today this
// ignores the pinned selection.
func (h *Handlers) displayDay(w http.ResponseWriter, r *http.Request) {
	raw := strings.ToLower(chi.URLParam(r, "day"))
	if raw == "" {
		raw = h.ctrl.CurrentDisplay().CurrentDay
	}
	slot, ok := models.ParseWeekdaySlot(raw)
	if !ok {
		// Weekends and unknown names are an empty display, not an error.
		msg := "no menu available for this day"
		if raw == "saturday" || raw == "sunday" {
			msg = "no menu available on weekends"
		}
		writeJSON(w, http.StatusOK, models.DisplayState{Day: raw, Message: msg})
		return
	}
	writeJSON(w, http.StatusOK, h.ctrl.DisplayFor(slot))
}
