package api

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/openmenuboard/menuboard/internal/models"
)

const thumbWidth = 480

// menuThumb serves a downscaled JPEG preview of a stored menu image for the
// admin panel, so the panel does not pull full-size uploads just to show a
// grid of six tiles.
func (h *Handlers) menuThumb(w http.ResponseWriter, r *http.Request) {
	slot, appErr := slotParam(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	_, data, appErr := h.ctrl.OpenImage(slot)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		writeError(w, models.ErrInternal("stored image is not decodable"))
		return
	}

	bounds := src.Bounds()
	if bounds.Dx() > thumbWidth {
		height := bounds.Dy() * thumbWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-cache")
	if err := jpeg.Encode(w, src, &jpeg.Options{Quality: 80}); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
