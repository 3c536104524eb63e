// Package store persists menu images as a Slot -> image key-value mapping.
// The canonical implementation keeps one file per slot on the local
// filesystem; an in-memory implementation exists for tests.
package store

import (
	"errors"
	"io"

	"github.com/openmenuboard/menuboard/internal/models"
)

// ErrNotExist is returned when a slot has no stored image.
var ErrNotExist = errors.New("store: no image for slot")

// ImageRef identifies a stored image.
type ImageRef struct {
	Slot     models.Slot
	Filename string // logical name plus extension, e.g. "monday.png"
}

// Store maps each slot to at most one stored image. Put replaces any
// existing image for the slot, regardless of extension.
type Store interface {
	// Put stores data under slot with the given extension (".png",
	// ".jpg"), replacing any previous image for that slot.
	Put(slot models.Slot, data []byte, ext string) (ImageRef, error)

	// Get returns the image reference for slot, or ErrNotExist.
	Get(slot models.Slot) (ImageRef, error)

	// Open returns the image content for slot, or ErrNotExist.
	Open(slot models.Slot) (io.ReadCloser, error)

	// Delete removes the image for slot, or returns ErrNotExist.
	Delete(slot models.Slot) error

	// List returns an entry for every known slot; absent slots map to nil.
	List() (map[models.Slot]*ImageRef, error)
}
