package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/openmenuboard/menuboard/internal/models"
)

// acceptedExts are the extensions an image may be stored under, in lookup
// order. Lookup tolerates any of these for the same logical name.
var acceptedExts = []string{".png", ".jpg", ".jpeg"}

// FSStore is a filesystem-backed Store. Each slot is one file named
// <slot>.<ext> inside dir. Writes go through a temp file and rename so a
// concurrent reader never sees a partial image, and stale files with a
// different extension are removed so at most one file per slot exists.
type FSStore struct {
	dir string
}

// NewFSStore creates the directory if needed and returns a store over it.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FSStore{dir: dir}, nil
}

// Dir returns the directory holding the images.
func (s *FSStore) Dir() string { return s.dir }

func (s *FSStore) Put(slot models.Slot, data []byte, ext string) (ImageRef, error) {
	if !validExt(ext) {
		return ImageRef{}, errors.New("store: unsupported extension " + ext)
	}

	name := string(slot) + ext
	path := filepath.Join(s.dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return ImageRef{}, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return ImageRef{}, err
	}

	// Drop any leftover variant with a different extension so the slot
	// always resolves to exactly one file.
	for _, e := range acceptedExts {
		if e == ext {
			continue
		}
		os.Remove(filepath.Join(s.dir, string(slot)+e))
	}

	return ImageRef{Slot: slot, Filename: name}, nil
}

func (s *FSStore) Get(slot models.Slot) (ImageRef, error) {
	for _, e := range acceptedExts {
		name := string(slot) + e
		if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
			return ImageRef{Slot: slot, Filename: name}, nil
		}
	}
	return ImageRef{}, ErrNotExist
}

func (s *FSStore) Open(slot models.Slot) (io.ReadCloser, error) {
	ref, err := s.Get(slot)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, ref.Filename))
}

func (s *FSStore) Delete(slot models.Slot) error {
	removed := false
	for _, e := range acceptedExts {
		path := filepath.Join(s.dir, string(slot)+e)
		if err := os.Remove(path); err == nil {
			removed = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if !removed {
		return ErrNotExist
	}
	return nil
}

func (s *FSStore) List() (map[models.Slot]*ImageRef, error) {
	out := make(map[models.Slot]*ImageRef, len(models.AllSlots()))
	for _, slot := range models.AllSlots() {
		ref, err := s.Get(slot)
		if err != nil {
			if errors.Is(err, ErrNotExist) {
				out[slot] = nil
				continue
			}
			return nil, err
		}
		r := ref
		out[slot] = &r
	}
	return out, nil
}

func validExt(ext string) bool {
	for _, e := range acceptedExts {
		if e == ext {
			return true
		}
	}
	return false
}

var _ Store = (*FSStore)(nil)
