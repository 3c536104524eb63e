package store

import (
	"bytes"
	"io"
	"sync"

	"github.com/openmenuboard/menuboard/internal/models"
)

// MemStore is an in-memory Store for tests that never touches the disk.
type MemStore struct {
	mu     sync.Mutex
	images map[models.Slot]memImage
}

type memImage struct {
	data []byte
	ext  string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{images: make(map[models.Slot]memImage)}
}

func (m *MemStore) Put(slot models.Slot, data []byte, ext string) (ImageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.images[slot] = memImage{data: cp, ext: ext}
	return ImageRef{Slot: slot, Filename: string(slot) + ext}, nil
}

func (m *MemStore) Get(slot models.Slot) (ImageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[slot]
	if !ok {
		return ImageRef{}, ErrNotExist
	}
	return ImageRef{Slot: slot, Filename: string(slot) + img.ext}, nil
}

func (m *MemStore) Open(slot models.Slot) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[slot]
	if !ok {
		return nil, ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(img.data)), nil
}

func (m *MemStore) Delete(slot models.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[slot]; !ok {
		return ErrNotExist
	}
	delete(m.images, slot)
	return nil
}

func (m *MemStore) List() (map[models.Slot]*ImageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[models.Slot]*ImageRef, len(models.AllSlots()))
	for _, slot := range models.AllSlots() {
		if img, ok := m.images[slot]; ok {
			out[slot] = &ImageRef{Slot: slot, Filename: string(slot) + img.ext}
		} else {
			out[slot] = nil
		}
	}
	return out, nil
}

var _ Store = (*MemStore)(nil)
