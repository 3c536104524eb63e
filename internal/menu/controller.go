// Package menu implements the board's state machine: the Slot -> image
// mapping, the manually pinned display day, and the resolver that decides
// what a display should show right now. All mutations publish a change
// event so open displays update live.
package menu

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/openmenuboard/menuboard/internal/events"
	"github.com/openmenuboard/menuboard/internal/models"
	"github.com/openmenuboard/menuboard/internal/store"
)

// MaxImageBytes is the upload size limit for a single menu image.
const MaxImageBytes = 10 << 20 // 10 MiB

// UploadsURLPrefix is the public URL path the stored images are served
// under.
const UploadsURLPrefix = "/uploads/menus/"

// Controller owns the selection state and coordinates the image store and
// the broadcaster. The pinned day lives only in memory: a restart always
// comes back up in automatic mode.
type Controller struct {
	mu       sync.RWMutex
	selected models.Slot // "" = automatic
	store    store.Store
	bus      *events.Broadcaster
	now      func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source, letting tests pick the weekday.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller over the given store and broadcaster.
func New(st store.Store, bus *events.Broadcaster, opts ...Option) *Controller {
	c := &Controller{
		store: st,
		bus:   bus,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload validates and stores an image for slot, replacing any previous
// image there. The content is sniffed; only PNG and JPEG are accepted and
// the stored extension follows the detected type, not the original
// filename. Publishes a menu-update (weekly-menu-update for the weekly
// slot) on success.
func (c *Controller) Upload(slot models.Slot, data []byte) (models.UploadResult, *models.AppError) {
	if len(data) == 0 {
		return models.UploadResult{}, models.ErrBadRequest("no file uploaded")
	}
	if len(data) > MaxImageBytes {
		return models.UploadResult{}, models.ErrBadRequest("image exceeds the 10 MB limit")
	}

	mtype := mimetype.Detect(data)
	var ext string
	switch {
	case mtype.Is("image/png"):
		ext = ".png"
	case mtype.Is("image/jpeg"):
		ext = ".jpg"
	default:
		return models.UploadResult{}, models.ErrBadRequest("only PNG and JPG files are allowed")
	}

	ref, err := c.store.Put(slot, data, ext)
	if err != nil {
		slog.Error("menu: failed to store image", "slot", slot, "err", err)
		return models.UploadResult{}, models.ErrInternal("failed to store image")
	}

	if slot == models.SlotWeekly {
		c.publish(models.EventWeeklyMenuChanged)
	} else {
		c.publish(models.EventMenuChanged)
	}

	return models.UploadResult{
		Message:  "menu for " + slot.String() + " uploaded",
		Filename: ref.Filename,
		Path:     UploadsURLPrefix + ref.Filename,
	}, nil
}

// Pin forces the display to show the given weekday until reset. Fails with
// NotFound when no image is stored for that day.
func (c *Controller) Pin(slot models.Slot) (models.SetDisplayResult, *models.AppError) {
	if _, err := c.store.Get(slot); err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return models.SetDisplayResult{}, models.ErrNotFound("no menu found for this day")
		}
		slog.Error("menu: store lookup failed", "slot", slot, "err", err)
		return models.SetDisplayResult{}, models.ErrInternal("failed to look up menu")
	}

	c.mu.Lock()
	c.selected = slot
	c.mu.Unlock()

	c.publish(models.EventMenuChanged)

	s := slot
	return models.SetDisplayResult{
		Message:     "menu for " + slot.String() + " is now displayed",
		SelectedDay: &s,
	}, nil
}

// ResetToAutomatic clears any pinned day so the display follows the
// real-world weekday again. Always succeeds.
func (c *Controller) ResetToAutomatic() models.SetDisplayResult {
	c.mu.Lock()
	c.selected = ""
	c.mu.Unlock()

	c.publish(models.EventMenuChanged)

	return models.SetDisplayResult{
		Message:     "automatic menu selection enabled",
		SelectedDay: nil,
	}
}

// Delete removes the stored image for slot. Deleting the currently pinned
// day reverts the selection to automatic before the change event goes out.
func (c *Controller) Delete(slot models.Slot) *models.AppError {
	if _, err := c.store.Get(slot); err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return models.ErrNotFound("no menu found for this day")
		}
		slog.Error("menu: store lookup failed", "slot", slot, "err", err)
		return models.ErrInternal("failed to look up menu")
	}

	c.mu.Lock()
	if c.selected == slot {
		slog.Info("menu: deleted day was pinned, reverting to automatic", "slot", slot)
		c.selected = ""
	}
	c.mu.Unlock()

	if err := c.store.Delete(slot); err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return models.ErrNotFound("no menu found for this day")
		}
		slog.Error("menu: failed to delete image", "slot", slot, "err", err)
		return models.ErrInternal("failed to delete menu")
	}

	if slot == models.SlotWeekly {
		c.publish(models.EventWeeklyMenuChanged)
	} else {
		c.publish(models.EventMenuChanged)
	}
	return nil
}

// ListAll maps every slot to its image URL, or nil when nothing is stored.
func (c *Controller) ListAll() (map[models.Slot]*string, *models.AppError) {
	refs, err := c.store.List()
	if err != nil {
		slog.Error("menu: failed to list images", "err", err)
		return nil, models.ErrInternal("failed to list menus")
	}
	out := make(map[models.Slot]*string, len(refs))
	for slot, ref := range refs {
		if ref == nil {
			out[slot] = nil
			continue
		}
		url := UploadsURLPrefix + ref.Filename
		out[slot] = &url
	}
	return out, nil
}

// CurrentDisplay reports the raw selection state.
func (c *Controller) CurrentDisplay() models.CurrentDisplay {
	c.mu.RLock()
	selected := c.selected
	c.mu.RUnlock()

	cd := models.CurrentDisplay{
		CurrentDay:  models.DayName(c.now()),
		IsAutomatic: selected == "",
	}
	if selected != "" {
		s := selected
		cd.SelectedDay = &s
	}
	return cd
}

// ResolveDisplaySlot decides which weekday slot the display should show.
// pinned reports a manual selection; ok is false on weekends in automatic
// mode, when there is no slot to show.
func (c *Controller) ResolveDisplaySlot() (slot models.Slot, pinned, ok bool) {
	c.mu.RLock()
	selected := c.selected
	c.mu.RUnlock()

	if selected != "" {
		return selected, true, true
	}
	slot, ok = models.SlotForTime(c.now())
	return slot, false, ok
}

// ResolveForDisplay combines the resolved slot with store lookups for both
// the daily image and the weekly overlay. The overlay is resolved
// independently of the daily slot and is present even on weekends.
func (c *Controller) ResolveForDisplay() models.DisplayState {
	slot, pinned, ok := c.ResolveDisplaySlot()

	st := models.DisplayState{IsSelected: pinned}
	c.fillWeekly(&st)

	if !ok {
		st.Day = models.DayName(c.now())
		st.Message = "no menu available on weekends"
		return st
	}
	st.Day = slot.String()

	ref, err := c.store.Get(slot)
	if err != nil {
		if pinned {
			st.Message = "no menu uploaded for the selected day"
		} else {
			st.Message = "no menu uploaded for today"
		}
		return st
	}
	st.HasMenu = true
	st.MenuURL = UploadsURLPrefix + ref.Filename
	return st
}

// DisplayFor resolves the payload for an explicitly requested day,
// independent of the pinned selection.
func (c *Controller) DisplayFor(slot models.Slot) models.DisplayState {
	st := models.DisplayState{Day: slot.String()}
	c.fillWeekly(&st)

	ref, err := c.store.Get(slot)
	if err != nil {
		st.Message = "no menu uploaded for this day"
		return st
	}
	st.HasMenu = true
	st.MenuURL = UploadsURLPrefix + ref.Filename
	return st
}

// SelectedOrToday returns the pinned day, or today's weekday name when
// automatic. Used for the selectedDay field on change events.
func (c *Controller) SelectedOrToday() string {
	c.mu.RLock()
	selected := c.selected
	c.mu.RUnlock()
	if selected != "" {
		return selected.String()
	}
	return models.DayName(c.now())
}

// OpenImage returns the stored image content for slot, for preview
// downscaling in the API layer.
func (c *Controller) OpenImage(slot models.Slot) (ref store.ImageRef, data []byte, appErr *models.AppError) {
	r, err := c.store.Get(slot)
	if err != nil {
		return store.ImageRef{}, nil, models.ErrNotFound("no menu found for this day")
	}
	rc, err := c.store.Open(slot)
	if err != nil {
		return store.ImageRef{}, nil, models.ErrNotFound("no menu found for this day")
	}
	defer rc.Close()
	data, rerr := io.ReadAll(rc)
	if rerr != nil {
		slog.Error("menu: failed to read image", "slot", slot, "err", rerr)
		return store.ImageRef{}, nil, models.ErrInternal("failed to read menu image")
	}
	return r, data, nil
}

func (c *Controller) publish(typ models.EventType) {
	ev := models.ChangeEvent{Type: typ}
	if typ == models.EventMenuChanged {
		ev.SelectedDay = c.SelectedOrToday()
	}
	c.bus.Publish(ev)
}

func (c *Controller) fillWeekly(st *models.DisplayState) {
	ref, err := c.store.Get(models.SlotWeekly)
	if err != nil {
		return
	}
	st.HasWeeklyMenu = true
	st.WeeklyMenuURL = UploadsURLPrefix + ref.Filename
}
