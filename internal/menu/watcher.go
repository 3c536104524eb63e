package menu

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openmenuboard/menuboard/internal/models"
)

const watchDebounce = 500 * time.Millisecond

// Watcher publishes change events when files in the menu directory change
// outside the API (manual scp, external sync). Bursts are collapsed with a
// short debounce. API writes land here too; the duplicate update is
// harmless since displays just re-resolve.
type Watcher struct {
	ctrl *Controller
	dir  string

	mu      sync.Mutex
	pending map[models.EventType]bool
	timer   *time.Timer
}

// NewWatcher creates a watcher over the menu image directory.
func NewWatcher(dir string, ctrl *Controller) *Watcher {
	return &Watcher{
		ctrl:    ctrl,
		dir:     dir,
		pending: make(map[models.EventType]bool),
	}
}

// Start watches the directory and blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	slog.Info("menu: watching image directory", "dir", w.dir)

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.handle(event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("menu: watcher error", "err", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) handle(path string) {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".tmp") {
		return
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	slot, ok := models.ParseSlot(stem)
	if !ok {
		return
	}

	typ := models.EventMenuChanged
	if slot == models.SlotWeekly {
		typ = models.EventWeeklyMenuChanged
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[typ] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[models.EventType]bool)
	w.mu.Unlock()

	for typ := range pending {
		ev := models.ChangeEvent{Type: typ}
		if typ == models.EventMenuChanged {
			ev.SelectedDay = w.ctrl.SelectedOrToday()
		}
		w.ctrl.bus.Publish(ev)
	}
}
