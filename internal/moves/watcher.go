package moves

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/events"
)

// Watcher reloads a Catalog whenever its JSON move list changes on disk.
// A file that fails to parse leaves the previous index in place.
type Watcher struct {
	path    string
	catalog *Catalog
	logger  *zap.Logger
	events  events.Dispatcher

	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the move list at path.
func NewWatcher(path string, catalog *Catalog, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		catalog:  catalog,
		logger:   logger,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDispatcher makes successful reloads emit catalog:reloaded events.
func (w *Watcher) SetDispatcher(d events.Dispatcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = d
}

// Start begins watching. It returns immediately; events are handled in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// Watch the directory so editors that replace the file via rename are still seen.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch move list: %w", err)
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing move list watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("move list watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	entries, err := LoadJSON(w.path)
	if err != nil {
		w.logger.Error("move list reload failed, keeping previous catalog",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.catalog.Replace(entries)
	w.logger.Info("move list reloaded", zap.String("path", w.path), zap.Int("moves", len(entries)))

	w.mu.Lock()
	d := w.events
	w.mu.Unlock()
	if d != nil {
		d.Dispatch(events.NewTypedEvent(context.Background(), events.CatalogReloaded,
			events.CatalogReloadedEvent{Path: w.path, Entries: len(entries)}))
	}
}
