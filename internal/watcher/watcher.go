package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for a file to settle
const DefaultDebounce = 100 * time.Millisecond

// ChangeHandler is called when the watched file changes. removed is true
// when the file no longer exists.
type ChangeHandler func(removed bool)

// Watcher monitors a single file, typically the settings file, using fsnotify.
// The parent directory is watched so that editors replacing the file via
// rename are still seen.
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	handler   ChangeHandler
	debouncer *Debouncer
	logger    *zap.Logger
	done      chan struct{}
}

// New creates a new watcher for the file at path
func New(path string, handler ChangeHandler, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   fsw,
		path:      abs,
		handler:   handler,
		debouncer: NewDebouncer(DefaultDebounce),
		logger:    logger,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching for changes
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	// Start the event loop
	go w.eventLoop()

	w.logger.Info("watching settings file", zap.String("path", w.path))
	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	// Debounce and dispatch changes
	w.debouncer.Add(event.Op, func(ops fsnotify.Op) {
		removed := (ops.Has(fsnotify.Remove) || ops.Has(fsnotify.Rename)) &&
			!ops.Has(fsnotify.Create) && !ops.Has(fsnotify.Write)
		w.logger.Debug("settings file changed", zap.String("ops", ops.String()), zap.Bool("removed", removed))
		w.handler(removed)
	})
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	w.debouncer.Stop()
	return w.watcher.Close()
}
