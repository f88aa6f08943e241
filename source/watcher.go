package source

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the token-file watcher.
type WatcherConfig struct {
	// Patterns are the glob patterns whose matching files are watched.
	Patterns []string

	// DebounceDelay is how long to wait for more changes before emitting
	// a reload event.
	DebounceDelay time.Duration

	// Logger for watch events.
	Logger *slog.Logger
}

// WatchEvent reports token files that changed since the last event.
type WatchEvent struct {
	// Paths are the changed token files, deduplicated.
	Paths []string
}

// Watcher watches token documents and emits debounced change events so
// watch-mode validation can re-run on save.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]bool

	events chan WatchEvent
}

// NewWatcher creates a watcher for the files matching config.Patterns.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 250 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]bool),
		events:  make(chan WatchEvent, 16),
	}, nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start resolves the patterns, watches the parent directories of every
// match, and begins emitting events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	files, err := ResolveFiles(w.config.Patterns)
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("Failed to watch directory",
				slog.String("path", dir),
				slog.String("error", err.Error()))
		} else {
			w.logger.Debug("Watching directory", slog.String("path", dir))
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Token file watcher started",
		slog.Int("files", len(files)),
		slog.Duration("debounce", w.config.DebounceDelay))
	return nil
}

// Stop closes the watcher and its event channel.
func (w *Watcher) Stop() error {
	close(w.events)
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if !isTokenFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = true
	w.pendingMu.Unlock()
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	w.logger.Debug("Token files changed", slog.Int("count", len(paths)))
	w.events <- WatchEvent{Paths: paths}
}

func isTokenFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
