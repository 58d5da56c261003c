package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherOption configures a SettingsWatcher.
type WatcherOption func(*SettingsWatcher)

// WithWatchDebounce sets the debounce duration for file change events.
func WithWatchDebounce(d time.Duration) WatcherOption {
	return func(w *SettingsWatcher) { w.debounce = d }
}

// WithWatchLogger sets the logger for the watcher.
func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *SettingsWatcher) { w.logger = l }
}

// SettingsWatcher monitors a settings overrides file for changes and invokes
// a callback with the new content. It watches the directory containing the
// file for atomic-save compatibility.
type SettingsWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(data []byte)

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	lastHash  string

	mu        sync.Mutex
	pending   bool
	pendingAt time.Time
}

// NewSettingsWatcher creates a watcher for the given file. onChange is
// called with the file content whenever it actually changes.
func NewSettingsWatcher(path string, onChange func(data []byte), opts ...WatcherOption) *SettingsWatcher {
	w := &SettingsWatcher{
		path:     path,
		debounce: 500 * time.Millisecond,
		logger:   slog.Default(),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the file's directory for changes.
func (w *SettingsWatcher) Start() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("settings watcher: initial read: %w", err)
	}
	w.lastHash = hashBytes(data)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings watcher: create fsnotify: %w", err)
	}
	w.fsWatcher = fsw

	// Watch the directory so we catch atomic saves (rename-over).
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("settings watcher: watch %s: %w", dir, err)
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and waits for the background goroutine to
// exit. It is safe to call Stop multiple times.
func (w *SettingsWatcher) Stop() error {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}

func (w *SettingsWatcher) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// Any write/create/rename in the watched directory enqueues a
				// hash check; the check suppresses spurious reloads.
				w.mu.Lock()
				w.pending = true
				w.pendingAt = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("settings watcher error", "err", err)

		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *SettingsWatcher) processPending() {
	w.mu.Lock()
	ready := w.pending && time.Since(w.pendingAt) >= w.debounce
	if ready {
		w.pending = false
	}
	w.mu.Unlock()

	if ready {
		w.processChange()
	}
}

// processChange reads the file, computes its hash, and calls onChange if the
// content actually changed since the last known hash.
func (w *SettingsWatcher) processChange() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Error("settings watcher: failed to read file", "path", w.path, "err", err)
		return
	}

	newHash := hashBytes(data)
	if newHash == w.lastHash {
		w.logger.Debug("settings watcher: content unchanged, skipping", "path", w.path)
		return
	}

	oldHash := w.lastHash
	w.lastHash = newHash
	w.logger.Info("settings overrides changed", "path", w.path, "old_hash", oldHash[:8], "new_hash", newHash[:8])

	w.onChange(data)
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
