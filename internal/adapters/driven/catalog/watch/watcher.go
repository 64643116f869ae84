// Package watch invalidates the catalog cache when files in the
// catalog directory change on disk, so the next read picks up edits
// without an explicit refresh.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/runbook-cli/internal/core/domain"
	"github.com/custodia-labs/runbook-cli/internal/logger"
)

// Watcher observes a catalog directory tree and calls the invalidate
// callback whenever a catalog file is created, written, removed or
// renamed. Directories created after Start are picked up and watched.
type Watcher struct {
	dir        string
	invalidate func()

	mu      sync.Mutex
	running bool
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher over the given catalog directory.
// The invalidate callback must be safe to call from another goroutine
// and may be called more than once per logical change.
func NewWatcher(dir string, invalidate func()) *Watcher {
	return &Watcher{dir: dir, invalidate: invalidate}
}

// Start begins watching the directory tree.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return domain.ErrAlreadyRunning
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}

	if err := addTree(watcher, w.dir); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.running = true

	w.wg.Add(1)
	go w.loop()

	logger.Debug("Watching catalog directory %s", w.dir)
	return nil
}

// Stop ends watching. Safe to call when not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	_ = w.watcher.Close()
	w.mu.Unlock()

	w.wg.Wait()
}

// loop drains watcher events until the watcher closes.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Catalog watcher error: %v", err)
		}
	}
}

// handle classifies one filesystem event.
func (w *Watcher) handle(event fsnotify.Event) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	if event.Op&relevant == 0 {
		return
	}
	if hidden(event.Name) {
		return
	}

	// Newly created directories join the watch so later writes inside
	// them are seen. Creating an empty directory is not itself a
	// catalog change.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				logger.Warn("Failed to watch new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !catalogFile(event.Name) {
		return
	}

	logger.Debug("Catalog file changed: %s (%s)", event.Name, event.Op)
	w.invalidate()
}

// addTree watches dir and every non-hidden subdirectory beneath it.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking catalog directory %s: %w", dir, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && hidden(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// catalogFile reports whether the path is a file the catalog is built
// from.
func catalogFile(path string) bool {
	switch filepath.Ext(path) {
	case ".toml", ".sh":
		return true
	default:
		return false
	}
}

// hidden reports whether the path's base name starts with a dot.
func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
