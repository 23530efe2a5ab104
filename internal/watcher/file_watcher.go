// Package watcher re-runs work when a watched source file changes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches one source file and fires a callback after changes
// settle. Editors replace files on save, so the parent directory is
// watched and events are filtered down to the target name; a debounce
// window folds save bursts into a single callback.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string // Cleaned absolute path of the watched file
	debounce time.Duration
	logger   *zap.Logger

	callback func()             // Callback to invoke after the quiet period
	ctx      context.Context    // Context for lifecycle management
	cancel   context.CancelFunc // Cancel function for internal context

	dirty   bool // Whether a change arrived since the last callback
	dirtyMu sync.Mutex

	debounceTimer *time.Timer // Current debounce timer
	timerMu       sync.Mutex  // Protects debounce timer

	stopOnce sync.Once     // Ensures Stop() is idempotent
	doneCh   chan struct{} // Signals watch goroutine has finished
}

// NewFileWatcher creates a watcher for the given file. The file must
// exist when the watcher is created.
func NewFileWatcher(path string, debounce time.Duration, logger *zap.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	fw := &FileWatcher{
		watcher:  watcher,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}

	// Watch the parent directory: atomic saves rename the file away and
	// recreate it, which would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return fw, nil
}

// Start begins watching. The callback runs on the watch goroutine after
// each settled burst of changes.
func (fw *FileWatcher) Start(ctx context.Context, callback func()) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		// Cancel context to signal goroutine
		if fw.cancel != nil {
			fw.cancel()

			// Wait for goroutine to finish (only if Start() was called)
			<-fw.doneCh
		} else {
			// Never started, close doneCh manually
			close(fw.doneCh)
		}

		// Close watcher
		err = fw.watcher.Close()
	})
	return err
}

// Path returns the cleaned absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// watch is the main event loop.
func (fw *FileWatcher) watch() {
	defer close(fw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-fw.ctx.Done():
			// Context cancelled - clean shutdown
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.dirtyMu.Lock()
			fw.dirty = true
			fw.dirtyMu.Unlock()

			// Reset debounce timer
			fw.resetDebounceTimer(fireCh)

		case <-fireCh:
			// Debounce period expired
			fw.handleDebounceExpired()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// handleDebounceExpired is called when the debounce timer expires.
func (fw *FileWatcher) handleDebounceExpired() {
	fw.dirtyMu.Lock()
	fire := fw.dirty
	fw.dirty = false
	fw.dirtyMu.Unlock()

	if fire && fw.callback != nil {
		fw.callback()
	}
}

// resetDebounceTimer resets the debounce timer, stopping the old one.
func (fw *FileWatcher) resetDebounceTimer(fireCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.debounce, func() {
		// Send fire signal (non-blocking)
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (fw *FileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
}

// shouldProcessEvent filters directory events down to mutations of the
// watched file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Only care about WRITE, CREATE, RENAME and REMOVE events
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == fw.path
}
