// Package watch triggers rebuilds when files under the watched trees change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes fires.
const DefaultDebounce = 300 * time.Millisecond

// Watcher batches file system events under a set of directory trees.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	ignore   []string

	// OnChange receives the changed paths of one batch, sorted.
	// It runs on the Run goroutine, so events arriving meanwhile are
	// batched for the next call.
	OnChange func(ctx context.Context, paths []string)
	OnError  func(err error)
}

// NewWatcher creates a watcher. Paths under any ignore prefix (typically
// the build destination) never trigger a batch.
func NewWatcher(debounce time.Duration, ignore ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs := make([]string, 0, len(ignore))
	for _, p := range ignore {
		if a, err := filepath.Abs(p); err == nil {
			abs = append(abs, filepath.Clean(a))
		}
	}

	return &Watcher{
		watcher:  fsWatcher,
		debounce: debounce,
		ignore:   abs,
	}, nil
}

// AddTree watches root and every directory below it. Hidden directories
// and ignored paths are skipped. A missing root is not an error.
func (w *Watcher) AddTree(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absRoot); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != absRoot && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.isIgnored(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

// WatchList returns the directories currently watched.
func (w *Watcher) WatchList() []string {
	return w.watcher.WatchList()
}

// Run starts the watch loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil || w.isIgnored(absPath) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(absPath); err == nil && info.IsDir() {
					if err := w.AddTree(absPath); err != nil {
						w.reportError(err)
					}
				}
			}

			pending[absPath] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)

			if w.OnChange != nil {
				w.OnChange(ctx, paths)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}

func (w *Watcher) isIgnored(absPath string) bool {
	for _, prefix := range w.ignore {
		if absPath == prefix || strings.HasPrefix(absPath, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
