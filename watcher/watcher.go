// Package watcher keeps the index current after the initial scan by
// subscribing to filesystem change notifications on the configured
// roots and emitting debounced event batches for a single consumer to
// apply to the store.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet window used when no interval is
// configured.
const DefaultDebounce = 100 * time.Millisecond

// ExcludePolicy is used by the watcher to decide which paths to skip.
type ExcludePolicy interface {
	ShouldExclude(root string, absolutePath string, isDir bool) bool
}

// Watcher provides recursive file system watching over multiple roots
// with debouncing. Events for excluded paths are dropped at the source.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	policy    ExcludePolicy
	roots     []string // roots that were successfully registered
	logger    *slog.Logger
}

// NewWatcher creates a recursive file watcher on the given roots. A
// root that fails to register is logged and skipped; the watcher keeps
// running against whichever roots succeeded. With zero successful roots
// it simply idles until cancelled.
func NewWatcher(roots []string, policy ExcludePolicy, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(debounce),
		policy:    policy,
		logger:    logger,
	}

	for _, root := range roots {
		root = filepath.Clean(root)
		if err := w.addRecursive(root, root); err != nil {
			logger.Warn("failed to watch root, skipping", "root", root, "error", err)
			continue
		}
		w.roots = append(w.roots, root)
	}

	logger.Info("watching roots for changes", "requested", len(roots), "active", len(w.roots))
	return w, nil
}

// addRecursive registers a directory tree with the fsnotify watcher,
// skipping excluded directories. The root itself is always registered.
func (w *Watcher) addRecursive(root string, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // skip entries that cannot be read
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.policy.ShouldExclude(root, path, true) {
			return filepath.SkipDir
		}
		if watchErr := w.fsWatcher.Add(path); watchErr != nil {
			// Watch-descriptor exhaustion and similar errors degrade
			// coverage but must not crash the process.
			w.logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
}

// Roots returns the roots that were successfully registered.
func (w *Watcher) Roots() []string {
	return w.roots
}

// Events returns the channel that receives debounced event batches.
func (w *Watcher) Events() <-chan []DebouncedEvent {
	return w.debouncer.Output()
}

// Run processes filesystem events until the context is cancelled or the
// underlying event stream terminates. When it returns, the output
// channel is closed so the consumer goroutine terminates too; a stream
// that dies mid-run leaves the index stale for the rest of the process
// lifetime, which is accepted.
func (w *Watcher) Run(ctx context.Context) {
	defer w.debouncer.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				w.logger.Warn("watcher event stream terminated, index updates stopped")
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				w.logger.Warn("watcher error stream terminated, index updates stopped")
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent converts one fsnotify event into a debounced event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	root, ok := w.rootFor(path)
	if !ok {
		return // event outside the configured roots
	}

	// A newly created directory must join the watch set so events from
	// inside it are seen; it is also indexed like any other entry.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.policy.ShouldExclude(root, path, true) {
				return
			}
			if err := w.addRecursive(root, path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			w.debouncer.Add(path, OpCreate)
			return
		}
	}

	if w.policy.ShouldExclude(root, path, false) {
		return
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(path, op)
}

// rootFor returns the configured root the path lives under.
func (w *Watcher) rootFor(path string) (string, bool) {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return root, true
		}
	}
	return "", false
}

// Close stops the watcher and releases its OS-level subscriptions.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
