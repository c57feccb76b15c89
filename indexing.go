package main

import (
	"log/slog"
	"os"

	"github.com/tracehq/traceindex/apps"
	"github.com/tracehq/traceindex/index"
	"github.com/tracehq/traceindex/scanner"
	"github.com/tracehq/traceindex/watcher"
)

// performIndexing builds the complete entry set: installed applications
// first, then a fresh filesystem scan of all roots. The caller installs
// the result with a single bulk store write.
func performIndexing(s *scanner.Scanner, roots []string, logger *slog.Logger) []index.Entry {
	entries := apps.Discover(logger)
	entries = append(entries, s.Scan(roots)...)
	return entries
}

// handleWatcherEvents is the single consumer of the watcher's debounced
// event batches. It serializes all watcher-driven store mutations: one
// upsert or remove per event, with the re-stat done before the store's
// write lock is ever taken. It returns when the watcher closes its
// output channel.
func handleWatcherEvents(w *watcher.Watcher, store *index.Store, logger *slog.Logger) {
	for events := range w.Events() {
		for _, event := range events {
			switch event.Op {
			case watcher.OpRemove, watcher.OpRename:
				store.Remove(event.Path)
				logger.Debug("removed from index", "path", event.Path)

			case watcher.OpCreate, watcher.OpWrite:
				entry, ok := statEntry(event.Path)
				if !ok {
					// File vanished between the event and the stat.
					logger.Debug("skipped vanished path", "path", event.Path)
					continue
				}
				store.Upsert(entry)
				logger.Debug("updated index", "path", event.Path)
			}
		}
	}
}

// statEntry builds an entry from the current on-disk state of path.
func statEntry(path string) (index.Entry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return index.Entry{}, false
	}

	kind := index.KindFile
	if info.IsDir() {
		kind = index.KindDirectory
	}

	return index.Entry{
		Name:     info.Name(),
		Path:     path,
		Kind:     kind,
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, true
}
