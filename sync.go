package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/tracehq/traceindex/index"
	"github.com/tracehq/traceindex/scanner"
)

// SyncResult holds the outcome of a single sync verification run.
type SyncResult struct {
	MissingEntries  int // on disk but not in the index
	StaleEntries    int // in the index but no longer on disk
	ModifiedEntries int // size or mtime differs
	Duration        time.Duration
}

// runPeriodicSync starts a background loop that reconciles the index
// with the filesystem at the given interval, repairing anything the
// watcher missed (dropped events, watch-descriptor exhaustion). It runs
// until the stop channel is closed.
func runPeriodicSync(
	interval time.Duration,
	s *scanner.Scanner,
	roots []string,
	store *index.Store,
	logger *slog.Logger,
	stop <-chan struct{},
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("periodic sync started", "interval", interval)

	for {
		select {
		case <-stop:
			logger.Info("periodic sync stopped")
			return
		case <-ticker.C:
			result := performSyncVerification(s, roots, store, logger)
			total := result.MissingEntries + result.StaleEntries + result.ModifiedEntries
			if total > 0 {
				logger.Info("sync verification complete",
					"missing", result.MissingEntries,
					"stale", result.StaleEntries,
					"modified", result.ModifiedEntries,
					"duration", result.Duration,
				)
			} else {
				logger.Debug("sync verification complete, index is in sync", "duration", result.Duration)
			}
		}
	}
}

// performSyncVerification compares a fresh scan with the current index
// state and patches the differences through upsert/remove, so each fix
// is an atomic store mutation. Application entries are left alone; they
// are owned by app discovery, not the filesystem scan.
func performSyncVerification(
	s *scanner.Scanner,
	roots []string,
	store *index.Store,
	logger *slog.Logger,
) SyncResult {
	start := time.Now()
	var result SyncResult

	diskEntries := s.Scan(roots)
	diskSet := make(map[string]index.Entry, len(diskEntries))
	for _, e := range diskEntries {
		diskSet[e.Path] = e
	}

	snapshot := store.Snapshot()
	indexedSet := make(map[string]index.Entry, len(snapshot))
	for _, e := range snapshot {
		indexedSet[e.Path] = e
	}

	// Entries on disk but missing or outdated in the index.
	for path, disk := range diskSet {
		indexed, exists := indexedSet[path]
		switch {
		case !exists:
			store.Upsert(disk)
			logger.Debug("sync: indexed missing entry", "path", path)
			result.MissingEntries++
		case disk.Size != indexed.Size || !disk.Modified.Equal(indexed.Modified):
			store.Upsert(disk)
			logger.Debug("sync: refreshed modified entry", "path", path)
			result.ModifiedEntries++
		}
	}

	// Entries in the index whose backing path is gone.
	for path, indexed := range indexedSet {
		if indexed.Kind == index.KindApp {
			continue
		}
		if !underAnyRoot(roots, path) {
			continue
		}
		if _, exists := diskSet[path]; !exists {
			store.Remove(path)
			logger.Debug("sync: removed stale entry", "path", path)
			result.StaleEntries++
		}
	}

	result.Duration = time.Since(start)
	return result
}

// underAnyRoot reports whether path lives under one of the scan roots.
func underAnyRoot(roots []string, path string) bool {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
