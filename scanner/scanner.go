// Package scanner performs the bulk filesystem walk that initially
// populates the index. It is best-effort by design: unreadable entries
// and missing roots are skipped, never fatal.
package scanner

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tracehq/traceindex/ignore"
	"github.com/tracehq/traceindex/index"
)

// DefaultMaxDepth bounds the recursion to keep pathological deep trees
// from blowing up the scan.
const DefaultMaxDepth = 12

// Scanner walks root directories and produces index entries.
type Scanner struct {
	MaxDepth int
	Matcher  *ignore.Matcher
	Logger   *slog.Logger
}

// New creates a scanner with the given exclusion matcher.
func New(matcher *ignore.Matcher, logger *slog.Logger) *Scanner {
	return &Scanner{
		MaxDepth: DefaultMaxDepth,
		Matcher:  matcher,
		Logger:   logger,
	}
}

// Scan walks each root up to MaxDepth and returns one complete entry
// list. Symlinks are not followed. A root that does not exist or is not
// a directory is logged and skipped; the result may be empty but is
// never an error.
func (s *Scanner) Scan(roots []string) []index.Entry {
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// Generous preallocation: home directories routinely hold hundreds
	// of thousands of entries.
	entries := make([]index.Entry, 0, 4096)

	for _, root := range roots {
		root = filepath.Clean(root)
		count := 0

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					s.Logger.Warn("skipping unreadable root", "root", root, "error", err)
					return filepath.SkipAll
				}
				return nil
			}

			// The root itself is never excluded, whatever its name.
			if path == root {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			depth := strings.Count(rel, string(filepath.Separator)) + 1

			if d.IsDir() {
				if s.Matcher.ShouldExclude(root, path, true) {
					return filepath.SkipDir
				}
				if depth >= maxDepth {
					// Index the directory itself but do not descend.
					if e, ok := entryFor(path, d); ok {
						entries = append(entries, e)
						count++
					}
					return filepath.SkipDir
				}
			} else if s.Matcher.ShouldExclude(root, path, false) {
				return nil
			}

			if e, ok := entryFor(path, d); ok {
				entries = append(entries, e)
				count++
			}
			return nil
		})
		if err != nil {
			s.Logger.Warn("scan aborted for root", "root", root, "error", err)
			continue
		}

		s.Logger.Info("scanned root", "root", root, "entries", count)
	}

	return entries
}

// entryFor builds an index entry from a directory entry. Entries whose
// metadata cannot be read are dropped; a vanished or unreadable file
// must not abort the scan.
func entryFor(path string, d fs.DirEntry) (index.Entry, bool) {
	info, err := d.Info()
	if err != nil {
		return index.Entry{}, false
	}

	kind := index.KindFile
	if info.IsDir() {
		kind = index.KindDirectory
	}

	return index.Entry{
		Name:     d.Name(),
		Path:     path,
		Kind:     kind,
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, true
}
