// Package apps discovers installed applications from XDG desktop
// entries and supplies them to the index as App-kind entries.
package apps

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tracehq/traceindex/index"
)

// searchDirs returns the standard desktop-entry locations, system dirs
// first, then the user's own.
func searchDirs() []string {
	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// Discover scans the standard .desktop file locations and returns one
// App entry per visible application. Discovery is best-effort: missing
// directories and unparseable files are skipped. App entries carry no
// size or modification time.
func Discover(logger *slog.Logger) []index.Entry {
	var entries []index.Entry

	for _, dir := range searchDirs() {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, de := range dirEntries {
			if de.IsDir() || !strings.HasSuffix(de.Name(), ".desktop") {
				continue
			}

			path := filepath.Join(dir, de.Name())
			name, ok := parseDesktopFile(path)
			if !ok {
				continue
			}

			entries = append(entries, index.Entry{
				Name: name,
				Path: path,
				Kind: index.KindApp,
			})
		}
	}

	logger.Info("discovered applications", "count", len(entries))
	return entries
}

// parseDesktopFile extracts the display name from a .desktop file.
// Returns ok=false for hidden entries (NoDisplay=true), entries without
// a Name, and unreadable files.
func parseDesktopFile(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var name string
	inDesktopEntry := false

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "[Desktop Entry]" {
			inDesktopEntry = true
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			if inDesktopEntry {
				break // next section, [Desktop Entry] is done
			}
			continue
		}
		if !inDesktopEntry {
			continue
		}

		if value, found := strings.CutPrefix(trimmed, "Name="); found {
			// Only the first plain Name=, not localized Name[xx]= keys.
			if name == "" {
				name = value
			}
		} else if trimmed == "NoDisplay=true" {
			return "", false
		}
	}

	if name == "" {
		return "", false
	}
	return name, true
}
