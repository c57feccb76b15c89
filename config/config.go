// Package config loads the launcher settings that drive the index:
// which roots to scan and watch, and how many results to return.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the in-memory representation of config.yaml.
type Settings struct {
	// Roots are the directories to index and watch. Entries may use a
	// leading ~ and are expanded by Load.
	Roots []string `yaml:"roots"`

	// MaxResults caps how many search results are returned.
	MaxResults int `yaml:"max_results,omitempty"`

	// MaxDepth bounds the recursive scan.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// ExcludePatterns are extra glob patterns excluded from indexing,
	// on top of the built-in dotfile and junk-directory rules.
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty"`

	// DebounceMS is the watcher quiet window in milliseconds.
	DebounceMS int `yaml:"debounce_ms,omitempty"`
}

// DefaultPath returns the absolute path of the settings file,
// $XDG_CONFIG_HOME/traceindex/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "traceindex", "config.yaml"), nil
}

// Default returns the settings used when no config file exists: index
// the home directory, 20 results, depth 12.
func Default() Settings {
	roots := []string{"~"}
	return Settings{
		Roots:      roots,
		MaxResults: 20,
		MaxDepth:   12,
		DebounceMS: 100,
	}
}

// Load reads settings from the given path, falling back to defaults if
// the file does not exist. Root paths are ~-expanded and zero-valued
// fields are filled from the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(s.Roots) == 0 {
		s.Roots = Default().Roots
	}
	if s.MaxResults <= 0 {
		s.MaxResults = Default().MaxResults
	}
	if s.MaxDepth <= 0 {
		s.MaxDepth = Default().MaxDepth
	}
	if s.DebounceMS <= 0 {
		s.DebounceMS = Default().DebounceMS
	}

	roots := make([]string, 0, len(s.Roots))
	for _, root := range s.Roots {
		expanded, err := ExpandPath(root)
		if err != nil {
			return Settings{}, err
		}
		roots = append(roots, filepath.Clean(expanded))
	}
	s.Roots = roots

	return s, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}
