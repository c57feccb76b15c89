package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides whether a filesystem entry should be excluded from the
// index. It combines three rules: names starting with a dot, a fixed
// denylist of junk directory names, and custom user-supplied glob
// patterns. Additionally, a .gitignore at the top of an index root is
// honored for paths under that root.
//
// Thread-safe: Reload() acquires a write lock, the Should* methods
// acquire a read lock.
type Matcher struct {
	mu             sync.RWMutex
	customPatterns []string
	gitIgnores     map[string]gitignore.GitIgnore // index root -> matcher
}

// NewMatcher creates a matcher with the given custom exclude patterns
// (doublestar globs, matched against entry names and root-relative paths).
func NewMatcher(customPatterns []string) *Matcher {
	return &Matcher{
		customPatterns: customPatterns,
		gitIgnores:     make(map[string]gitignore.GitIgnore),
	}
}

// AddRoot registers an index root and loads its top-level .gitignore,
// if one exists. Roots without a .gitignore are handled by the name
// rules alone.
func (m *Matcher) AddRoot(root string) {
	gi := loadIgnoreFile(filepath.Join(root, ".gitignore"), root)

	m.mu.Lock()
	m.gitIgnores[root] = gi
	m.mu.Unlock()
}

// ExcludedName reports whether an entry name (not a path) is excluded:
// dotfiles and the fixed junk-directory denylist. The index roots
// themselves are never passed through this check.
func (m *Matcher) ExcludedName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, dir := range DefaultExcludedDirs {
		if name == dir {
			return true
		}
	}
	return false
}

// ShouldExclude reports whether the entry at absolutePath under the
// given index root should be excluded. It applies the name rules, the
// custom patterns, and the root's .gitignore.
func (m *Matcher) ShouldExclude(root string, absolutePath string, isDir bool) bool {
	name := filepath.Base(absolutePath)
	if m.ExcludedName(name) {
		return true
	}

	relativePath, err := filepath.Rel(root, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.matchesCustomPatterns(name, relativePath) {
		return true
	}

	if gi := m.gitIgnores[root]; gi != nil {
		// Relative() does not require the path to exist on disk, which
		// matters for remove events arriving after the file is gone.
		if match := gi.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	return false
}

// matchesCustomPatterns checks the user-supplied glob patterns against
// the entry name and the root-relative path. Callers hold the read lock.
func (m *Matcher) matchesCustomPatterns(name string, relativePath string) bool {
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// Reload re-reads the .gitignore files of all registered roots.
func (m *Matcher) Reload() {
	m.mu.RLock()
	roots := make([]string, 0, len(m.gitIgnores))
	for root := range m.gitIgnores {
		roots = append(roots, root)
	}
	m.mu.RUnlock()

	fresh := make(map[string]gitignore.GitIgnore, len(roots))
	for _, root := range roots {
		fresh[root] = loadIgnoreFile(filepath.Join(root, ".gitignore"), root)
	}

	m.mu.Lock()
	m.gitIgnores = fresh
	m.mu.Unlock()
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher
// from it. Returns nil if the file cannot be opened.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
