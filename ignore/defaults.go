package ignore

// DefaultExcludedDirs contains directory names that are never worth
// indexing for a launcher: dependency caches, version-control metadata,
// build output, and trash folders. Dotfiles and dot-directories are
// excluded by a separate rule and do not need to be listed here.
var DefaultExcludedDirs = []string{
	// Dependencies
	"node_modules",
	"vendor",
	"bower_components",

	// Build output
	"target",
	"dist",
	"build",
	"out",

	// Interpreter caches
	"__pycache__",

	// Trash
	"Trash",
	"lost+found",
}
