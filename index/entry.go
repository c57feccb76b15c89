package index

import "time"

// Kind classifies an indexed entry. The set is closed: callers switch
// over the three values explicitly.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindApp
)

// String returns the kind name used in tool output and logs.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	case KindApp:
		return "App"
	default:
		return "Unknown"
	}
}

// Entry is one indexed item: a file, a directory, or an installed
// application. Path is the identity key — the store never holds two
// entries with the same path.
type Entry struct {
	Name     string    // display name (file/dir/app name)
	Path     string    // absolute path, unique across the store
	Kind     Kind      // File, Directory, or App
	Size     int64     // byte size (0 for App entries)
	Modified time.Time // last modification time (zero for App entries)
}
