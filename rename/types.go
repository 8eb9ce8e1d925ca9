package rename

import (
	"context"
	"strings"
)

// Kind distinguishes files from directories in a workspace listing.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// FileEntry describes one entry of the scanned workspace tree. Entries
// are produced and owned by the scanning collaborator; the engine only
// reads Name, Path and Ext and never mutates an entry.
type FileEntry struct {
	Name     string
	Path     string // slash-joined, relative to the workspace root
	Kind     Kind
	Ext      string // lower case, no leading dot, empty when undetected
	Size     int64
	Children []*FileEntry
}

// IsDir reports whether the entry is a directory.
func (e *FileEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// ParentPath returns the slash-joined parent of a workspace path. Files
// at the workspace root have an empty parent.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

// Dir is an opaque handle to a parent directory resolved by the
// filesystem collaborator. All operations are addressed by entry name
// within that directory.
type Dir interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}

// FileSystem resolves the parent directory of a workspace path. The
// engine holds no directory handles of its own beyond a single resolve
// per operation, so a rescan can never leave it with a stale handle.
type FileSystem interface {
	ResolveParent(path string) (Dir, error)
}

// Store is the key-value persistence port for the prediction memory.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Result describes one completed rename.
type Result struct {
	OldName string
	NewName string
	Parent  string
	NewPath string
}

// BatchFailure records one batch member that could not be renamed.
type BatchFailure struct {
	Path string
	Err  error
}

// BatchResult summarises a batch rename. The batch is best effort:
// Failures never aborts the remaining members.
type BatchResult struct {
	Total     int
	Succeeded int
	Renamed   []Result
	Failures  []BatchFailure
}
