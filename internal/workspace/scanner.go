// Package workspace implements the directory-scanning collaborator of
// the renaming engine: it walks a local directory tree into stable
// FileEntry listings and exposes the filesystem port the engine
// mutates through.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"omniview/rename"
)

// Scanner produces hierarchical listings of a workspace directory.
// Paths are slash-joined relative to the root and act as stable entry
// identifiers across rescans.
type Scanner struct {
	root string
}

// NewScanner returns a scanner rooted at dir.
func NewScanner(dir string) *Scanner {
	return &Scanner{root: filepath.Clean(dir)}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree and returns the sorted top-level entries:
// directories before files, case-insensitive lexicographic within a
// kind. Hidden (dot) entries are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]*rename.FileEntry, error) {
	return s.scanDir(ctx, s.root, "")
}

func (s *Scanner) scanDir(ctx context.Context, dir, rel string) ([]*rename.FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	entries := make([]*rename.FileEntry, 0, len(list))
	for _, de := range list {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := name
		if rel != "" {
			path = rel + "/" + name
		}
		e := &rename.FileEntry{Name: name, Path: path}
		if de.IsDir() {
			e.Kind = rename.KindDirectory
			children, err := s.scanDir(ctx, filepath.Join(dir, name), path)
			if err != nil {
				return nil, err
			}
			e.Children = children
		} else {
			e.Kind = rename.KindFile
			e.Ext = extOf(name)
			if info, err := de.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind != b.Kind {
			return a.Kind == rename.KindDirectory
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return entries, nil
}

// Flatten returns every entry of the tree in depth-first display order.
func Flatten(entries []*rename.FileEntry) []*rename.FileEntry {
	out := make([]*rename.FileEntry, 0, len(entries))
	var walk func([]*rename.FileEntry)
	walk = func(list []*rename.FileEntry) {
		for _, e := range list {
			out = append(out, e)
			if len(e.Children) > 0 {
				walk(e.Children)
			}
		}
	}
	walk(entries)
	return out
}

// FindByPath locates an entry by its stable path identifier.
func FindByPath(entries []*rename.FileEntry, path string) (*rename.FileEntry, bool) {
	for _, e := range Flatten(entries) {
		if e.Path == path {
			return e, true
		}
	}
	return nil, false
}

func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
