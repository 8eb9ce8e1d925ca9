package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"omniview/rename"
)

// DirFS implements rename.FileSystem on top of the os package, rooted
// at the workspace directory. Workspace paths outside the root are
// rejected so a stale or hostile path can never escape it.
type DirFS struct {
	root string
}

// NewDirFS returns a filesystem rooted at dir.
func NewDirFS(dir string) *DirFS {
	return &DirFS{root: filepath.Clean(dir)}
}

// ResolveParent resolves the parent directory of a workspace path.
// Root-level files resolve to the workspace root itself.
func (f *DirFS) ResolveParent(path string) (rename.Dir, error) {
	clean := strings.Trim(filepath.ToSlash(filepath.Clean("/"+path)), "/")
	if clean == "" || clean == "." {
		return nil, fmt.Errorf("invalid workspace path %q", path)
	}
	parent := rename.ParentPath(clean)
	abs := filepath.Join(f.root, filepath.FromSlash(parent))
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", clean, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("parent of %s is not a directory", clean)
	}
	return &osDir{abs: abs}, nil
}

type osDir struct {
	abs string
}

func (d *osDir) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.abs, name))
}

func (d *osDir) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.abs, name), data, 0o644)
}

func (d *osDir) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(filepath.Join(d.abs, name))
}
