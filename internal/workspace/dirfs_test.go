package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFSRoundTrip(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "drawings"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "drawings", "plan.pdf"), []byte("payload"), 0o644))

	fs := NewDirFS(root)
	dir, err := fs.ResolveParent("drawings/plan.pdf")
	require.NoError(t, err)

	ctx := context.Background()
	data, err := dir.ReadFile(ctx, "plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, dir.WriteFile(ctx, "DWG-plan.pdf", data))
	require.NoError(t, dir.Remove(ctx, "plan.pdf"))

	assert.NoFileExists(t, filepath.Join(root, "drawings", "plan.pdf"))
	got, err := os.ReadFile(filepath.Join(root, "drawings", "DWG-plan.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestDirFSRootLevelFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("r"), 0o644))

	dir, err := NewDirFS(root).ResolveParent("readme.txt")
	require.NoError(t, err)
	data, err := dir.ReadFile(context.Background(), "readme.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("r"), data)
}

func TestDirFSRejectsEscape(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Dir(root)
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s"), 0o644))

	fs := NewDirFS(filepath.Join(root, "ws"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ws"), 0o755))

	// Traversal segments are squashed before the path is resolved, so
	// the lookup stays inside the root and fails there instead.
	_, err := fs.ResolveParent("../secret.txt")
	assert.NoError(t, err) // parent resolves to the root itself

	dir, err := fs.ResolveParent("../../secret.txt")
	require.NoError(t, err)
	_, err = dir.ReadFile(context.Background(), "secret.txt")
	assert.Error(t, err, "file outside the workspace is not visible")
}

func TestDirFSInvalidPath(t *testing.T) {
	fs := NewDirFS(t.TempDir())
	_, err := fs.ResolveParent("")
	assert.Error(t, err)
	_, err = fs.ResolveParent("/")
	assert.Error(t, err)
}

func TestDirFSMissingParent(t *testing.T) {
	fs := NewDirFS(t.TempDir())
	_, err := fs.ResolveParent("nope/file.pdf")
	assert.Error(t, err)
}

func TestDirFSContextCancelled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	dir, err := NewDirFS(root).ResolveParent("a.txt")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dir.ReadFile(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, dir.WriteFile(ctx, "b.txt", nil), context.Canceled)
	assert.ErrorIs(t, dir.Remove(ctx, "a.txt"), context.Canceled)
}
