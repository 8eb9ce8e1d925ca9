package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omniview/rename"
)

func seedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Drawings"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "submittals"), 0o755))
	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte(content), 0o644))
	}
	write("Zebra.pdf", "z")
	write("alpha.PDF", "a")
	write("notes", "n")
	write(".hidden", "h")
	write("Drawings/plan.dwg", "dwg-bytes")
	return root
}

func TestScanOrdering(t *testing.T) {
	root := seedTree(t)
	entries, err := NewScanner(root).Scan(context.Background())
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	// Directories first, then files, case-insensitive within each kind.
	assert.Equal(t, []string{"Drawings", "submittals", "alpha.PDF", "notes", "Zebra.pdf"}, names)
}

func TestScanEntryDetails(t *testing.T) {
	root := seedTree(t)
	entries, err := NewScanner(root).Scan(context.Background())
	require.NoError(t, err)

	plan, ok := FindByPath(entries, "Drawings/plan.dwg")
	require.True(t, ok)
	assert.Equal(t, rename.KindFile, plan.Kind)
	assert.Equal(t, "dwg", plan.Ext)
	assert.Equal(t, int64(len("dwg-bytes")), plan.Size)
	assert.Equal(t, "plan.dwg", plan.Name)

	bare, ok := FindByPath(entries, "notes")
	require.True(t, ok)
	assert.Equal(t, "", bare.Ext)

	upper, ok := FindByPath(entries, "alpha.PDF")
	require.True(t, ok)
	assert.Equal(t, "pdf", upper.Ext, "extension lower-cased")
}

func TestScanSkipsHidden(t *testing.T) {
	root := seedTree(t)
	entries, err := NewScanner(root).Scan(context.Background())
	require.NoError(t, err)
	_, ok := FindByPath(entries, ".hidden")
	assert.False(t, ok)
}

func TestScanCancelled(t *testing.T) {
	root := seedTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(root).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanMissingDir(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "gone")).Scan(context.Background())
	assert.Error(t, err)
}

func TestFlattenDepthFirst(t *testing.T) {
	root := seedTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Drawings", "site.pdf"), []byte("s"), 0o644))
	entries, err := NewScanner(root).Scan(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, e := range Flatten(entries) {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"Drawings",
		"Drawings/plan.dwg",
		"Drawings/site.pdf",
		"submittals",
		"alpha.PDF",
		"notes",
		"Zebra.pdf",
	}, paths)
}
