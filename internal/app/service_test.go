package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omniview/rename"
)

type kvStore struct {
	values map[string]string
}

func (s *kvStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *kvStore) Set(key, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	root := t.TempDir()
	ws := filepath.Join(root, "ws")
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "drawings"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "drawings", "plan.pdf"), []byte("p"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "drawings", "site.dwg"), []byte("s"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "readme.txt"), []byte("r"), 0o644))

	cfg := Config{WorkspaceDir: ws, TaxonomyFile: filepath.Join(root, "taxonomy.yaml")}
	cfg.ApplyDefaults()
	svc, err := NewService(cfg, &kvStore{}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceScansWorkspace(t *testing.T) {
	svc := newTestService(t)
	dirs, files := svc.Stats()
	assert.Equal(t, 1, dirs)
	assert.Equal(t, 3, files)
	assert.FileExists(t, svc.Config().TaxonomyFile, "catalog seeded on first run")
}

func TestApplyRenameReselectsNewPath(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SelectPath("drawings/plan.pdf")
	require.NoError(t, err)

	segs := svc.Engine().Segments()
	require.NoError(t, segs.Select(rename.FieldClass, "DWG"))
	require.NoError(t, segs.SetText(rename.FieldDate, "20250115"))

	res, err := svc.ApplyRename(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "DWG-20250115.pdf", res.NewName)

	ws := svc.Config().WorkspaceDir
	assert.FileExists(t, filepath.Join(ws, "drawings", "DWG-20250115.pdf"))
	assert.NoFileExists(t, filepath.Join(ws, "drawings", "plan.pdf"))

	active := svc.Engine().ActiveFile()
	require.NotNil(t, active, "renamed file stays selected")
	assert.Equal(t, "drawings/DWG-20250115.pdf", active.Path)
}

func TestApplyBatchNumbersCheckedFiles(t *testing.T) {
	svc := newTestService(t)
	for _, p := range []string{"drawings/plan.pdf", "drawings/site.dwg", "readme.txt"} {
		on, err := svc.ToggleChecked(p)
		require.NoError(t, err)
		assert.True(t, on)
	}
	require.Equal(t, 3, svc.CheckedCount())

	segs := svc.Engine().Segments()
	require.NoError(t, segs.Select(rename.FieldClass, "RPT"))
	require.NoError(t, segs.SetText(rename.FieldDate, "20250101"))

	res, err := svc.ApplyBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Succeeded)

	ws := svc.Config().WorkspaceDir
	assert.FileExists(t, filepath.Join(ws, "drawings", "RPT-20250101-001.pdf"))
	assert.FileExists(t, filepath.Join(ws, "drawings", "RPT-20250101-002.dwg"))
	assert.FileExists(t, filepath.Join(ws, "RPT-20250101-003.txt"))
	assert.Equal(t, 0, svc.CheckedCount(), "check marks cleared after batch")
}

func TestToggleCheckedRejectsDirectories(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ToggleChecked("drawings")
	assert.Error(t, err)
	_, err = svc.ToggleChecked("missing.pdf")
	assert.Error(t, err)
}

func TestSelectPathDirectoryClearsActive(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SelectPath("drawings/plan.pdf")
	require.NoError(t, err)
	require.NotNil(t, svc.Engine().ActiveFile())

	entry, err := svc.SelectPath("drawings")
	require.NoError(t, err)
	assert.True(t, entry.IsDir())
	assert.Nil(t, svc.Engine().ActiveFile())
}

func TestRescanKeepsSurvivingChecks(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ToggleChecked("readme.txt")
	require.NoError(t, err)
	_, err = svc.ToggleChecked("drawings/plan.pdf")
	require.NoError(t, err)

	ws := svc.Config().WorkspaceDir
	require.NoError(t, os.Remove(filepath.Join(ws, "readme.txt")))
	require.NoError(t, svc.Rescan(context.Background()))

	assert.False(t, svc.IsChecked("readme.txt"))
	assert.True(t, svc.IsChecked("drawings/plan.pdf"))
	assert.Equal(t, 1, svc.CheckedCount())
}

func TestSetWorkspaceResetsState(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ToggleChecked("readme.txt")
	require.NoError(t, err)
	_, err = svc.SelectPath("readme.txt")
	require.NoError(t, err)

	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, svc.SetWorkspace(context.Background(), other))

	assert.Equal(t, 0, svc.CheckedCount())
	assert.Nil(t, svc.Engine().ActiveFile())
	_, files := svc.Stats()
	assert.Equal(t, 1, files)
}
