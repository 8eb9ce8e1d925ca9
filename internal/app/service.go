package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"omniview/internal/workspace"
	"omniview/rename"
)

// switchFS lets the engine keep a single filesystem handle while the
// workspace directory can change underneath it.
type switchFS struct {
	mu sync.RWMutex
	fs rename.FileSystem
}

func (s *switchFS) ResolveParent(path string) (rename.Dir, error) {
	s.mu.RLock()
	fs := s.fs
	s.mu.RUnlock()
	if fs == nil {
		return nil, fmt.Errorf("no workspace open")
	}
	return fs.ResolveParent(path)
}

func (s *switchFS) swap(fs rename.FileSystem) {
	s.mu.Lock()
	s.fs = fs
	s.mu.Unlock()
}

// Service owns the renaming engine and the scanned workspace state the
// UI renders from. All exported methods are safe for concurrent use.
type Service struct {
	mu      sync.RWMutex
	cfg     Config
	engine  *rename.Engine
	scanner *workspace.Scanner
	proxy   *switchFS
	entries []*rename.FileEntry
	checked map[string]bool
	logger  *log.Logger
}

func NewService(cfg Config, store rename.Store, logger *log.Logger) (*Service, error) {
	if err := rename.EnsureTaxonomyFile(cfg.TaxonomyFile); err != nil {
		return nil, err
	}
	tax, err := rename.LoadTaxonomyFile(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	proxy := &switchFS{}
	svc := &Service{
		cfg:     cfg,
		engine:  rename.NewEngine(tax, proxy, store, logger),
		proxy:   proxy,
		checked: make(map[string]bool),
		logger:  logger,
	}
	svc.engine.ClearSegments()
	if err := svc.SetWorkspace(context.Background(), cfg.WorkspaceDir); err != nil {
		return nil, err
	}
	return svc, nil
}

// Engine exposes the underlying renaming engine for segment edits and
// suggestion lookups.
func (s *Service) Engine() *rename.Engine {
	return s.engine
}

func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetWorkspace switches the scanned directory and rescans it. The
// current selection and check marks are discarded.
func (s *Service) SetWorkspace(ctx context.Context, dir string) error {
	scanner := workspace.NewScanner(dir)
	entries, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}
	s.proxy.swap(workspace.NewDirFS(dir))

	s.mu.Lock()
	s.cfg.WorkspaceDir = dir
	s.scanner = scanner
	s.entries = entries
	s.checked = make(map[string]bool)
	s.mu.Unlock()

	s.engine.SetActiveFile(nil)
	if s.logger != nil {
		s.logger.Printf("workspace %s: %d entries", dir, len(workspace.Flatten(entries)))
	}
	return nil
}

// Rescan re-reads the workspace tree, keeping check marks for paths
// that still exist.
func (s *Service) Rescan(ctx context.Context) error {
	s.mu.RLock()
	scanner := s.scanner
	s.mu.RUnlock()
	if scanner == nil {
		return fmt.Errorf("no workspace open")
	}
	entries, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	kept := make(map[string]bool, len(s.checked))
	for path, on := range s.checked {
		if !on {
			continue
		}
		if _, ok := workspace.FindByPath(entries, path); ok {
			kept[path] = true
		}
	}
	s.entries = entries
	s.checked = kept
	s.mu.Unlock()
	return nil
}

// Entries returns the current workspace tree.
func (s *Service) Entries() []*rename.FileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// SelectPath makes the file at path the engine's active file.
// Selecting a directory clears the active file.
func (s *Service) SelectPath(path string) (*rename.FileEntry, error) {
	s.mu.RLock()
	entry, ok := workspace.FindByPath(s.entries, path)
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no entry at %s", path)
	}
	if entry.IsDir() {
		s.engine.SetActiveFile(nil)
		return entry, nil
	}
	s.engine.SetActiveFile(entry)
	return entry, nil
}

// ToggleChecked flips the batch check mark of a file and reports the
// new state. Directories cannot be checked.
func (s *Service) ToggleChecked(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := workspace.FindByPath(s.entries, path)
	if !ok {
		return false, fmt.Errorf("no entry at %s", path)
	}
	if entry.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	s.checked[path] = !s.checked[path]
	return s.checked[path], nil
}

func (s *Service) IsChecked(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked[path]
}

// CheckedFiles returns the checked files in tree display order, so
// batch sequence numbers follow the explorer listing.
func (s *Service) CheckedFiles() []*rename.FileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*rename.FileEntry
	for _, e := range workspace.Flatten(s.entries) {
		if s.checked[e.Path] {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) CheckedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, on := range s.checked {
		if on {
			n++
		}
	}
	return n
}

// ApplyRename renames the active file, rescans the workspace, and
// reselects the renamed file under its new name.
func (s *Service) ApplyRename(ctx context.Context) (rename.Result, error) {
	res, err := s.engine.RenameOne(ctx)
	if err != nil {
		return res, err
	}
	if err := s.Rescan(ctx); err != nil {
		return res, err
	}
	if _, err := s.SelectPath(res.NewPath); err != nil {
		s.engine.SetActiveFile(nil)
	}
	return res, nil
}

// ApplyBatch renames every checked file and rescans. Check marks are
// cleared afterwards, including for files whose rename failed.
func (s *Service) ApplyBatch(ctx context.Context) (rename.BatchResult, error) {
	files := s.CheckedFiles()
	res, err := s.engine.RenameBatch(ctx, files)
	if err != nil {
		return res, err
	}

	s.mu.Lock()
	s.checked = make(map[string]bool)
	s.mu.Unlock()

	if err := s.Rescan(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// ExportHistory writes the rename ledger as CSV.
func (s *Service) ExportHistory(w io.Writer) error {
	return s.engine.History().ExportCSV(w)
}

// Stats reports the number of directories and files in the workspace.
func (s *Service) Stats() (dirs, files int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range workspace.Flatten(s.entries) {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return dirs, files
}

// KnownValues returns the remembered values for a free-text field,
// sorted for stable display.
func (s *Service) KnownValues(field string) []string {
	vals := s.engine.Known(field)
	sort.Strings(vals)
	return vals
}
