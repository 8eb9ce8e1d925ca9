package rename

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Engine derives canonical filenames from the taxonomy segments and
// executes single and batch renames against the workspace filesystem.
// Renames are copy-then-delete: the new file is written with the old
// content before the old entry is removed, because an in-place move is
// not universally available on the underlying storage. Operations are
// sequential; the engine never issues two filesystem mutations
// concurrently. Not safe for concurrent use; callers serialize.
type Engine struct {
	tax      Taxonomy
	segments *Segments
	memory   *PredictionMemory
	history  *History
	fs       FileSystem
	logger   *log.Logger

	active *FileEntry
}

// NewEngine wires a renaming session: catalog, empty segment store,
// prediction memory backed by store, and a fresh history ledger.
func NewEngine(tax Taxonomy, fs FileSystem, store Store, logger *log.Logger) *Engine {
	return &Engine{
		tax:      tax,
		segments: NewSegments(tax),
		memory:   NewPredictionMemory(store, logger),
		history:  NewHistory(),
		fs:       fs,
		logger:   logger,
	}
}

// Taxonomy returns the catalog the engine was built with.
func (e *Engine) Taxonomy() Taxonomy { return e.tax }

// Segments returns the live segment store.
func (e *Engine) Segments() *Segments { return e.segments }

// History returns the rename ledger.
func (e *Engine) History() *History { return e.history }

// Suggest proxies to the prediction memory.
func (e *Engine) Suggest(field, query string) []string {
	return e.memory.Suggest(field, query)
}

// Known returns every value the prediction memory holds for a field.
func (e *Engine) Known(field string) []string {
	return e.memory.Known(field)
}

// SetActiveFile binds the file currently targeted by the renaming UI.
// A nil entry clears the binding.
func (e *Engine) SetActiveFile(entry *FileEntry) {
	e.active = entry
}

// ActiveFile returns the currently bound file, nil when none.
func (e *Engine) ActiveFile() *FileEntry {
	return e.active
}

// Preview returns the predicted filename for the active file, empty
// when no file is bound or no segments are set.
func (e *Engine) Preview() string {
	if e.active == nil {
		return ""
	}
	return e.segments.BuildName(e.active.Ext)
}

// ClearSegments resets the segment store (date re-stamped to today).
func (e *Engine) ClearSegments() {
	e.segments.Clear()
}

// RenameOne renames the active file to the current prediction. On
// success the ledger and prediction memory are updated and the segment
// store is reset; the caller rescans the workspace and reselects
// Result.NewPath. Validation failures leave the filesystem untouched.
func (e *Engine) RenameOne(ctx context.Context) (Result, error) {
	if e.active == nil {
		return Result{}, ErrNoFileSelected
	}
	newName := e.Preview()
	if newName == "" {
		return Result{}, ErrEmptyPrediction
	}
	if newName == e.active.Name {
		return Result{}, ErrNameUnchanged
	}

	parent := ParentPath(e.active.Path)
	res, err := e.rewriteEntry(ctx, e.active, newName)
	if err != nil {
		return Result{}, err
	}

	e.history.Record(res.OldName, res.NewName, parent, time.Now())
	e.rememberSegments()
	e.segments.Clear()
	e.logf("renamed %s -> %s", res.OldName, res.NewName)
	return res, nil
}

// RenameBatch renames every checked file to the current template with a
// 1-based zero-padded sequence suffix, keeping each file's own
// extension. The batch is best effort: a failed member is reported and
// the pipeline continues, and the sequence counter advances for every
// attempted file regardless of outcome. A file that already bears its
// computed name counts as succeeded without touching storage.
// Prediction memory is updated once at the end; the caller rescans
// afterwards.
func (e *Engine) RenameBatch(ctx context.Context, files []*FileEntry) (BatchResult, error) {
	if len(files) == 0 {
		return BatchResult{}, ErrNoFilesChecked
	}
	base := e.segments.BuildName("")
	if base == "" {
		return BatchResult{}, ErrEmptyPrediction
	}

	res := BatchResult{Total: len(files)}
	for i, f := range files {
		name := fmt.Sprintf("%s-%03d", base, i+1)
		if f.Ext != "" {
			name += "." + f.Ext
		}
		if name == f.Name {
			// Already in target form. Entering the pipeline would
			// overwrite the file with itself and then remove it.
			res.Succeeded++
			e.logf("batch rename %s: already named, skipped", f.Path)
			continue
		}
		one, err := e.rewriteEntry(ctx, f, name)
		if err != nil {
			res.Failures = append(res.Failures, BatchFailure{Path: f.Path, Err: err})
			e.logf("batch rename %s failed: %v", f.Path, err)
			continue
		}
		e.history.Record(one.OldName, one.NewName, one.Parent, time.Now())
		res.Renamed = append(res.Renamed, one)
		res.Succeeded++
	}

	e.rememberSegments()
	e.logf("batch renamed %d/%d files", res.Succeeded, res.Total)
	return res, nil
}

// rewriteEntry performs the four-step pipeline for one file: resolve
// parent, read all content, write the new entry, remove the old one.
// The window between write and remove is not atomic; a remove failure
// leaves both files on disk, which the error message calls out.
func (e *Engine) rewriteEntry(ctx context.Context, f *FileEntry, newName string) (Result, error) {
	parent := ParentPath(f.Path)
	dir, err := e.fs.ResolveParent(f.Path)
	if err != nil {
		return Result{}, &StorageError{Step: "resolve parent", Name: f.Path, Err: err}
	}
	data, err := dir.ReadFile(ctx, f.Name)
	if err != nil {
		return Result{}, &StorageError{Step: "read", Name: f.Name, Err: err}
	}
	if err := dir.WriteFile(ctx, newName, data); err != nil {
		return Result{}, &StorageError{Step: "write", Name: newName, Err: err}
	}
	if err := dir.Remove(ctx, f.Name); err != nil {
		return Result{}, &StorageError{
			Step: "remove",
			Name: f.Name,
			Err:  fmt.Errorf("copy %s was written, original may still exist: %w", newName, err),
		}
	}

	newPath := newName
	if parent != "" {
		newPath = parent + "/" + newName
	}
	return Result{OldName: f.Name, NewName: newName, Parent: parent, NewPath: newPath}, nil
}

func (e *Engine) rememberSegments() {
	if v := e.segments.Value(FieldClient); v != "" {
		e.memory.Remember(FieldClient, v)
	}
	if v := e.segments.Value(FieldJob); v != "" {
		e.memory.Remember(FieldJob, v)
	}
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
