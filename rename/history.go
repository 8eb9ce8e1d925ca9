package rename

import (
	"encoding/csv"
	"io"
	"time"
)

const historyCap = 50

// HistoryEntry records one completed rename. Entries are immutable
// after creation.
type HistoryEntry struct {
	OldName string
	NewName string
	Parent  string
	When    time.Time
}

// History is the append-only, bounded ledger of completed renames,
// newest first. It is informational only: no editing, no undo.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty ledger.
func NewHistory() *History {
	return &History{}
}

// Record prepends an entry, evicting the oldest past the cap.
func (h *History) Record(oldName, newName, parent string, when time.Time) {
	h.entries = append([]HistoryEntry{{
		OldName: oldName,
		NewName: newName,
		Parent:  parent,
		When:    when,
	}}, h.entries...)
	if len(h.entries) > historyCap {
		h.entries = h.entries[:historyCap]
	}
}

// Entries returns a copy of the ledger for display, newest first.
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// Len returns the number of recorded renames.
func (h *History) Len() int {
	return len(h.entries)
}

// ExportCSV writes the ledger to w with a header row.
func (h *History) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"old_name", "new_name", "parent", "renamed_at"}); err != nil {
		return err
	}
	for _, e := range h.entries {
		if err := cw.Write([]string{e.OldName, e.NewName, e.Parent, e.When.Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
