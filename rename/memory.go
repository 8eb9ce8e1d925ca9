package rename

import (
	"encoding/json"
	"log"
	"strings"
)

const (
	memoryCap  = 100
	suggestCap = 8

	storageKeyClients = "omniview_clients"
	storageKeyJobs    = "omniview_jobs"
)

// PredictionMemory keeps the previously used Client and Job values for
// autocomplete. Each field is an independent most-recently-used list of
// upper-cased strings, deduplicated and capped at 100 entries. Lists
// are loaded once from the Store and written back on every successful
// addition, so they outlive the process.
type PredictionMemory struct {
	store  Store
	logger *log.Logger
	lists  map[string][]string
}

// NewPredictionMemory loads both lists from the store. Unreadable
// persisted state degrades to an empty list rather than failing.
func NewPredictionMemory(store Store, logger *log.Logger) *PredictionMemory {
	m := &PredictionMemory{store: store, logger: logger, lists: make(map[string][]string, 2)}
	m.lists[FieldClient] = m.load(storageKeyClients)
	m.lists[FieldJob] = m.load(storageKeyJobs)
	return m
}

// Suggest returns up to eight stored values matching the query as a
// case-insensitive substring, most recently added first. An empty query
// returns the head of the list; an empty query on an empty list returns
// nothing so callers can hide the suggestion surface.
func (m *PredictionMemory) Suggest(field, query string) []string {
	list, ok := m.lists[field]
	if !ok || len(list) == 0 {
		return nil
	}
	q := strings.ToUpper(strings.TrimSpace(query))
	out := make([]string, 0, suggestCap)
	for _, v := range list {
		if strings.Contains(v, q) {
			out = append(out, v)
			if len(out) == suggestCap {
				break
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Remember adds a value to the front of the field's list. Blank values
// and values already present are no-ops; an existing entry keeps its
// position rather than being promoted.
func (m *PredictionMemory) Remember(field, value string) {
	key, ok := m.storageKey(field)
	if !ok {
		return
	}
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return
	}
	list := m.lists[field]
	for _, existing := range list {
		if existing == v {
			return
		}
	}
	list = append([]string{v}, list...)
	if len(list) > memoryCap {
		list = list[:memoryCap]
	}
	m.lists[field] = list
	m.save(key, list)
}

// Known returns a copy of the stored list for a field.
func (m *PredictionMemory) Known(field string) []string {
	return append([]string(nil), m.lists[field]...)
}

func (m *PredictionMemory) storageKey(field string) (string, bool) {
	switch field {
	case FieldClient:
		return storageKeyClients, true
	case FieldJob:
		return storageKeyJobs, true
	default:
		return "", false
	}
}

func (m *PredictionMemory) load(key string) []string {
	raw, ok := m.store.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		m.logf("prediction memory %s unreadable, starting empty: %v", key, err)
		return nil
	}
	return list
}

func (m *PredictionMemory) save(key string, list []string) {
	data, err := json.Marshal(list)
	if err != nil {
		m.logf("prediction memory %s encode: %v", key, err)
		return
	}
	if err := m.store.Set(key, string(data)); err != nil {
		m.logf("prediction memory %s save: %v", key, err)
	}
}

func (m *PredictionMemory) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}
