package app

import (
	"fyne.io/fyne/v2"
)

// prefStore adapts fyne application preferences to the key/value
// store the prediction memory persists through. Absent keys report
// ok=false so fresh installs start with empty memory.
type prefStore struct {
	prefs fyne.Preferences
}

func newPrefStore(a fyne.App) *prefStore {
	return &prefStore{prefs: a.Preferences()}
}

func (p *prefStore) Get(key string) (string, bool) {
	v := p.prefs.StringWithFallback(key, "")
	if v == "" {
		return "", false
	}
	return v, true
}

func (p *prefStore) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}
