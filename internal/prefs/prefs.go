// Package prefs loads and saves the two persisted shell preferences through
// an injected key-value store.
package prefs

import (
	"fmt"

	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/tab"
)

const (
	KeyActiveTab = "activeTab"
	KeyDarkMode  = "darkMode"
)

// Store is a string key-value store. ok is false when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Snapshot holds the preferences found at load time. Has* flags are false for
// values that were missing or unusable.
type Snapshot struct {
	ActiveTab    tab.ID
	HasActiveTab bool
	DarkMode     bool
	HasDarkMode  bool
}

// ActiveTabOr returns the stored tab or def.
func (s Snapshot) ActiveTabOr(def tab.ID) tab.ID {
	if s.HasActiveTab {
		return s.ActiveTab
	}
	return def
}

// DarkModeOr returns the stored flag or def.
func (s Snapshot) DarkModeOr(def bool) bool {
	if s.HasDarkMode {
		return s.DarkMode
	}
	return def
}

// Adapter reads and writes preferences. Read problems never escape Load.
type Adapter struct {
	store Store
}

// NewAdapter wraps store. A nil store gets an empty MemoryStore.
func NewAdapter(store Store) *Adapter {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Adapter{store: store}
}

// Load reads both keys independently.
func (a *Adapter) Load() Snapshot {
	var snap Snapshot

	if raw, ok := a.get(KeyActiveTab); ok {
		if id, valid := tab.Parse(raw); valid {
			snap.ActiveTab = id
			snap.HasActiveTab = true
		} else {
			events.Prefs.Fallback(KeyActiveTab, raw, "unknown tab")
		}
	}

	if raw, ok := a.get(KeyDarkMode); ok {
		if dark, err := DecodeBool(raw); err == nil {
			snap.DarkMode = dark
			snap.HasDarkMode = true
		} else {
			events.Prefs.Fallback(KeyDarkMode, raw, err.Error())
		}
	}

	return snap
}

func (a *Adapter) get(key string) (string, bool) {
	raw, ok, err := a.store.Get(key)
	if err != nil {
		events.Prefs.Error(key, err)
		logging.Errorf("read preference %s: %w", key, err)
		return "", false
	}
	events.Prefs.Load(key, raw, ok)
	return raw, ok
}

// Save writes one raw value.
func (a *Adapter) Save(key, value string) error {
	if err := a.store.Set(key, value); err != nil {
		events.Prefs.Error(key, err)
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	events.Prefs.Save(key, value)
	return nil
}

// SaveActiveTab stores the identifier of id.
func (a *Adapter) SaveActiveTab(id tab.ID) error {
	if !id.Valid() {
		return fmt.Errorf("save preference %s: invalid tab %d", KeyActiveTab, int(id))
	}
	return a.Save(KeyActiveTab, id.String())
}

// SaveDarkMode stores dark as "true" or "false".
func (a *Adapter) SaveDarkMode(dark bool) error {
	return a.Save(KeyDarkMode, EncodeBool(dark))
}

// EncodeBool renders b as "true" or "false".
func EncodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// DecodeBool accepts exactly "true" and "false".
func DecodeBool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("malformed boolean %q", raw)
}
