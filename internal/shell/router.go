package shell

import (
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/tab"
	tea "github.com/charmbracelet/bubbletea"
)

// TabPersister stores the active-tab preference.
type TabPersister interface {
	SaveActiveTab(id tab.ID) error
}

// Router owns the active tab and the single mounted panel.
type Router struct {
	registry panel.Registry
	persist  TabPersister
	active   tab.ID
	mounted  panel.Panel
}

// NewRouter validates registry and starts on initial, falling back to
// tab.Default for an invalid id. Nothing is mounted until Mount.
func NewRouter(registry panel.Registry, initial tab.ID, persist TabPersister) (*Router, error) {
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if !initial.Valid() {
		initial = tab.Default
	}
	return &Router{registry: registry, persist: persist, active: initial}, nil
}

// Active returns the selected tab.
func (r *Router) Active() tab.ID { return r.active }

// Mounted returns the mounted panel, nil before Mount.
func (r *Router) Mounted() panel.Panel { return r.mounted }

// Mount builds the panel for the active tab and returns its Init command.
func (r *Router) Mount() tea.Cmd {
	p, err := r.registry.Build(r.active)
	if err != nil {
		// unreachable after Validate
		events.Panel.Error(r.active.String(), err)
		return nil
	}
	r.mounted = p
	events.Panel.Mount(r.active.String())
	return p.Init()
}

// SelectTab parses raw and selects it. Unknown identifiers leave the state
// untouched and report false.
func (r *Router) SelectTab(raw string) (tea.Cmd, bool) {
	id, ok := tab.Parse(raw)
	if !ok {
		events.Shell.Reject(raw)
		return nil, false
	}
	return r.Select(id), true
}

// Select makes id the active tab, persists it and swaps the mounted panel.
// Selecting the active tab again does nothing.
func (r *Router) Select(id tab.ID) tea.Cmd {
	if !id.Valid() {
		events.Shell.Reject(id.String())
		return nil
	}
	if id == r.active && r.mounted != nil {
		return nil
	}
	prev := r.active
	r.active = id
	events.Shell.Select(prev.String(), id.String())
	if r.persist != nil {
		if err := r.persist.SaveActiveTab(id); err != nil {
			logging.Errorf("save active tab: %w", err)
		}
	}
	if r.mounted != nil {
		events.Panel.Unmount(prev.String())
		r.mounted = nil
	}
	return r.Mount()
}

// Next selects the tab after the active one, wrapping around.
func (r *Router) Next() tea.Cmd { return r.Select(r.active.Next()) }

// Prev selects the tab before the active one, wrapping around.
func (r *Router) Prev() tea.Cmd { return r.Select(r.active.Prev()) }
