// Package panel defines the contract between the shell and the widgets it
// mounts.
package panel

import (
	"fmt"
	"sync/atomic"

	"github.com/atomicstack/tabdeck/internal/tab"
	tea "github.com/charmbracelet/bubbletea"
)

// Props is everything a panel receives from the shell.
type Props struct {
	DarkMode bool
	Width    int
	Height   int
}

// Panel is a mounted widget. Update receives every message the shell does
// not consume itself.
type Panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(props Props) string
}

// Factory builds a fresh panel instance for each mount.
type Factory func() Panel

// Registry maps tabs to panel factories.
type Registry map[tab.ID]Factory

// Validate reports the first tab without a factory.
func (r Registry) Validate() error {
	for _, id := range tab.All() {
		if r[id] == nil {
			return fmt.Errorf("no panel registered for tab %s", id)
		}
	}
	return nil
}

// Build instantiates the panel for id.
func (r Registry) Build(id tab.ID) (Panel, error) {
	factory := r[id]
	if factory == nil {
		return nil, fmt.Errorf("no panel registered for tab %s", id)
	}
	return factory(), nil
}

// Token identifies one panel instance. Async replies carry the token of the
// instance that asked, so a later instance can drop them.
type Token uint64

var lastToken atomic.Uint64

// NewToken returns a process-unique token.
func NewToken() Token {
	return Token(lastToken.Add(1))
}
