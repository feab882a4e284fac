package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tabdeck/internal/tab"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings the shell consumes before a panel sees a key.
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Jump    []key.Binding
	Palette key.Binding
	Dark    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Palette: key.NewBinding(key.WithKeys("f5", "alt+p"), key.WithHelp("f5", "palette")),
		Dark:    key.NewBinding(key.WithKeys("f6", "alt+d"), key.WithHelp("f6", "dark")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	for i, id := range tab.All() {
		fkey := fmt.Sprintf("f%d", i+1)
		km.Jump = append(km.Jump, key.NewBinding(
			key.WithKeys(fkey, fmt.Sprintf("alt+%d", i+1)),
			key.WithHelp(fkey, id.Label()),
		))
	}
	return km
}

// jumpTarget returns the tab bound to msg by the f-key/alt-digit bindings.
func (km keyMap) jumpTarget(msg tea.KeyMsg) (tab.ID, bool) {
	for i, binding := range km.Jump {
		if key.Matches(msg, binding) {
			return tab.At(i)
		}
	}
	return 0, false
}

func (km keyMap) footer() string {
	parts := []string{"tab/shift+tab switch", fmt.Sprintf("f1-f%d jump", len(km.Jump))}
	for _, b := range []key.Binding{km.Palette, km.Dark, km.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
