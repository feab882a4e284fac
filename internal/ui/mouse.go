package ui

import (
	"strings"

	"github.com/atomicstack/tabdeck/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg maps left clicks onto header buttons and navigation entries,
// and tracks the hovered target for highlighting.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	target, hit := m.layout().hit(ev.X, ev.Y)
	if ev.Action == tea.MouseActionMotion {
		m.hover = target
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft || !hit {
		return nil
	}
	events.Shell.Click(target, ev.X, ev.Y)
	switch {
	case target == targetPalette:
		m.cycleTheme()
	case target == targetDark:
		m.toggleDarkMode()
	case strings.HasPrefix(target, tabTargetPrefix):
		cmd, _ := m.shell.Router.SelectTab(strings.TrimPrefix(target, tabTargetPrefix))
		return cmd
	}
	return nil
}
