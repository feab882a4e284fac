// Package todo is the to-do list panel backed by the todos table.
package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/tabdeck/internal/command"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/panel/listing"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/muesli/reflow/truncate"
)

// Store is the persistence the panel needs.
type Store interface {
	List(ctx context.Context) ([]storage.Todo, error)
	Add(ctx context.Context, text string) (storage.Todo, error)
	Toggle(ctx context.Context, id string) (storage.Todo, error)
	Delete(ctx context.Context, id string) error
}

type keyMap struct {
	Submit   key.Binding
	Delete   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Filter   key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/toggle")),
	Delete:   key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "remove")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
	End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	Filter:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop filtering")),
}

var (
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"})
	cursorStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"})
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"})
)

const (
	addPrompt    = "Add a task…"
	filterPrompt = "Filter tasks…"
)

type loadedMsg struct {
	owner panel.Token
	seq   uint64
	items []storage.Todo
	focus string
	err   error
}

// Model is the to-do panel.
type Model struct {
	token     panel.Token
	store     Store
	bus       *command.Bus
	input     textinput.Model
	list      *listing.List
	items     map[string]storage.Todo
	filtering bool
	loading   bool
	err       error

	// seq numbers reload requests; applied is the newest reply shown.
	seq      uint64
	applied  uint64
	pageRows int
}

// New returns a panel reading and writing through store.
func New(store Store, bus *command.Bus) *Model {
	if bus == nil {
		bus = command.New(context.Background())
	}
	return &Model{
		token: panel.NewToken(),
		store: store,
		bus:   bus,
		input: panel.NewInput(addPrompt, 200),
		list:  listing.New("todo", nil),
		items: map[string]storage.Todo{},
	}
}

// Factory adapts New to panel.Factory.
func Factory(store Store, bus *command.Bus) panel.Factory {
	return func() panel.Panel { return New(store, bus) }
}

// Items returns the visible items in display order.
func (m *Model) Items() []storage.Todo {
	out := make([]storage.Todo, 0, len(m.list.Items))
	for _, it := range m.list.Items {
		out = append(out, m.items[it.ID])
	}
	return out
}

// Current returns the item under the cursor.
func (m *Model) Current() (storage.Todo, bool) {
	it, ok := m.list.Current()
	if !ok {
		return storage.Todo{}, false
	}
	return m.items[it.ID], true
}

// Filtering reports whether the input is in filter mode.
func (m *Model) Filtering() bool { return m.filtering }

// Remaining counts items not yet done across the whole list.
func (m *Model) Remaining() int {
	n := 0
	for _, t := range m.items {
		if !t.Done {
			n++
		}
	}
	return n
}

// Err is the last storage error, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.run("load", func(context.Context) (string, error) { return "", nil })
}

// run performs op and then reloads the list so the view always mirrors the
// table. The id returned by op is focused after the reload. Replies older than
// the last one applied are dropped.
func (m *Model) run(label string, op func(ctx context.Context) (string, error)) tea.Cmd {
	m.seq++
	owner, seq := m.token, m.seq
	store := m.store
	return m.bus.Execute(command.Request{
		ID:    fmt.Sprintf("todo#%d.%d", owner, seq),
		Label: label,
		Run: func(ctx context.Context) tea.Msg {
			if store == nil {
				return loadedMsg{owner: owner, seq: seq, err: fmt.Errorf("todo store unavailable")}
			}
			focus, err := op(ctx)
			if err != nil {
				return loadedMsg{owner: owner, seq: seq, err: err}
			}
			items, err := store.List(ctx)
			if items == nil && err == nil {
				items = []storage.Todo{}
			}
			return loadedMsg{owner: owner, seq: seq, items: items, focus: focus, err: err}
		},
	})
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		return m.handleLoaded(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.owner != m.token || msg.seq <= m.applied {
		return nil
	}
	m.applied = msg.seq
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		events.Panel.Error("todo", msg.err)
		return nil
	}
	m.err = nil
	m.items = make(map[string]storage.Todo, len(msg.items))
	rows := make([]listing.Item, len(msg.items))
	for i, t := range msg.items {
		m.items[t.ID] = t
		rows[i] = listing.Item{ID: t.ID, Label: t.Text}
	}
	m.list.SetItems(rows)
	if msg.focus != "" {
		m.list.Select(msg.focus)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		m.list.MoveCursorUp()
		return nil
	case key.Matches(msg, keys.Down):
		m.list.MoveCursorDown()
		return nil
	case key.Matches(msg, keys.PageUp):
		m.list.MoveCursorPageUp(m.pageRows)
		return nil
	case key.Matches(msg, keys.PageDown):
		m.list.MoveCursorPageDown(m.pageRows)
		return nil
	case key.Matches(msg, keys.Home) && m.input.Value() == "":
		m.list.MoveCursorHome()
		return nil
	case key.Matches(msg, keys.End) && m.input.Value() == "":
		m.list.MoveCursorEnd()
		return nil
	case key.Matches(msg, keys.Filter):
		if !m.filtering {
			m.filtering = true
			m.input.SetValue("")
			m.input.Placeholder = filterPrompt
		}
		return nil
	case key.Matches(msg, keys.Cancel):
		if m.filtering {
			m.stopFiltering()
		}
		return nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Delete) && m.input.Value() == "":
		return m.deleteCurrent()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.filtering {
		m.list.SetFilter(m.input.Value())
	}
	return cmd
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.input.SetValue("")
	m.input.Placeholder = addPrompt
	m.list.ClearFilter()
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if m.filtering || text == "" {
		return m.toggleCurrent()
	}
	m.input.SetValue("")
	store := m.store
	return m.run("add", func(ctx context.Context) (string, error) {
		t, err := store.Add(ctx, text)
		return t.ID, err
	})
}

func (m *Model) toggleCurrent() tea.Cmd {
	cur, ok := m.Current()
	if !ok {
		return nil
	}
	store := m.store
	return m.run("toggle", func(ctx context.Context) (string, error) {
		t, err := store.Toggle(ctx, cur.ID)
		return t.ID, err
	})
}

func (m *Model) deleteCurrent() tea.Cmd {
	cur, ok := m.Current()
	if !ok {
		return nil
	}
	store := m.store
	return m.run("delete", func(ctx context.Context) (string, error) {
		return "", store.Delete(ctx, cur.ID)
	})
}

func (m *Model) View(props panel.Props) string {
	width := props.Width
	if width <= 0 {
		width = 40
	}
	lines := []string{m.input.View(), ""}

	maxRows := props.Height - 5
	switch {
	case props.Height <= 0:
		maxRows = 0
	case maxRows < 1:
		maxRows = 1
	}
	m.pageRows = maxRows
	switch {
	case m.loading && len(m.items) == 0:
		lines = append(lines, mutedStyle.Render("Loading…"))
	case len(m.list.Items) == 0 && m.list.Filtering():
		lines = append(lines, mutedStyle.Render("No matching tasks"))
	case len(m.list.Items) == 0:
		lines = append(lines, mutedStyle.Render("Nothing to do"))
	default:
		visible, offset := m.list.Visible(maxRows)
		for i, it := range visible {
			lines = append(lines, m.renderRow(m.items[it.ID], offset+i == m.list.Cursor, width))
		}
	}

	lines = append(lines, "")
	if m.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+m.err.Error()))
	}
	status := english.Plural(m.Remaining(), "task", "") + " left"
	if m.filtering {
		status += "  esc stop filtering"
	} else {
		status += "  ctrl+f filter  del remove"
	}
	lines = append(lines, mutedStyle.Render(status))
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(t storage.Todo, selected bool, width int) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	marker := "  "
	if selected {
		marker = "> "
	}
	text := truncate.StringWithTail(t.Text, uint(max(width-8, 1)), "…")
	if t.Done {
		text = doneStyle.Render(text)
	}
	row := marker + box + " " + text
	if selected {
		return cursorStyle.Render(row)
	}
	return row
}
