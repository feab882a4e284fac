// Package postit is the sticky-notes panel backed by the notes table.
package postit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tabdeck/internal/command"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/panel/listing"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Colors is the rotation used by the colour key. New notes take the first.
var Colors = []string{"yellow", "pink", "blue", "green"}

// Store is the persistence the panel needs.
type Store interface {
	List(ctx context.Context) ([]storage.Note, error)
	Create(ctx context.Context, body, color string) (storage.Note, error)
	UpdateBody(ctx context.Context, id, body string) (storage.Note, error)
	SetColor(ctx context.Context, id, color string) (storage.Note, error)
	Delete(ctx context.Context, id string) error
}

type keyMap struct {
	Submit   key.Binding
	Edit     key.Binding
	Color    key.Binding
	Delete   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Edit:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit")),
	Color:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "colour")),
	Delete:   key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "remove")),
	Prev:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
	Next:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "row down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
	End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel edit")),
}

type cardColor struct {
	background lipgloss.Color
	foreground lipgloss.Color
}

var lightCards = map[string]cardColor{
	"yellow": {"#fef08a", "#1f2937"},
	"pink":   {"#fbcfe8", "#1f2937"},
	"blue":   {"#bfdbfe", "#1f2937"},
	"green":  {"#bbf7d0", "#1f2937"},
}

var darkCards = map[string]cardColor{
	"yellow": {"#a16207", "#ffffff"},
	"pink":   {"#9d174d", "#ffffff"},
	"blue":   {"#1e40af", "#ffffff"},
	"green":  {"#166534", "#ffffff"},
}

const (
	cardWidth    = 24
	cardLines    = 4
	createPrompt = "Write a note…"
	editPrompt   = "Edit note…"
)

// cardHeight is the rendered height of one card: body, blank line, timestamp
// and the two border rows.
const cardHeight = cardLines + 4

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"})
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"})
)

type loadedMsg struct {
	owner panel.Token
	seq   uint64
	notes []storage.Note
	focus string
	err   error
}

// Model is the sticky-notes panel.
type Model struct {
	token   panel.Token
	store   Store
	bus     *command.Bus
	now     func() time.Time
	input   textinput.Model
	list    *listing.List
	notes   map[string]storage.Note
	editing string
	loading bool
	err     error
	seq     uint64
	applied uint64

	// layout of the last render, used by the row and page keys
	perRow   int
	pageRows int
}

// New returns a panel reading and writing through store. A nil clock uses
// time.Now for relative timestamps.
func New(store Store, bus *command.Bus, now func() time.Time) *Model {
	if bus == nil {
		bus = command.New(context.Background())
	}
	if now == nil {
		now = time.Now
	}
	return &Model{
		token: panel.NewToken(),
		store: store,
		bus:   bus,
		now:   now,
		input: panel.NewInput(createPrompt, 500),
		list:  listing.New("postit", nil),
		notes: map[string]storage.Note{},
	}
}

// Factory adapts New to panel.Factory.
func Factory(store Store, bus *command.Bus, now func() time.Time) panel.Factory {
	return func() panel.Panel { return New(store, bus, now) }
}

// Notes returns the notes in display order.
func (m *Model) Notes() []storage.Note {
	out := make([]storage.Note, 0, len(m.list.Items))
	for _, it := range m.list.Items {
		out = append(out, m.notes[it.ID])
	}
	return out
}

// Current returns the selected note.
func (m *Model) Current() (storage.Note, bool) {
	it, ok := m.list.Current()
	if !ok {
		return storage.Note{}, false
	}
	return m.notes[it.ID], true
}

// Editing returns the id of the note being edited, if any.
func (m *Model) Editing() string { return m.editing }

// Err is the last storage error, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.run("load", func(context.Context) (string, error) { return "", nil })
}

func (m *Model) run(label string, op func(ctx context.Context) (string, error)) tea.Cmd {
	m.seq++
	owner, seq := m.token, m.seq
	store := m.store
	return m.bus.Execute(command.Request{
		ID:    fmt.Sprintf("postit#%d.%d", owner, seq),
		Label: label,
		Run: func(ctx context.Context) tea.Msg {
			if store == nil {
				return loadedMsg{owner: owner, seq: seq, err: fmt.Errorf("note store unavailable")}
			}
			focus, err := op(ctx)
			if err != nil {
				return loadedMsg{owner: owner, seq: seq, err: err}
			}
			notes, err := store.List(ctx)
			if notes == nil && err == nil {
				notes = []storage.Note{}
			}
			return loadedMsg{owner: owner, seq: seq, notes: notes, focus: focus, err: err}
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
		events.Panel.Error("postit", msg.err)
		return nil
	}
	m.err = nil
	m.notes = make(map[string]storage.Note, len(msg.notes))
	rows := make([]listing.Item, len(msg.notes))
	for i, n := range msg.notes {
		m.notes[n.ID] = n
		rows[i] = listing.Item{ID: n.ID, Label: n.Body}
	}
	m.list.SetItems(rows)
	if msg.focus != "" {
		m.list.Select(msg.focus)
	}
	if _, ok := m.notes[m.editing]; !ok {
		m.stopEditing()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Prev) && m.editing == "":
		m.list.MoveCursorUp()
		return nil
	case key.Matches(msg, keys.Next) && m.editing == "":
		m.list.MoveCursorDown()
		return nil
	case key.Matches(msg, keys.Up) && m.editing == "":
		m.list.MoveCursorPageUp(max(m.perRow, 1))
		return nil
	case key.Matches(msg, keys.Down) && m.editing == "":
		m.list.MoveCursorPageDown(max(m.perRow, 1))
		return nil
	case key.Matches(msg, keys.PageUp) && m.editing == "":
		m.list.MoveCursorPageUp(m.perRow * m.pageRows)
		return nil
	case key.Matches(msg, keys.PageDown) && m.editing == "":
		m.list.MoveCursorPageDown(m.perRow * m.pageRows)
		return nil
	case key.Matches(msg, keys.Home) && m.editing == "" && m.input.Value() == "":
		m.list.MoveCursorHome()
		return nil
	case key.Matches(msg, keys.End) && m.editing == "" && m.input.Value() == "":
		m.list.MoveCursorEnd()
		return nil
	case key.Matches(msg, keys.Edit):
		if cur, ok := m.Current(); ok {
			m.editing = cur.ID
			m.input.SetValue(cur.Body)
			m.input.CursorEnd()
			m.input.Placeholder = editPrompt
		}
		return nil
	case key.Matches(msg, keys.Cancel):
		m.stopEditing()
		return nil
	case key.Matches(msg, keys.Color):
		return m.cycleColor()
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Delete) && m.input.Value() == "" && m.editing == "":
		return m.deleteCurrent()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) stopEditing() {
	if m.editing == "" {
		return
	}
	m.editing = ""
	m.input.SetValue("")
	m.input.Placeholder = createPrompt
}

func (m *Model) submit() tea.Cmd {
	body := strings.TrimSpace(m.input.Value())
	if body == "" {
		return nil
	}
	store := m.store
	if id := m.editing; id != "" {
		m.stopEditing()
		return m.run("update", func(ctx context.Context) (string, error) {
			n, err := store.UpdateBody(ctx, id, body)
			return n.ID, err
		})
	}
	m.input.SetValue("")
	return m.run("create", func(ctx context.Context) (string, error) {
		n, err := store.Create(ctx, body, Colors[0])
		return n.ID, err
	})
}

func (m *Model) cycleColor() tea.Cmd {
	cur, ok := m.Current()
	if !ok {
		return nil
	}
	next := NextColor(cur.Color)
	store := m.store
	return m.run("color", func(ctx context.Context) (string, error) {
		n, err := store.SetColor(ctx, cur.ID, next)
		return n.ID, err
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

// NextColor returns the colour after c in the rotation. Unknown colours
// restart the rotation.
func NextColor(c string) string {
	for i, name := range Colors {
		if name == c {
			return Colors[(i+1)%len(Colors)]
		}
	}
	return Colors[0]
}

func (m *Model) View(props panel.Props) string {
	width := props.Width
	if width <= 0 {
		width = 80
	}
	m.perRow = max(width/(cardWidth+3), 1)

	// input, blank, blank and help line, plus the error line when set
	overhead := 4
	lines := []string{m.input.View()}
	if m.err != nil {
		overhead++
		lines = append(lines, errorStyle.Render("Error: "+m.err.Error()))
	}
	lines = append(lines, "")

	m.pageRows = 0
	if props.Height > 0 {
		m.pageRows = max((props.Height-overhead)/cardHeight, 1)
	}

	help := "enter save  ←→ select  ctrl+e edit  ctrl+o colour  del remove"
	switch {
	case m.loading && len(m.notes) == 0:
		lines = append(lines, mutedStyle.Render("Loading…"))
	case len(m.list.Items) == 0:
		lines = append(lines, mutedStyle.Render("No notes yet"))
	default:
		visible, offset := m.list.VisibleGrid(m.perRow, m.pageRows)
		lines = append(lines, m.renderCards(visible, offset, props.DarkMode))
		if len(visible) < len(m.list.Items) {
			help = fmt.Sprintf("note %d of %d  ", m.list.Cursor+1, len(m.list.Items)) + help
		}
	}

	lines = append(lines, "")
	if m.editing != "" {
		help = "enter save  esc cancel edit"
	}
	lines = append(lines, mutedStyle.Render(help))
	return strings.Join(lines, "\n")
}

func (m *Model) renderCards(items []listing.Item, offset int, dark bool) string {
	now := m.now()
	var rows []string
	var row []string
	for i, it := range items {
		row = append(row, m.renderCard(m.notes[it.ID], offset+i == m.list.Cursor, dark, now))
		if len(row) == m.perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCard(n storage.Note, selected, dark bool, now time.Time) string {
	palette := lightCards
	if dark {
		palette = darkCards
	}
	colors, ok := palette[n.Color]
	if !ok {
		colors = palette[Colors[0]]
	}
	inner := cardWidth - 2
	body := strings.Split(wordwrap.String(n.Body, inner), "\n")
	if len(body) > cardLines {
		body = body[:cardLines]
		body[cardLines-1] = truncate.StringWithTail(body[cardLines-1], uint(inner-1), "") + "…"
	}
	for i, line := range body {
		body[i] = truncate.String(line, uint(inner))
	}
	stamp := humanize.RelTime(n.UpdatedAt, now, "ago", "from now")
	if n.ID == m.editing {
		stamp = "editing"
	}
	content := strings.Join(body, "\n") + "\n\n" + stamp

	border := lipgloss.HiddenBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Width(cardWidth).
		Height(cardLines + 2).
		Padding(0, 1).
		Background(colors.background).
		Foreground(colors.foreground).
		Border(border).
		BorderForeground(colors.background).
		MarginRight(1).
		Render(content)
}
