// Package calendar is the month-grid panel.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tabdeck/internal/format/table"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "day")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "week")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "week")),
	PrevMonth: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "month")),
	NextMonth: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "month")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	weekdayStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"})
	weekendStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"})
	todayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"})
)

// Model is the calendar panel. Its state lives only as long as the mount.
type Model struct {
	now      func() time.Time
	selected time.Time
}

// New returns a calendar focused on today. A nil clock uses time.Now.
func New(now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	m := &Model{now: now}
	m.selected = dateOf(now())
	return m
}

// Factory adapts New to panel.Factory.
func Factory(now func() time.Time) panel.Factory {
	return func() panel.Panel { return New(now) }
}

// Selected returns the focused date.
func (m *Model) Selected() time.Time { return m.selected }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, keys.Left):
		m.selected = m.selected.AddDate(0, 0, -1)
	case key.Matches(keyMsg, keys.Right):
		m.selected = m.selected.AddDate(0, 0, 1)
	case key.Matches(keyMsg, keys.Up):
		m.selected = m.selected.AddDate(0, 0, -7)
	case key.Matches(keyMsg, keys.Down):
		m.selected = m.selected.AddDate(0, 0, 7)
	case key.Matches(keyMsg, keys.PrevMonth):
		m.selected = addMonths(m.selected, -1)
	case key.Matches(keyMsg, keys.NextMonth):
		m.selected = addMonths(m.selected, 1)
	case key.Matches(keyMsg, keys.Today):
		m.selected = dateOf(m.now())
	}
	return nil
}

func (m *Model) View(props panel.Props) string {
	today := dateOf(m.now())
	first := time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, m.selected.Location())

	rows := [][]string{make([]string, len(weekdays))}
	for i, name := range weekdays {
		style := weekdayStyle
		if i == 0 || i == 6 {
			style = weekendStyle
		}
		rows[0][i] = style.Render(name)
	}
	row := make([]string, 7)
	col := int(first.Weekday())
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := strconv.Itoa(d.Day())
		switch {
		case d.Equal(m.selected):
			cell = selectedStyle.Render(cell)
		case d.Equal(today):
			cell = todayStyle.Render(cell)
		}
		row[col] = cell
		col++
		if col == 7 {
			rows = append(rows, row)
			row = make([]string, 7)
			col = 0
		}
	}
	if col > 0 {
		rows = append(rows, row)
	}

	align := make([]table.Alignment, 7)
	for i := range align {
		align[i] = table.AlignRight
	}
	grid := table.FormatGap(rows, align, " ")

	lines := make([]string, 0, len(grid)+4)
	lines = append(lines, titleStyle.Render(first.Format("January 2006")), "")
	lines = append(lines, grid...)
	lines = append(lines, "", m.describeSelection(today))
	if props.Height <= 0 || len(lines)+1 < props.Height {
		lines = append(lines, hintStyle.Render("←→ day  ↑↓ week  pgup/pgdn month  t today"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) describeSelection(today time.Time) string {
	label := m.selected.Format("Monday, 2 January 2006")
	if m.selected.Equal(today) {
		return label + " (today)"
	}
	return fmt.Sprintf("%s (%s)", label, humanize.RelTime(m.selected, today, "ago", "from now"))
}

func dateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// addMonths moves by n months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
