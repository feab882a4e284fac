// Package calculator is the expression calculator panel.
package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ErrorText is displayed in place of a result when evaluation fails.
const ErrorText = "Error"

// HistorySize is the number of past calculations kept.
const HistorySize = 5

const allowed = "0123456789.+-*/%()"

type keyMap struct {
	Evaluate  key.Binding
	Backspace key.Binding
	Clear     key.Binding
}

var keys = keyMap{
	Evaluate:  key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "evaluate")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	Clear:     key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("c", "clear")),
}

var displayStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}).
	Align(lipgloss.Right).
	Padding(0, 1)

var (
	resultStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"})
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"})
)

// Entry is one evaluated expression.
type Entry struct {
	Expr   string
	Result string
}

// Model is the calculator panel.
type Model struct {
	input   string
	result  string
	failed  bool
	history []Entry
}

// New returns an empty calculator.
func New() *Model { return &Model{} }

// Factory adapts New to panel.Factory.
func Factory() panel.Factory {
	return func() panel.Panel { return New() }
}

// Input is the expression being typed.
func (m *Model) Input() string { return m.input }

// Result is the last displayed result, ErrorText after a failure.
func (m *Model) Result() string { return m.result }

// History returns past calculations, newest first.
func (m *Model) History() []Entry {
	dup := make([]Entry, len(m.history))
	copy(dup, m.history)
	return dup
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, keys.Evaluate):
		m.Evaluate()
	case key.Matches(keyMsg, keys.Backspace):
		m.clearError()
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case key.Matches(keyMsg, keys.Clear):
		m.input = ""
		m.result = ""
		m.failed = false
	case keyMsg.Type == tea.KeyRunes:
		m.Type(string(keyMsg.Runes))
	}
	return nil
}

// Type appends the accepted characters of s to the expression.
func (m *Model) Type(s string) {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(allowed, r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return
	}
	m.clearError()
	m.input += b.String()
}

// Evaluate computes the current expression. On success the result replaces
// the expression so it can be chained.
func (m *Model) Evaluate() {
	expr := strings.TrimSpace(m.input)
	if expr == "" {
		return
	}
	v, err := Eval(expr)
	if err != nil {
		m.failed = true
		m.result = ErrorText
		m.push(Entry{Expr: expr, Result: ErrorText})
		return
	}
	v = round(v)
	m.failed = false
	m.result = FormatNumber(v)
	m.input = strconv.FormatFloat(v, 'f', -1, 64)
	m.push(Entry{Expr: expr, Result: m.result})
}

func (m *Model) clearError() {
	if !m.failed {
		return
	}
	m.failed = false
	m.result = ""
	m.input = ""
}

func (m *Model) push(e Entry) {
	m.history = append([]Entry{e}, m.history...)
	if len(m.history) > HistorySize {
		m.history = m.history[:HistorySize]
	}
}

// FormatNumber renders v with thousands separators.
func FormatNumber(v float64) string {
	return humanize.Commaf(v)
}

func round(v float64) float64 {
	const scale = 1e10
	r := math.Round(v*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	if r == 0 {
		return 0
	}
	return r
}

func (m *Model) View(props panel.Props) string {
	width := props.Width - 4
	if width < 16 {
		width = 16
	}
	expr := m.input
	if expr == "" {
		expr = "0"
	}
	result := resultStyle.Render(m.result)
	if m.failed {
		result = errorStyle.Render(m.result)
	}
	display := displayStyle.Width(width).Render(expr + "\n" + result)

	lines := []string{display, ""}
	if len(m.history) > 0 {
		lines = append(lines, historyStyle.Render("History"))
		for _, e := range m.history {
			lines = append(lines, historyStyle.Render(e.Expr+" = "+e.Result))
		}
		lines = append(lines, "")
	}
	lines = append(lines, historyStyle.Render("0-9 . + - * / % ( )  enter =  ⌫ delete  c clear"))
	return strings.Join(lines, "\n")
}
