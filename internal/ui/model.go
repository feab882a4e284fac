package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/shell"
	"github.com/atomicstack/tabdeck/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTitle  = "tabdeck"
	defaultWidth  = 80
	defaultHeight = 24
	infoDuration  = 3 * time.Second
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the root model.
type Options struct {
	Title      string
	Width      int
	Height     int
	ShowFooter bool
}

// Model implements the Bubble Tea model for the tabbed shell.
type Model struct {
	shell       *shell.Shell
	styles      *theme.Styles
	keys        keyMap
	title       string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	infoMsg     string
	infoExpire  time.Time
	hover       string
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps s. Width or height greater than zero pins that dimension and
// ignores resize events for it.
func NewModel(s *shell.Shell, opts Options) *Model {
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}
	m := &Model{
		shell:      s,
		styles:     s.Theme.Styles(),
		keys:       newKeyMap(),
		title:      title,
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Shell exposes the frame state for callers and tests.
func (m *Model) Shell() *shell.Shell { return m.shell }

// Init mounts the panel for the initial tab.
func (m *Model) Init() tea.Cmd {
	if m.shell.Router.Mounted() != nil {
		return nil
	}
	return m.shell.Router.Mount()
}

// Update responds to Bubble Tea messages. Shell bindings and mouse input are
// handled here; everything else goes to the mounted panel.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, m.forward(msg)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	mounted := m.shell.Router.Mounted()
	if mounted == nil || msg == nil {
		return nil
	}
	return mounted.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		events.Key.Global(keyMsg.String())
		m.quitting = true
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Next):
		events.Key.Global(keyMsg.String())
		return m.shell.Router.Next()
	case key.Matches(keyMsg, m.keys.Prev):
		events.Key.Global(keyMsg.String())
		return m.shell.Router.Prev()
	case key.Matches(keyMsg, m.keys.Palette):
		events.Key.Global(keyMsg.String())
		m.cycleTheme()
		return nil
	case key.Matches(keyMsg, m.keys.Dark):
		events.Key.Global(keyMsg.String())
		m.toggleDarkMode()
		return nil
	}
	if id, ok := m.keys.jumpTarget(keyMsg); ok {
		events.Key.Global(keyMsg.String())
		return m.shell.Router.Select(id)
	}
	return m.forward(keyMsg)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) cycleTheme() {
	idx := m.shell.Theme.CycleTheme()
	m.styles = m.shell.Theme.Styles()
	m.setInfo(fmt.Sprintf("Theme %d/%d: %s", idx+1, len(m.shell.Theme.Palette()), m.styles.Presentation.Chrome.Name))
}

func (m *Model) toggleDarkMode() {
	dark := m.shell.Theme.ToggleDarkMode()
	m.styles = m.shell.Theme.Styles()
	if dark {
		m.setInfo("Dark mode on")
	} else {
		m.setInfo("Light mode on")
	}
}

func (m *Model) props(width, height int) panel.Props {
	return panel.Props{DarkMode: m.shell.Theme.DarkMode(), Width: width, Height: height}
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoDuration)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
