package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/command"
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/panel/calculator"
	"github.com/atomicstack/tabdeck/internal/panel/calendar"
	"github.com/atomicstack/tabdeck/internal/panel/postit"
	"github.com/atomicstack/tabdeck/internal/panel/todo"
	"github.com/atomicstack/tabdeck/internal/prefs"
	"github.com/atomicstack/tabdeck/internal/shell"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/atomicstack/tabdeck/internal/tab"
	"github.com/atomicstack/tabdeck/internal/theme"
	"github.com/atomicstack/tabdeck/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	DBPath     string
	Width      int
	Height     int
	ShowFooter bool
	Mouse      bool
	Palette    []theme.Spec
}

// Stores are the backends handed to the shell and the panels. Todos and Notes
// are nil when the database could not be opened.
type Stores struct {
	db    *sql.DB
	Prefs prefs.Store
	Todos todo.Store
	Notes postit.Store
}

// OpenStores opens the database at path. When that fails the error is logged
// and preferences fall back to memory, so the shell still starts.
func OpenStores(path string) *Stores {
	db, err := storage.Open(path)
	if err != nil {
		logging.Error(err)
		events.App.StoreFallback(err)
		return &Stores{Prefs: prefs.NewMemoryStore()}
	}
	return &Stores{
		db:    db,
		Prefs: storage.NewKV(db),
		Todos: storage.NewTodoRepo(db),
		Notes: storage.NewNoteRepo(db),
	}
}

// Durable reports whether the stores are backed by the database.
func (s *Stores) Durable() bool { return s.db != nil }

// Close releases the database handle, if any.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Registry binds every tab to its panel factory.
func Registry(stores *Stores, bus *command.Bus) panel.Registry {
	reg := make(panel.Registry, len(tab.All()))
	for _, id := range tab.All() {
		switch id {
		case tab.Calendar:
			reg[id] = calendar.Factory(nil)
		case tab.Todo:
			reg[id] = todo.Factory(stores.Todos, bus)
		case tab.Calculator:
			reg[id] = calculator.Factory()
		case tab.PostIt:
			reg[id] = postit.Factory(stores.Notes, bus, nil)
		}
	}
	return reg
}

// Palette returns the configured palette, or the built-in one when none is
// configured.
func Palette(cfg Config) (theme.Palette, error) {
	if len(cfg.Palette) == 0 {
		return theme.DefaultPalette(), nil
	}
	parsed, err := theme.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return parsed, nil
}

// Build assembles the root model over stores. surface receives the dark flag.
func Build(ctx context.Context, cfg Config, stores *Stores, surface theme.Surface) (*ui.Model, error) {
	palette, err := Palette(cfg)
	if err != nil {
		return nil, err
	}
	s, err := shell.Load(prefs.NewAdapter(stores.Prefs), shell.Options{
		Registry: Registry(stores, command.New(ctx)),
		Palette:  palette,
		Surface:  surface,
	})
	if err != nil {
		return nil, fmt.Errorf("load shell: %w", err)
	}
	return ui.NewModel(s, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	}), nil
}

// Run executes the Bubble Tea program over stores and closes them on return.
func Run(cfg Config, stores *Stores) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer func() {
		if cerr := stores.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close database: %w", cerr)
		}
	}()

	model, err := Build(ctx, cfg, stores, theme.RootSurface{})
	if err != nil {
		return err
	}
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
