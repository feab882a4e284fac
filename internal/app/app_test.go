package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/panel/calculator"
	"github.com/atomicstack/tabdeck/internal/panel/calendar"
	"github.com/atomicstack/tabdeck/internal/panel/postit"
	"github.com/atomicstack/tabdeck/internal/panel/todo"
	"github.com/atomicstack/tabdeck/internal/prefs"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/atomicstack/tabdeck/internal/tab"
	"github.com/atomicstack/tabdeck/internal/testutil"
	"github.com/atomicstack/tabdeck/internal/theme"
	"github.com/atomicstack/tabdeck/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

type darkFlag struct {
	dark bool
}

func (d *darkFlag) SetDark(dark bool) { d.dark = dark }

func TestRegistryCoversEveryTab(t *testing.T) {
	reg := Registry(&Stores{Prefs: prefs.NewMemoryStore()}, nil)
	if err := reg.Validate(); err != nil {
		t.Fatalf("expected complete registry: %v", err)
	}
	checks := map[tab.ID]func(panel.Panel) bool{
		tab.Calendar:   func(p panel.Panel) bool { _, ok := p.(*calendar.Model); return ok },
		tab.Todo:       func(p panel.Panel) bool { _, ok := p.(*todo.Model); return ok },
		tab.Calculator: func(p panel.Panel) bool { _, ok := p.(*calculator.Model); return ok },
		tab.PostIt:     func(p panel.Panel) bool { _, ok := p.(*postit.Model); return ok },
	}
	for id, check := range checks {
		p, err := reg.Build(id)
		if err != nil {
			t.Fatalf("build %v: %v", id, err)
		}
		if !check(p) {
			t.Fatalf("tab %v built unexpected panel %T", id, p)
		}
	}
}

func TestBuildPersistsThroughDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tabdeck.db")
	stores := OpenStores(path)
	if !stores.Durable() {
		t.Fatalf("expected a database-backed store")
	}
	surface := &darkFlag{}
	model, err := Build(context.Background(), Config{Width: 80, Height: 24}, stores, surface)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h := ui.NewHarness(model)
	h.Send(tea.KeyMsg{Type: tea.KeyF3})
	h.Send(tea.KeyMsg{Type: tea.KeyF6})
	if !surface.dark {
		t.Fatalf("expected surface to turn dark")
	}
	if err := stores.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	snap := prefs.NewAdapter(storage.NewKV(db)).Load()
	if snap.ActiveTabOr(tab.Calendar) != tab.Calculator || !snap.DarkModeOr(false) {
		t.Fatalf("expected calculator/dark after reopen, got %+v", snap)
	}
}

func TestOpenStoresFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	stores := OpenStores(filepath.Join(blocker, "tabdeck.db"))
	if stores.Durable() {
		t.Fatalf("expected fallback stores")
	}
	if _, ok := stores.Prefs.(*prefs.MemoryStore); !ok {
		t.Fatalf("expected memory preferences, got %T", stores.Prefs)
	}

	model, err := Build(context.Background(), Config{Width: 80, Height: 24}, stores, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	h := ui.NewHarness(model)
	h.Send(tea.KeyMsg{Type: tea.KeyF2})
	if got := model.Shell().Router.Active(); got != tab.Todo {
		t.Fatalf("expected todo to be selectable without a database, got %v", got)
	}
	if view := testutil.StripANSI(h.View()); !strings.Contains(view, "todo store unavailable") {
		t.Fatalf("expected the panel to report the missing store:\n%s", view)
	}
	if value, ok, _ := stores.Prefs.Get(prefs.KeyActiveTab); !ok || value != "todo" {
		t.Fatalf("expected the memory store to record the tab, got %q", value)
	}
}

func TestBuildRejectsBadPalette(t *testing.T) {
	stores := &Stores{Prefs: prefs.NewMemoryStore()}
	_, err := Build(context.Background(), Config{Palette: []theme.Spec{{Primary: "nope", Secondary: "blue-500", Text: "white"}}}, stores, nil)
	if err == nil || !strings.Contains(err.Error(), "palette") {
		t.Fatalf("expected palette error, got %v", err)
	}
}

func TestBuildUsesConfiguredPalette(t *testing.T) {
	stores := &Stores{Prefs: prefs.NewMemoryStore()}
	specs := []theme.Spec{
		{Primary: "teal-600", Secondary: "teal-500", Text: "white"},
		{Primary: "amber-600", Secondary: "amber-500", Text: "black"},
	}
	model, err := Build(context.Background(), Config{Palette: specs}, stores, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctrl := model.Shell().Theme
	if len(ctrl.Palette()) != 2 || ctrl.Presentation().Chrome.Name != "teal-500" {
		t.Fatalf("unexpected palette state %+v", ctrl.Presentation())
	}
}
