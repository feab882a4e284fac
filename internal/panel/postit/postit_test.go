package postit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/atomicstack/tabdeck/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	notes []storage.Note
	next  int
	err   error
}

func (f *fakeStore) List(context.Context) ([]storage.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	dup := make([]storage.Note, len(f.notes))
	copy(dup, f.notes)
	return dup, nil
}

func (f *fakeStore) Create(_ context.Context, body, color string) (storage.Note, error) {
	f.next++
	n := storage.Note{ID: fmt.Sprintf("n%d", f.next), Body: body, Color: color, CreatedAt: base, UpdatedAt: base}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeStore) find(id string) int {
	for i := range f.notes {
		if f.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeStore) UpdateBody(_ context.Context, id, body string) (storage.Note, error) {
	i := f.find(id)
	if i < 0 {
		return storage.Note{}, storage.ErrNotFound
	}
	f.notes[i].Body = body
	return f.notes[i], nil
}

func (f *fakeStore) SetColor(_ context.Context, id, color string) (storage.Note, error) {
	i := f.find(id)
	if i < 0 {
		return storage.Note{}, storage.ErrNotFound
	}
	f.notes[i].Color = color
	return f.notes[i], nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	i := f.find(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	f.notes = append(f.notes[:i], f.notes[i+1:]...)
	return nil
}

func run(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = m.Update(msg)
	}
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		run(m, m.Update(msg))
	}
}

func typed(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	del   = tea.KeyMsg{Type: tea.KeyDelete}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	edit  = tea.KeyMsg{Type: tea.KeyCtrlE}
	color = tea.KeyMsg{Type: tea.KeyCtrlO}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	pgUp  = tea.KeyMsg{Type: tea.KeyPgUp}
	home  = tea.KeyMsg{Type: tea.KeyHome}
	end   = tea.KeyMsg{Type: tea.KeyEnd}
)

func clock() time.Time { return base.Add(3 * time.Minute) }

func mounted(store Store) *Model {
	m := New(store, nil, clock)
	run(m, m.Init())
	return m
}

// board returns a store holding n notes with bodies "note 1" to "note n".
func board(n int) *fakeStore {
	store := &fakeStore{next: n}
	for i := 1; i <= n; i++ {
		store.notes = append(store.notes, storage.Note{
			ID: fmt.Sprintf("n%d", i), Body: fmt.Sprintf("note %d", i), Color: "yellow", CreatedAt: base, UpdatedAt: base,
		})
	}
	return store
}

func lineCount(view string) int {
	return strings.Count(view, "\n") + 1
}

func TestCreateEditDelete(t *testing.T) {
	store := &fakeStore{}
	m := mounted(store)

	send(m, typed("call the plumber"), enter, typed("buy stamps"), enter)
	notes := m.Notes()
	if len(notes) != 2 || notes[1].Body != "buy stamps" || notes[1].Color != "yellow" {
		t.Fatalf("unexpected notes %#v", notes)
	}

	send(m, left, edit)
	if m.Editing() != "n1" {
		t.Fatalf("expected first note in edit mode, got %q", m.Editing())
	}
	send(m, typed(" today"), enter)
	if store.notes[0].Body != "call the plumber today" {
		t.Fatalf("expected body updated, got %q", store.notes[0].Body)
	}
	if m.Editing() != "" || len(store.notes) != 2 {
		t.Fatalf("expected edit to finish without creating a note")
	}

	send(m, del)
	if notes := m.Notes(); len(notes) != 1 || notes[0].ID != "n2" {
		t.Fatalf("expected first note deleted, got %#v", notes)
	}
}

func TestEscapeCancelsEdit(t *testing.T) {
	store := &fakeStore{}
	m := mounted(store)
	send(m, typed("draft"), enter, edit, typed("!!"), esc)
	if m.Editing() != "" {
		t.Fatalf("expected edit cancelled")
	}
	if store.notes[0].Body != "draft" {
		t.Fatalf("expected body unchanged, got %q", store.notes[0].Body)
	}
}

func TestColorCycle(t *testing.T) {
	store := &fakeStore{}
	m := mounted(store)
	send(m, typed("note"), enter)
	want := []string{"pink", "blue", "green", "yellow"}
	for _, c := range want {
		send(m, color)
		if cur, _ := m.Current(); cur.Color != c {
			t.Fatalf("expected %s, got %s", c, cur.Color)
		}
	}
	if NextColor("mauve") != "yellow" {
		t.Fatalf("expected unknown colour to restart rotation")
	}
}

func TestViewShowsCards(t *testing.T) {
	store := &fakeStore{}
	m := mounted(store)
	if view := m.View(panel.Props{}); !strings.Contains(view, "No notes yet") {
		t.Fatalf("expected empty state, got:\n%s", view)
	}
	send(m, typed("water the plants"), enter)
	for _, dark := range []bool{false, true} {
		view := m.View(panel.Props{DarkMode: dark, Width: 80, Height: 20})
		for _, want := range []string{"water the plants", "3 minutes ago", "ctrl+o colour"} {
			if !strings.Contains(view, want) {
				t.Fatalf("dark=%v: expected %q in view:\n%s", dark, want, view)
			}
		}
	}
}

func TestErrorsStayInPanel(t *testing.T) {
	m := mounted(&fakeStore{err: errors.New("database is locked")})
	if view := m.View(panel.Props{Width: 80}); !strings.Contains(view, "Error: database is locked") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
}

func TestWithSQLiteStore(t *testing.T) {
	db, _ := testutil.NewDB(t)
	m := mounted(storage.NewNoteRepo(db))
	send(m, typed("remember the milk"), enter, color)
	notes := m.Notes()
	if len(notes) != 1 || notes[0].Color != "pink" {
		t.Fatalf("unexpected notes %#v", notes)
	}
	again := mounted(storage.NewNoteRepo(db))
	if notes := again.Notes(); len(notes) != 1 || notes[0].Body != "remember the milk" {
		t.Fatalf("expected note to survive remount, got %#v", notes)
	}
}

func TestBoardPagesAroundSelection(t *testing.T) {
	store := board(8)
	m := mounted(store)
	// two cards to a row and two rows to a page
	props := panel.Props{Width: 80, Height: 20}
	m.View(props)

	send(m, end)
	view := testutil.StripANSI(m.View(props))
	if cur, _ := m.Current(); cur.ID != "n8" {
		t.Fatalf("expected the last note selected, got %q", cur.ID)
	}
	for _, want := range []string{"note 5", "note 8", "note 8 of 8", "ctrl+e edit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "note 1") || strings.Contains(view, "note 4") {
		t.Fatalf("expected the first page hidden:\n%s", view)
	}
	if n := lineCount(view); n > props.Height {
		t.Fatalf("expected at most %d lines, got %d", props.Height, n)
	}

	send(m, color)
	if store.notes[7].Color != "pink" {
		t.Fatalf("expected the visible selected note to change colour, got %#v", store.notes[7])
	}

	cases := []struct {
		key  tea.Msg
		want string
	}{
		{up, "n6"},
		{down, "n8"},
		{pgUp, "n4"},
		{home, "n1"},
	}
	for _, tc := range cases {
		send(m, tc.key)
		if cur, _ := m.Current(); cur.ID != tc.want {
			t.Fatalf("after %v expected %s, got %s", tc.key, tc.want, cur.ID)
		}
		m.View(props)
	}
	if view := testutil.StripANSI(m.View(props)); !strings.Contains(view, "note 1") || strings.Contains(view, "note 8") {
		t.Fatalf("expected the first page after home:\n%s", view)
	}
}

func TestErrorLineSurvivesFullBoard(t *testing.T) {
	store := board(8)
	m := mounted(store)
	store.err = errors.New("database is locked")
	send(m, color)

	props := panel.Props{Width: 80, Height: 20}
	view := testutil.StripANSI(m.View(props))
	errAt := strings.Index(view, "Error: database is locked")
	if errAt < 0 || errAt > strings.Index(view, "note 1") {
		t.Fatalf("expected the error above the cards:\n%s", view)
	}
	if !strings.Contains(view, "del remove") {
		t.Fatalf("expected the help line:\n%s", view)
	}
	if n := lineCount(view); n > props.Height {
		t.Fatalf("expected at most %d lines, got %d", props.Height, n)
	}
}

func TestOlderReloadDoesNotOverwriteNewer(t *testing.T) {
	store := &fakeStore{}
	m := mounted(store)

	send(m, typed("first"))
	addFirst := m.Update(enter)
	send(m, typed("second"))
	addSecond := m.Update(enter)

	older := addFirst()
	newer := addSecond()
	m.Update(newer)
	m.Update(older)

	if notes := m.Notes(); len(notes) != 2 || notes[1].Body != "second" {
		t.Fatalf("expected the newer snapshot to stand, got %#v", notes)
	}
}
