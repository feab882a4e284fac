package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/tabdeck/internal/panel"
	"github.com/atomicstack/tabdeck/internal/storage"
	"github.com/atomicstack/tabdeck/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeStore struct {
	items []storage.Todo
	next  int
	err   error
}

func (f *fakeStore) List(context.Context) ([]storage.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	dup := make([]storage.Todo, len(f.items))
	copy(dup, f.items)
	return dup, nil
}

func (f *fakeStore) Add(_ context.Context, text string) (storage.Todo, error) {
	if f.err != nil {
		return storage.Todo{}, f.err
	}
	f.next++
	t := storage.Todo{ID: fmt.Sprintf("t%d", f.next), Text: text, Position: f.next}
	f.items = append(f.items, t)
	return t, nil
}

func (f *fakeStore) Toggle(_ context.Context, id string) (storage.Todo, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Done = !f.items[i].Done
			return f.items[i], nil
		}
	}
	return storage.Todo{}, storage.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
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
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	del    = tea.KeyMsg{Type: tea.KeyDelete}
	down   = tea.KeyMsg{Type: tea.KeyDown}
	esc    = tea.KeyMsg{Type: tea.KeyEsc}
	filter = tea.KeyMsg{Type: tea.KeyCtrlF}
	pgUp   = tea.KeyMsg{Type: tea.KeyPgUp}
	pgDown = tea.KeyMsg{Type: tea.KeyPgDown}
	home   = tea.KeyMsg{Type: tea.KeyHome}
	end    = tea.KeyMsg{Type: tea.KeyEnd}
)

func mounted(t *testing.T, store Store) *Model {
	t.Helper()
	m := New(store, nil)
	run(m, m.Init())
	return m
}

func TestAddToggleDelete(t *testing.T) {
	store := &fakeStore{}
	m := mounted(t, store)

	send(m, typed("buy milk"), enter, typed("walk dog"), enter)
	items := m.Items()
	if len(items) != 2 || items[0].Text != "buy milk" || items[1].Text != "walk dog" {
		t.Fatalf("unexpected items %#v", items)
	}
	if cur, _ := m.Current(); cur.Text != "walk dog" {
		t.Fatalf("expected new item focused, got %#v", cur)
	}
	if m.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", m.Remaining())
	}

	send(m, enter)
	if cur, _ := m.Current(); !cur.Done {
		t.Fatalf("expected enter on empty input to toggle %#v", cur)
	}
	if m.Remaining() != 1 {
		t.Fatalf("expected 1 remaining, got %d", m.Remaining())
	}

	send(m, del)
	if items := m.Items(); len(items) != 1 || items[0].Text != "buy milk" {
		t.Fatalf("expected walk dog deleted, got %#v", items)
	}
}

func TestDeleteWithTextEditsInput(t *testing.T) {
	store := &fakeStore{items: []storage.Todo{{ID: "a", Text: "keep"}}}
	m := mounted(t, store)
	send(m, typed("x"), tea.KeyMsg{Type: tea.KeyHome}, del)
	if len(m.Items()) != 1 {
		t.Fatalf("expected item kept while input has text")
	}
}

func TestFilterMode(t *testing.T) {
	store := &fakeStore{items: []storage.Todo{
		{ID: "a", Text: "buy milk"},
		{ID: "b", Text: "walk dog"},
		{ID: "c", Text: "call mum"},
	}}
	m := mounted(t, store)

	send(m, filter, typed("dog"))
	if !m.Filtering() {
		t.Fatalf("expected filter mode")
	}
	if items := m.Items(); len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("expected only walk dog, got %#v", items)
	}

	send(m, enter)
	if !store.items[1].Done {
		t.Fatalf("expected enter in filter mode to toggle the match")
	}
	if len(store.items) != 3 {
		t.Fatalf("expected no item added from filter text")
	}

	send(m, esc)
	if m.Filtering() || len(m.Items()) != 3 {
		t.Fatalf("expected filter cleared, got %d items", len(m.Items()))
	}
}

func TestStaleRepliesAreIgnored(t *testing.T) {
	store := &fakeStore{items: []storage.Todo{{ID: "a", Text: "old"}}}
	first := New(store, nil)
	cmd := first.Init()
	second := mounted(t, store)

	store.items = nil
	if next := second.Update(cmd()); next != nil {
		t.Fatalf("expected no follow-up command")
	}
	if len(second.Items()) != 1 {
		t.Fatalf("expected reply addressed to another instance to be dropped")
	}
}

func TestStoreErrorShownInView(t *testing.T) {
	store := &fakeStore{err: errors.New("disk I/O error")}
	m := mounted(t, store)
	if m.Err() == nil {
		t.Fatalf("expected error recorded")
	}
	view := m.View(panel.Props{Width: 60, Height: 20})
	if !strings.Contains(view, "Error: disk I/O error") {
		t.Fatalf("expected error in view:\n%s", view)
	}
}

func TestViewListsItems(t *testing.T) {
	store := &fakeStore{items: []storage.Todo{
		{ID: "a", Text: "buy milk", Done: true},
		{ID: "b", Text: "walk dog"},
	}}
	m := mounted(t, store)
	send(m, down)
	view := m.View(panel.Props{Width: 60, Height: 20})
	for _, want := range []string{"[x] buy milk", "> [ ] walk dog", "1 task left"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	empty := mounted(t, &fakeStore{})
	if view := empty.View(panel.Props{}); !strings.Contains(view, "Nothing to do") || !strings.Contains(view, "0 tasks left") {
		t.Fatalf("unexpected empty view:\n%s", view)
	}
}

func TestWithSQLiteStore(t *testing.T) {
	db, _ := testutil.NewDB(t)
	m := mounted(t, storage.NewTodoRepo(db))
	send(m, typed("water plants"), enter, enter)
	items := m.Items()
	if len(items) != 1 || !items[0].Done {
		t.Fatalf("expected one done item, got %#v", items)
	}

	again := mounted(t, storage.NewTodoRepo(db))
	if items := again.Items(); len(items) != 1 || items[0].Text != "water plants" {
		t.Fatalf("expected item to survive remount, got %#v", items)
	}
}

func TestPagingKeysFollowViewHeight(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 10; i++ {
		store.items = append(store.items, storage.Todo{ID: fmt.Sprintf("t%d", i), Text: fmt.Sprintf("task %d", i)})
	}
	m := mounted(t, store)
	// Height 9 leaves four list rows.
	m.View(panel.Props{Width: 60, Height: 9})

	cases := []struct {
		key  tea.Msg
		want int
	}{
		{pgDown, 4},
		{pgDown, 8},
		{end, 9},
		{pgUp, 5},
		{home, 0},
		{end, 9},
	}
	for _, tc := range cases {
		send(m, tc.key)
		if m.list.Cursor != tc.want {
			t.Fatalf("after %v expected cursor %d, got %d", tc.key, tc.want, m.list.Cursor)
		}
	}
	view := m.View(panel.Props{Width: 60, Height: 9})
	if !strings.Contains(view, "> [ ] task 9") || strings.Contains(view, "task 0") {
		t.Fatalf("expected the last page in view:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines > 9 {
		t.Fatalf("expected at most 9 lines, got %d:\n%s", lines, view)
	}

	send(m, typed("x"), home)
	if m.list.Cursor != 9 {
		t.Fatalf("expected home to edit the input while it has text, cursor %d", m.list.Cursor)
	}
}

func TestOlderReloadDoesNotOverwriteNewer(t *testing.T) {
	store := &fakeStore{}
	m := mounted(t, store)

	send(m, typed("first"))
	addFirst := m.Update(enter)
	send(m, typed("second"))
	addSecond := m.Update(enter)

	older := addFirst()
	newer := addSecond()
	m.Update(newer)
	m.Update(older)

	items := m.Items()
	if len(items) != 2 || items[1].Text != "second" {
		t.Fatalf("expected the newer snapshot to stand, got %#v", items)
	}
}
