package listing

import "testing"

func newTestList(labels ...string) *List {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{ID: label, Label: label}
	}
	return New("test", items)
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorStepsClamp(t *testing.T) {
	l := newTestList("a", "b")
	if l.MoveCursorUp() {
		t.Fatalf("expected no movement above first row")
	}
	if !l.MoveCursorDown() || l.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", l.Cursor)
	}
	if l.MoveCursorDown() {
		t.Fatalf("expected no movement past last row")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) || l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(10) || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}

	visible, offset := l.Visible(3)
	if offset != 1 || len(visible) != 3 || visible[0].ID != "b" {
		t.Fatalf("unexpected window %v at %d", visible, offset)
	}
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	l := newTestList("buy milk", "walk dog", "call mum")
	l.Cursor = 2
	l.SetFilter("dog")

	if len(l.Items) != 1 || l.Items[0].ID != "walk dog" {
		t.Fatalf("expected only 'walk dog', got %#v", l.Items)
	}
	if l.Cursor != 0 || !l.Filtering() {
		t.Fatalf("expected filtered cursor 0, got %d", l.Cursor)
	}

	l.ClearFilter()
	if l.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", l.Cursor)
	}
	if l.LastCursor != -1 || l.Filtering() {
		t.Fatalf("expected filter state reset")
	}
}

func TestSetItemsKeepsCursorOnSameItem(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Select("b")
	l.SetItems([]Item{{ID: "z", Label: "z"}, {ID: "a", Label: "a"}, {ID: "b", Label: "b"}})
	if cur, ok := l.Current(); !ok || cur.ID != "b" {
		t.Fatalf("expected cursor to stay on b, got %#v", cur)
	}
	l.SetItems(nil)
	if _, ok := l.Current(); ok {
		t.Fatalf("expected no current item for empty list")
	}
}

func TestFilterItemsFallsBackToContains(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	cases := []struct {
		query string
		want  string
	}{
		{"alp", "Alpha"},
		{"ta", "Beta"},
	}
	for _, tc := range cases {
		got := FilterItems(items, tc.query)
		if len(got) != 1 || got[0].Label != tc.want {
			t.Fatalf("filter %q: got %#v", tc.query, got)
		}
	}
	if got := FilterItems(items, "   "); len(got) != 2 {
		t.Fatalf("expected blank query to keep everything")
	}
}

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	items := []Item{{Label: "groceries"}, {Label: "gr"}, {Label: "green paint"}}
	if idx := BestMatchIndex(items, "GR"); idx != 1 {
		t.Fatalf("expected exact match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "gre"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}

func TestVisibleGridKeepsCursorOnRowBoundaries(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e", "f", "g")
	cases := []struct {
		cursor     int
		wantOffset int
		wantLen    int
	}{
		{0, 0, 4},
		{3, 0, 4},
		{4, 2, 4},
		{6, 4, 3},
		{5, 4, 3},
		{2, 2, 4},
		{0, 0, 4},
	}
	for _, tc := range cases {
		l.Cursor = tc.cursor
		items, offset := l.VisibleGrid(2, 2)
		if offset != tc.wantOffset || len(items) != tc.wantLen {
			t.Fatalf("cursor %d: expected offset %d len %d, got %d len %d", tc.cursor, tc.wantOffset, tc.wantLen, offset, len(items))
		}
		if tc.cursor < offset || tc.cursor >= offset+len(items) {
			t.Fatalf("cursor %d outside window at %d", tc.cursor, offset)
		}
	}

	all, offset := l.VisibleGrid(3, 0)
	if offset != 0 || len(all) != 7 {
		t.Fatalf("expected unbounded grid to show everything, got %d from %d", len(all), offset)
	}
}
