// Package listing holds cursor, filter and viewport state for the list-shaped
// panels.
package listing

import "github.com/atomicstack/tabdeck/internal/logging/events"

// Item is one row of a list. Label is what the filter matches against.
type Item struct {
	ID    string
	Label string
}

// List tracks the visible rows of a panel together with its cursor, filter
// and viewport offset.
type List struct {
	Name           string
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int

	gridOffset int
}

// New constructs a List over the provided items.
func New(name string, items []Item) *List {
	l := &List{
		Name:       name,
		LastCursor: -1,
	}
	l.SetItems(items)
	return l
}

// IndexOf returns the visible index for a given item identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if len(l.Items) == 0 || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SetItems replaces the list contents, keeping the cursor on the same item
// when it is still present.
func (l *List) SetItems(items []Item) {
	current, hadCurrent := l.Current()
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if hadCurrent {
		if idx := l.IndexOf(current.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Select moves the cursor onto the item with the given id.
func (l *List) Select(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	events.List.Cursor(l.Name, idx)
	return true
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
