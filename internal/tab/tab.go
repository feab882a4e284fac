package tab

// ID identifies one of the shell's panels. The zero value is not a valid tab;
// use Parse to obtain an ID from external input.
type ID int

const (
	invalid ID = iota
	Calendar
	Todo
	Calculator
	PostIt
)

// Default is the tab shown when nothing usable has been persisted.
const Default = Calendar

var order = []ID{Calendar, Todo, Calculator, PostIt}

// All returns the tabs in navigation order.
func All() []ID {
	dup := make([]ID, len(order))
	copy(dup, order)
	return dup
}

// Parse maps a persisted or user-supplied identifier onto an ID. Only the
// exact identifier is accepted.
func Parse(raw string) (ID, bool) {
	switch raw {
	case "calendar":
		return Calendar, true
	case "todo":
		return Todo, true
	case "calculator":
		return Calculator, true
	case "postit":
		return PostIt, true
	}
	return invalid, false
}

// Valid reports whether id is one of the known tabs.
func (id ID) Valid() bool {
	switch id {
	case Calendar, Todo, Calculator, PostIt:
		return true
	}
	return false
}

// String returns the raw identifier used for persistence.
func (id ID) String() string {
	switch id {
	case Calendar:
		return "calendar"
	case Todo:
		return "todo"
	case Calculator:
		return "calculator"
	case PostIt:
		return "postit"
	}
	return ""
}

// Label is the human readable name shown in the navigation column.
func (id ID) Label() string {
	switch id {
	case Calendar:
		return "Calendar"
	case Todo:
		return "To-do"
	case Calculator:
		return "Calculator"
	case PostIt:
		return "Notes"
	}
	return ""
}

// Icon is a single-cell glyph drawn next to the label.
func (id ID) Icon() string {
	switch id {
	case Calendar:
		return "▦"
	case Todo:
		return "☑"
	case Calculator:
		return "±"
	case PostIt:
		return "✎"
	}
	return "?"
}

// Index returns the position of id in navigation order, or -1.
func (id ID) Index() int {
	for i, candidate := range order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Next returns the tab after id, wrapping at the end.
func (id ID) Next() ID {
	idx := id.Index()
	if idx < 0 {
		return Default
	}
	return order[(idx+1)%len(order)]
}

// Prev returns the tab before id, wrapping at the start.
func (id ID) Prev() ID {
	idx := id.Index()
	if idx < 0 {
		return Default
	}
	return order[(idx-1+len(order))%len(order)]
}

// At returns the tab at position i in navigation order.
func At(i int) (ID, bool) {
	if i < 0 || i >= len(order) {
		return invalid, false
	}
	return order[i], true
}
