package listing

// MoveCursorUp moves the cursor one row up.
func (l *List) MoveCursorUp() bool {
	return l.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor one row down.
func (l *List) MoveCursorDown() bool {
	return l.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}

// Visible returns the window of items starting at the viewport offset along
// with that offset.
func (l *List) Visible(maxVisible int) ([]Item, int) {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || maxVisible >= len(l.Items) {
		return l.Items, 0
	}
	end := l.ViewportOffset + maxVisible
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.ViewportOffset:end], l.ViewportOffset
}

// VisibleGrid is Visible for items laid out perRow to a row with room for
// rows rows. The window always starts on a row boundary and holds the cursor.
// rows <= 0 shows everything.
func (l *List) VisibleGrid(perRow, rows int) ([]Item, int) {
	if perRow < 1 {
		perRow = 1
	}
	// clamps the cursor; grid windows keep their own offset
	l.EnsureCursorVisible(0)
	if rows <= 0 || len(l.Items) <= perRow*rows {
		l.gridOffset = 0
		return l.Items, 0
	}
	totalRows := (len(l.Items) + perRow - 1) / perRow
	first := l.gridOffset / perRow
	cursorRow := l.Cursor / perRow
	if cursorRow < first {
		first = cursorRow
	}
	if cursorRow >= first+rows {
		first = cursorRow - rows + 1
	}
	if first > totalRows-rows {
		first = totalRows - rows
	}
	if first < 0 {
		first = 0
	}
	l.gridOffset = first * perRow
	end := l.gridOffset + perRow*rows
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.gridOffset:end], l.gridOffset
}
