package views

// Window keeps a cursor over a list and the slice of rows that fits on
// screen. The visible range scrolls just enough to keep the cursor in view.
type Window struct {
	size   int
	offset int
	cursor int
	total  int
}

// NewWindow creates a window showing size rows
func NewWindow(size int) *Window {
	if size <= 0 {
		size = 10
	}
	return &Window{size: size}
}

// SetSize changes the number of visible rows
func (w *Window) SetSize(size int) {
	if size <= 0 {
		size = 1
	}
	w.size = size
	w.scroll()
}

// SetTotal sets the list length, clamping the cursor
func (w *Window) SetTotal(total int) {
	w.total = total
	w.SetCursor(w.cursor)
}

// Cursor returns the absolute cursor index
func (w *Window) Cursor() int {
	return w.cursor
}

// SetCursor moves the cursor to pos, clamped to the list
func (w *Window) SetCursor(pos int) {
	if pos >= w.total {
		pos = w.total - 1
	}
	if pos < 0 {
		pos = 0
	}
	w.cursor = pos
	w.scroll()
}

// Up moves the cursor up one row
func (w *Window) Up() bool {
	if w.cursor == 0 {
		return false
	}
	w.SetCursor(w.cursor - 1)
	return true
}

// Down moves the cursor down one row
func (w *Window) Down() bool {
	if w.cursor >= w.total-1 {
		return false
	}
	w.SetCursor(w.cursor + 1)
	return true
}

// PageDown moves the cursor one screen down
func (w *Window) PageDown() {
	w.SetCursor(w.cursor + w.size)
}

// PageUp moves the cursor one screen up
func (w *Window) PageUp() {
	w.SetCursor(w.cursor - w.size)
}

// Visible returns the half-open range of rows on screen
func (w *Window) Visible() (start, end int) {
	return w.offset, min(w.offset+w.size, w.total)
}

// Reset clears the window
func (w *Window) Reset() {
	w.cursor, w.offset, w.total = 0, 0, 0
}

func (w *Window) scroll() {
	switch {
	case w.cursor < w.offset:
		w.offset = w.cursor
	case w.cursor >= w.offset+w.size:
		w.offset = w.cursor - w.size + 1
	}
	if maxOffset := max(w.total-w.size, 0); w.offset > maxOffset {
		w.offset = maxOffset
	}
}
