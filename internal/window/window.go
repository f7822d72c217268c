// Package window implements a single viewport over one buffer: cursor,
// mark, scroll position, and the dirty-row set a renderer consumes.
package window

import (
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/renderer/dirty"
	"github.com/dshills/keystorm/internal/renderer/viewport"
)

// ID uniquely identifies a Window within an editor.State.
type ID uint64

// Position is a logical cursor location: a line number and a grapheme
// (not byte, not rune) column within that line.
type Position struct {
	Line   uint32
	Column uint32
}

// Window is a viewport over a single buffer.Buffer.
type Window struct {
	id       ID
	buf      *buffer.Buffer
	viewport *viewport.Viewport

	cursor        Position
	mark          *Position
	desiredColumn uint32

	width, height int
	dirty         *dirty.Tracker
}

// New creates a Window of the given screen size over buf.
func New(id ID, buf *buffer.Buffer, width, height int) *Window {
	return &Window{
		id:       id,
		buf:      buf,
		viewport: viewport.NewViewport(width, height),
		width:    width,
		height:   height,
		dirty:    dirty.NewTracker(width, height),
	}
}

// ID returns the window's identifier.
func (w *Window) ID() ID { return w.id }

// Buffer returns the buffer this window displays.
func (w *Window) Buffer() *buffer.Buffer { return w.buf }

// SetBuffer points the window at a different buffer (find-file reusing
// an existing split), resetting cursor, mark, and dirty state for the
// new content.
func (w *Window) SetBuffer(buf *buffer.Buffer) {
	w.buf = buf
	w.cursor = Position{}
	w.mark = nil
	w.desiredColumn = 0
	w.dirty = dirty.NewTracker(w.width, w.height)
	w.markRowDirty(0)
}

// Viewport returns the underlying scroll/size state, reused directly from
// the renderer's viewport package (margins, smooth scroll, reveal math).
func (w *Window) Viewport() *viewport.Viewport { return w.viewport }

// Cursor returns the current logical cursor position.
func (w *Window) Cursor() Position { return w.cursor }

// Mark returns the mark position and whether one is set.
func (w *Window) Mark() (Position, bool) {
	if w.mark == nil {
		return Position{}, false
	}
	return *w.mark, true
}

// SetMark sets the mark to the current cursor position (set-mark-command).
func (w *Window) SetMark() {
	p := w.cursor
	w.mark = &p
}

// ClearMark removes the mark.
func (w *Window) ClearMark() { w.mark = nil }

// ExchangePointAndMark swaps cursor and mark (exchange-point-and-mark).
// No-op if no mark is set.
func (w *Window) ExchangePointAndMark() {
	if w.mark == nil {
		return
	}
	cur := w.cursor
	w.cursor = *w.mark
	w.mark = &cur
	w.desiredColumn = w.cursor.Column
	w.markRowDirty(w.cursor.Line)
	w.markRowDirty(w.mark.Line)
	w.EnsureVisible()
}

// Region returns the byte range spanning cursor and mark, ordered start
// before end, and whether a mark is set to form one.
func (w *Window) Region() (start, end buffer.ByteOffset, ok bool) {
	if w.mark == nil {
		return 0, 0, false
	}
	a := w.offsetOf(*w.mark)
	b := w.offsetOf(w.cursor)
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// offsetOf converts a logical Position to a byte offset via the buffer's
// grapheme-column mapping.
func (w *Window) offsetOf(p Position) buffer.ByteOffset {
	return w.buf.OffsetForGraphemeColumn(p.Line, p.Column)
}

// pointOf converts a byte offset to a logical (line, grapheme column).
func (w *Window) pointOf(offset buffer.ByteOffset) Position {
	pt := w.buf.OffsetToPoint(offset)
	col := w.buf.GraphemeColumn(offset)
	return Position{Line: pt.Line, Column: col}
}

// SetCursor moves the cursor to an explicit logical position, clamping to
// the buffer's bounds, and resets desiredColumn to match (any motion that
// is not pure vertical movement must call this, per the spec's sticky-
// column rule).
func (w *Window) SetCursor(p Position) {
	prev := w.cursor
	w.cursor = w.clamp(p)
	w.desiredColumn = w.cursor.Column
	w.markRowDirty(prev.Line)
	w.markRowDirty(w.cursor.Line)
	w.EnsureVisible()
}

// setCursorPreserveDesiredColumn moves the cursor without resetting
// desiredColumn; used by vertical motions so repeated Up/Down retargets
// the sticky column rather than whatever column each intermediate line
// happens to clamp to.
func (w *Window) setCursorPreserveDesiredColumn(p Position) {
	prev := w.cursor
	w.cursor = w.clamp(p)
	w.markRowDirty(prev.Line)
	w.markRowDirty(w.cursor.Line)
	w.EnsureVisible()
}

// CursorOffset returns the cursor's byte offset in the buffer.
func (w *Window) CursorOffset() buffer.ByteOffset {
	return w.offsetOf(w.cursor)
}

// SetCursorOffset moves the cursor to the logical position matching a
// byte offset.
func (w *Window) SetCursorOffset(offset buffer.ByteOffset) {
	w.SetCursor(w.pointOf(offset))
}

func (w *Window) clamp(p Position) Position {
	lineCount := w.buf.LineCount()
	if lineCount == 0 {
		return Position{}
	}
	if p.Line >= lineCount {
		p.Line = lineCount - 1
	}
	maxCol := w.buf.LineGraphemeCount(p.Line)
	if p.Column > maxCol {
		p.Column = maxCol
	}
	return p
}

// EnsureVisible scrolls the viewport, if needed, so the cursor is within
// the configured scroll margins.
func (w *Window) EnsureVisible() {
	visCol := w.visualColumn(w.cursor)
	w.viewport.ScrollToReveal(w.cursor.Line, visCol, false)
}

// visualColumn maps a grapheme column to a screen column, expanding tabs
// and accounting for wide (double-width) grapheme clusters.
func (w *Window) visualColumn(p Position) int {
	offset := w.buf.OffsetForGraphemeColumn(p.Line, p.Column)
	return w.buf.VisualColumn(offset, w.buf.TabWidth())
}

// markRowDirty records that line changed, delegating the actual
// region bookkeeping and coalescing to renderer/dirty.Tracker (spec
// §4.7's per-row dirty-region bitmap) rather than keeping a second,
// window-local notion of "what changed".
func (w *Window) markRowDirty(line uint32) {
	w.dirty.MarkLine(line)
}

// DirtyRows returns the buffer lines that changed since the last call
// to ClearDirty, for the renderer to redraw selectively instead of
// repainting every visible line every frame.
func (w *Window) DirtyRows() []uint32 {
	return w.dirty.DirtyLines()
}

// NeedsFullRedraw reports whether accumulated changes (a resize, or
// enough dirty lines to cross the tracker's coalescing threshold)
// require repainting the whole window instead of just DirtyRows.
func (w *Window) NeedsFullRedraw() bool {
	return w.dirty.NeedsFullRedraw()
}

// ClearDirty empties the dirty-row set after a render.
func (w *Window) ClearDirty() {
	w.dirty.Clear()
}

// Resize updates the window's screen dimensions.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	w.viewport.Resize(width, height)
	w.dirty.SetScreenSize(width, height)
}
