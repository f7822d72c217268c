package search

import (
	"strings"

	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/engine/buffer"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs isearch-forward/isearch-backward into d's command_table.
func Register(d Registrar) {
	d.Register("isearch-forward", searchDirection(true))
	d.Register("isearch-backward", searchDirection(false))
}

// Pattern is the literal text to search for; the front-end's
// minibuffer-equivalent prompt sets it before dispatching.
var Pattern string

// LastMatchLine, LastMatchStartCol, and LastMatchEndCol record the most
// recent successful hit's buffer position, in grapheme columns, so the
// renderer can paint it with style.LayerSearch. LastMatchValid is false
// until the first successful search, and is cleared on a miss — a stale
// highlight pointing at a no-longer-current match would be worse than
// none.
var (
	LastMatchLine     uint32
	LastMatchStartCol uint32
	LastMatchEndCol   uint32
	LastMatchValid    bool
)

func searchDirection(forward bool) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		pattern := Pattern
		if pattern == "" {
			return editor.Error(editor.ErrSearchNotFound)
		}
		win := s.FocusedWindow()
		if win == nil {
			return editor.Error(editor.ErrWindowInvalid)
		}
		buf := win.Buffer()
		text := buf.Text()
		// Matching ignores case. Folding is skipped when lower-casing
		// would change the byte length of the text or the pattern, so
		// match offsets always index the original text.
		if ft, fp := strings.ToLower(text), strings.ToLower(pattern); len(ft) == len(text) && len(fp) == len(pattern) {
			text, pattern = ft, fp
		}
		offset := int(win.CursorOffset())

		var found int
		var ok bool
		if forward {
			found, ok = searchForward(text, pattern, offset)
		} else {
			found, ok = searchBackward(text, pattern, offset)
		}
		if !ok {
			LastMatchValid = false
			return editor.Error(editor.ErrSearchNotFound)
		}
		win.SetCursorOffset(buffer.ByteOffset(found))
		recordMatch(buf, buffer.ByteOffset(found), len(pattern))
		return editor.OkWindow(win.ID())
	}
}

// recordMatch stashes the just-found hit's line/column span into the
// LastMatch* package state.
func recordMatch(buf *buffer.Buffer, start buffer.ByteOffset, length int) {
	pt := buf.OffsetToPoint(start)
	LastMatchLine = pt.Line
	LastMatchStartCol = buf.GraphemeColumn(start)
	LastMatchEndCol = buf.GraphemeColumn(start + buffer.ByteOffset(length))
	LastMatchValid = true
}

func searchForward(text, pattern string, from int) (int, bool) {
	if from+1 <= len(text) {
		if idx := strings.Index(text[from+1:], pattern); idx >= 0 {
			return from + 1 + idx, true
		}
	}
	if idx := strings.Index(text, pattern); idx >= 0 && idx <= from {
		return idx, true
	}
	return 0, false
}

func searchBackward(text, pattern string, from int) (int, bool) {
	if from <= len(text) {
		if idx := strings.LastIndex(text[:from], pattern); idx >= 0 {
			return idx, true
		}
	}
	if idx := strings.LastIndex(text, pattern); idx >= 0 && idx >= from {
		return idx, true
	}
	return 0, false
}
