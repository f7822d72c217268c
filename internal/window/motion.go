package window

import (
	"unicode/utf8"

	"github.com/dshills/keystorm/internal/engine/buffer"
)

// MotionKind enumerates the cursor motions a Window supports.
type MotionKind uint8

const (
	MotionCharForward MotionKind = iota
	MotionCharBackward
	MotionLineUp
	MotionLineDown
	MotionLineStart
	MotionLineEnd
	MotionWordForward
	MotionWordBackward
	MotionParagraphForward
	MotionParagraphBackward
	MotionBufferStart
	MotionBufferEnd
)

// Move applies the given motion count times. Vertical motions
// (MotionLineUp/MotionLineDown) preserve desiredColumn across the whole
// repetition; every other motion resets it to match the new column, per
// the spec's sticky-column rule.
func (w *Window) Move(kind MotionKind, count int) {
	if count <= 0 {
		count = 1
	}

	switch kind {
	case MotionLineUp, MotionLineDown:
		for i := 0; i < count; i++ {
			w.moveVertical(kind)
		}
	default:
		for i := 0; i < count; i++ {
			w.moveOther(kind)
		}
	}
}

func (w *Window) moveVertical(kind MotionKind) {
	line := w.cursor.Line
	if kind == MotionLineUp {
		if line == 0 {
			return
		}
		line--
	} else {
		if line+1 >= w.buf.LineCount() {
			return
		}
		line++
	}
	maxCol := w.buf.LineGraphemeCount(line)
	col := w.desiredColumn
	if col > maxCol {
		col = maxCol
	}
	w.setCursorPreserveDesiredColumn(Position{Line: line, Column: col})
}

func (w *Window) moveOther(kind MotionKind) {
	switch kind {
	case MotionCharForward:
		off := w.CursorOffset()
		next := w.buf.NextGraphemeBoundary(off)
		w.SetCursorOffset(next)
	case MotionCharBackward:
		off := w.CursorOffset()
		prev := w.buf.PrevGraphemeBoundary(off)
		w.SetCursorOffset(prev)
	case MotionLineStart:
		w.SetCursor(Position{Line: w.cursor.Line, Column: 0})
	case MotionLineEnd:
		w.SetCursor(Position{Line: w.cursor.Line, Column: w.buf.LineGraphemeCount(w.cursor.Line)})
	case MotionWordForward:
		off := w.CursorOffset()
		text := w.buf.Text()
		next := findNextWordStart(text, off, buffer.ByteOffset(len(text)))
		w.SetCursorOffset(next)
	case MotionWordBackward:
		off := w.CursorOffset()
		text := w.buf.Text()
		prev := findPrevWordStart(text, off)
		w.SetCursorOffset(prev)
	case MotionParagraphForward:
		w.SetCursor(Position{Line: nextParagraphLine(w.buf, w.cursor.Line), Column: 0})
	case MotionParagraphBackward:
		w.SetCursor(Position{Line: prevParagraphLine(w.buf, w.cursor.Line), Column: 0})
	case MotionBufferStart:
		w.SetCursor(Position{Line: 0, Column: 0})
	case MotionBufferEnd:
		last := w.buf.LineCount() - 1
		w.SetCursor(Position{Line: last, Column: w.buf.LineGraphemeCount(last)})
	}
}

// Word-boundary scanning below is grounded on
// internal/dispatcher/handlers/editor/delete.go's findNextWordStartUTF8 /
// findPrevWordStartUTF8 / isWordChar, generalized to work over a whole
// buffer's text rather than a single-line slice.

// isWordChar reports whether r is a word character: alphanumeric or
// underscore. This is the word-boundary definition the spec names.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func findNextWordStart(text string, offset, maxOffset buffer.ByteOffset) buffer.ByteOffset {
	textLen := buffer.ByteOffset(len(text))
	if offset >= textLen || offset >= maxOffset {
		return min(textLen, maxOffset)
	}

	inWord := false
	foundNonWord := false

	for i, r := range text[offset:] {
		pos := offset + buffer.ByteOffset(i)
		if pos >= maxOffset {
			return maxOffset
		}

		switch {
		case isWordChar(r):
			if foundNonWord {
				return pos
			}
			inWord = true
		case isWhitespace(r):
			if inWord {
				foundNonWord = true
			}
		default:
			if inWord {
				foundNonWord = true
			} else if foundNonWord {
				return pos
			}
		}
	}

	return min(textLen, maxOffset)
}

func findPrevWordStart(text string, offset buffer.ByteOffset) buffer.ByteOffset {
	if offset <= 0 {
		return 0
	}
	textLen := buffer.ByteOffset(len(text))
	if offset > textLen {
		offset = textLen
	}

	for offset > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:offset])
		if size == 0 {
			break
		}
		r, _ := utf8.DecodeRuneInString(text[offset-buffer.ByteOffset(size):])
		if !isWhitespace(r) {
			break
		}
		offset -= buffer.ByteOffset(size)
	}

	for offset > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:offset])
		if size == 0 {
			break
		}
		r, _ := utf8.DecodeRuneInString(text[offset-buffer.ByteOffset(size):])
		if !isWordChar(r) {
			break
		}
		offset -= buffer.ByteOffset(size)
	}

	return offset
}

// nextParagraphLine finds the start of the next paragraph: the first
// non-blank line after the next run of blank lines following the
// current one, or the last line if no such run exists.
func nextParagraphLine(buf *buffer.Buffer, line uint32) uint32 {
	total := buf.LineCount()
	l := line
	// Skip the remainder of the current paragraph.
	for l < total && buf.LineLen(l) > 0 {
		l++
	}
	// Skip the blank-line run.
	for l < total && buf.LineLen(l) == 0 {
		l++
	}
	if l >= total {
		return total - 1
	}
	return l
}

// prevParagraphLine finds the start of the previous paragraph.
func prevParagraphLine(buf *buffer.Buffer, line uint32) uint32 {
	l := line
	if l > 0 {
		l--
	}
	for l > 0 && buf.LineLen(l) == 0 {
		l--
	}
	for l > 0 && buf.LineLen(l-1) > 0 {
		l--
	}
	return l
}
