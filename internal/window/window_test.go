package window

import (
	"testing"

	"github.com/dshills/keystorm/internal/engine/buffer"
)

func newTestWindow(text string) *Window {
	buf := buffer.NewBufferFromString(text)
	return New(1, buf, 80, 24)
}

func TestMoveCharForwardBackward(t *testing.T) {
	w := newTestWindow("abc")
	w.Move(MotionCharForward, 2)
	if w.Cursor() != (Position{Line: 0, Column: 2}) {
		t.Fatalf("cursor = %+v, want col 2", w.Cursor())
	}
	w.Move(MotionCharBackward, 1)
	if w.Cursor() != (Position{Line: 0, Column: 1}) {
		t.Fatalf("cursor = %+v, want col 1", w.Cursor())
	}
}

func TestDesiredColumnPreservedAcrossVerticalMotion(t *testing.T) {
	w := newTestWindow("long line here\nshort\nlong line here")
	w.SetCursor(Position{Line: 0, Column: 10})
	w.Move(MotionLineDown, 1) // lands on "short" (len 5), clamped
	if w.Cursor().Column != 5 {
		t.Fatalf("col on short line = %d, want 5 (clamped)", w.Cursor().Column)
	}
	w.Move(MotionLineDown, 1) // back to a long line; desiredColumn (10) should be restored
	if w.Cursor().Column != 10 {
		t.Fatalf("col on long line = %d, want 10 (desiredColumn restored)", w.Cursor().Column)
	}
}

func TestHorizontalMotionResetsDesiredColumn(t *testing.T) {
	w := newTestWindow("long line here\nshort\nlong line here")
	w.SetCursor(Position{Line: 0, Column: 10})
	w.Move(MotionCharBackward, 5) // col 5, horizontal motion resets desiredColumn
	w.Move(MotionLineDown, 1)
	if w.Cursor().Column != 5 {
		t.Fatalf("col = %d, want 5 (desiredColumn reset by horizontal motion)", w.Cursor().Column)
	}
}

func TestMarkRegionAndExchange(t *testing.T) {
	w := newTestWindow("hello world")
	w.SetMark()
	w.Move(MotionWordForward, 1)
	start, end, ok := w.Region()
	if !ok {
		t.Fatal("expected a region")
	}
	if start != 0 {
		t.Errorf("region start = %d, want 0", start)
	}
	if end == 0 {
		t.Errorf("region end should be past the first word")
	}

	before := w.Cursor()
	w.ExchangePointAndMark()
	m, _ := w.Mark()
	if m != before {
		t.Errorf("after exchange, mark should equal prior cursor")
	}
}

func TestWordMotion(t *testing.T) {
	w := newTestWindow("foo bar baz")
	w.Move(MotionWordForward, 1)
	if off := w.CursorOffset(); off != 4 {
		t.Errorf("offset after first word-forward = %d, want 4", off)
	}
	w.Move(MotionWordForward, 1)
	if off := w.CursorOffset(); off != 8 {
		t.Errorf("offset after second word-forward = %d, want 8", off)
	}
	w.Move(MotionWordBackward, 2)
	if off := w.CursorOffset(); off != 0 {
		t.Errorf("offset after two word-backward = %d, want 0", off)
	}
}

func TestParagraphMotion(t *testing.T) {
	w := newTestWindow("p1 line1\np1 line2\n\np2 line1\np2 line2")
	w.Move(MotionParagraphForward, 1)
	if w.Cursor().Line != 3 {
		t.Errorf("line after paragraph-forward = %d, want 3", w.Cursor().Line)
	}
}

func TestGraphemeAwareCharMotionOverCombiningMark(t *testing.T) {
	w := newTestWindow("éx") // e + combining acute accent is one cluster
	w.Move(MotionCharForward, 1)
	if off := w.CursorOffset(); off != 3 {
		t.Fatalf("offset after one char-forward over combining mark = %d, want 3 (full cluster)", off)
	}
}
