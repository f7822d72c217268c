package history

import (
	"testing"
	"time"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/cursor"
)

func TestCoalescerGroupsConsecutiveInserts(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	cursors := cursor.NewCursorSetAt(0)
	h := NewHistory(100)
	c := NewCoalescer(h)

	for _, ch := range []string{"a", "b", "c"} {
		cmd := NewInsertCommand(ch)
		if err := c.Execute(cmd, buf, cursors, EditInsert, ch); err != nil {
			t.Fatalf("Execute(%q): %v", ch, err)
		}
	}
	c.Flush()

	if buf.Text() != "abc" {
		t.Fatalf("text = %q, want %q", buf.Text(), "abc")
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1 (one coalesced group)", h.UndoCount())
	}

	if err := h.Undo(buf, cursors); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if buf.Text() != "" {
		t.Errorf("after undo, text = %q, want empty", buf.Text())
	}
}

func TestCoalescerBreaksOnWhitespace(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	cursors := cursor.NewCursorSetAt(0)
	h := NewHistory(100)
	c := NewCoalescer(h)

	if err := c.Execute(NewInsertCommand("a"), buf, cursors, EditInsert, "a"); err != nil {
		t.Fatal(err)
	}
	if err := c.Execute(NewInsertCommand(" "), buf, cursors, EditInsert, " "); err != nil {
		t.Fatal(err)
	}
	c.Flush()

	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2 (whitespace breaks the group)", h.UndoCount())
	}
}

func TestCoalescerBreaksOnKindChange(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	cursors := cursor.NewCursorSetAt(2)
	h := NewHistory(100)
	c := NewCoalescer(h)

	if err := c.Execute(NewInsertCommand("c"), buf, cursors, EditInsert, "c"); err != nil {
		t.Fatal(err)
	}
	del := NewDeleteCommand(DeleteBackward)
	if err := c.Execute(del, buf, cursors, EditDelete, ""); err != nil {
		t.Fatal(err)
	}
	c.Flush()

	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2 (insert->delete breaks the group)", h.UndoCount())
	}
}

func TestCoalescerBreaksOnTimeout(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	cursors := cursor.NewCursorSetAt(0)
	h := NewHistory(100)
	c := NewCoalescer(h)
	c.Timeout = 10 * time.Millisecond

	if err := c.Execute(NewInsertCommand("a"), buf, cursors, EditInsert, "a"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := c.Execute(NewInsertCommand("b"), buf, cursors, EditInsert, "b"); err != nil {
		t.Fatal(err)
	}
	c.Flush()

	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2 (timeout breaks the group)", h.UndoCount())
	}
}
