package history

import (
	"time"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/cursor"
)

// EditKind classifies a command for the purposes of undo-group coalescing.
type EditKind uint8

const (
	// EditOther is any command that does not participate in coalescing
	// (cursor motion, scrolling, etc.) and always commits the open group.
	EditOther EditKind = iota
	EditInsert
	EditDelete
)

// DefaultGroupTimeout is the wall-clock gap since the last coalesced edit
// after which a new edit starts its own group, matching the "typing
// pause" behavior of mainstream Emacs-family undo.
const DefaultGroupTimeout = 250 * time.Millisecond

// Coalescer wraps a *History with the automatic group-commit policy: a
// run of edits stays in one undo group until the edit kind changes,
// inserted text contains whitespace or a line terminator, more than
// Timeout has elapsed since the last coalesced edit, or an explicit
// boundary is signaled via Flush.
//
// History itself only exposes manual BeginGroup/EndGroup; Coalescer is
// the policy layer that decides when to call them.
type Coalescer struct {
	history *History
	Timeout time.Duration

	open     bool
	kind     EditKind
	lastEdit time.Time
}

// NewCoalescer wraps h with the default 250ms timeout.
func NewCoalescer(h *History) *Coalescer {
	return &Coalescer{history: h, Timeout: DefaultGroupTimeout}
}

// Execute runs cmd, coalescing it into the currently open undo group when
// kind matches the group's kind, the inserted text (if any) contains no
// whitespace/line-terminator, and Timeout has not elapsed since the last
// coalesced edit in the group. Otherwise it commits any open group first.
func (c *Coalescer) Execute(cmd Command, buf *buffer.Buffer, cursors *cursor.CursorSet, kind EditKind, insertedText string) error {
	now := time.Now()

	if c.open && !c.shouldContinue(kind, insertedText, now) {
		c.Flush()
	}

	if !c.open {
		c.history.BeginGroup(groupName(kind))
		c.open = true
		c.kind = kind
	}

	if err := cmd.Execute(buf, cursors); err != nil {
		return err
	}

	c.history.Push(cmd)
	c.lastEdit = now
	return nil
}

// shouldContinue reports whether an edit of the given kind/text belongs
// in the currently open group.
func (c *Coalescer) shouldContinue(kind EditKind, insertedText string, now time.Time) bool {
	if kind == EditOther || kind != c.kind {
		return false
	}
	if containsLineBreakOrSpace(insertedText) {
		return false
	}
	if !c.lastEdit.IsZero() && now.Sub(c.lastEdit) > c.Timeout {
		return false
	}
	return true
}

// Flush commits the currently open group as a single undo unit, if any.
// The undo and redo handlers call it before acting. Cursor movement,
// save and macro steps do not call it, so a group that spans them closes
// only through Execute's own checks (kind change, whitespace, Timeout).
func (c *Coalescer) Flush() {
	if !c.open {
		return
	}
	c.history.EndGroup()
	c.open = false
	c.lastEdit = time.Time{}
}

// IsOpen reports whether a group is currently being coalesced into.
func (c *Coalescer) IsOpen() bool {
	return c.open
}

// History returns the wrapped History, for undo/redo/inspection calls
// that do not go through Execute.
func (c *Coalescer) History() *History {
	return c.history
}

func groupName(kind EditKind) string {
	switch kind {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "edit"
	}
}

func containsLineBreakOrSpace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return true
		}
	}
	return false
}
