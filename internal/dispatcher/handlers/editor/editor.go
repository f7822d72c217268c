// Package editor registers the editing commands: self-insert,
// newline, delete-char/delete-backward-char, kill-line/kill-region,
// yank/yank-pop, and undo/redo. It is grounded on the teacher's
// insert.go/delete.go/yank.go, which ran history.Command against a
// multi-selection cursor.CursorSet; a window.Window here tracks a
// single point/mark pair, so each handler bridges through a
// throwaway single-selection cursor.CursorSet built from the
// window's current cursor offset, runs it through the buffer's
// history.Coalescer, then writes the resulting primary offset back
// onto the window.
package editor

import (
	"strings"

	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/engine/cursor"
	"github.com/dshills/keystorm/internal/engine/history"
	"github.com/dshills/keystorm/internal/window"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs every editing command into d's command_table.
func Register(d Registrar) {
	d.Register("self-insert-command", selfInsert)
	d.Register("newline", insertText("\n"))
	d.Register("delete-char", deleteDirection(history.DeleteForward))
	d.Register("delete-backward-char", deleteDirection(history.DeleteBackward))
	d.Register("kill-line", killLine)
	d.Register("kill-region", killRegion)
	d.Register("yank", yank)
	d.Register("yank-pop", yankPop)
	d.Register("undo", undo)
	d.Register("redo", redo)
	d.Register("quit", quit)
}

// quit ends the main loop (the teacher's "quit"/"app.quit" action,
// here returning editor.Exit() instead of the teacher's ErrQuit
// sentinel error, since this command_table speaks DispatchResult, not
// the teacher's event-loop error channel).
func quit(s *editor.State, count int) editor.DispatchResult {
	return editor.Exit()
}

// editContext bridges a window's single point/mark cursor into the
// multi-selection CursorSet history.Command operates over.
func editContext(s *editor.State) (win *window.Window, coalescer *history.Coalescer, cursors *cursor.CursorSet, ok bool) {
	win = s.FocusedWindow()
	if win == nil {
		return nil, nil, nil, false
	}
	coalescer = s.HistoryFor(win)
	if coalescer == nil {
		return nil, nil, nil, false
	}
	cursors = cursor.NewCursorSetAt(win.CursorOffset())
	return win, coalescer, cursors, true
}

// SelfInsertText is read by selfInsert from a resolver self-insert
// outcome; the dispatcher stashes it here before calling through
// command_table, mirroring how the teacher's ExecutionContext carried
// action.Args.Text for ActionInsertChar.
var SelfInsertText string

func selfInsert(s *editor.State, count int) editor.DispatchResult {
	text := SelfInsertText
	if text == "" {
		return editor.Ok(editor.RedrawNone)
	}
	return insertText(strings.Repeat(text, max(count, 1)))(s, 1)
}

func insertText(text string) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		win, coalescer, cursors, ok := editContext(s)
		if !ok {
			return editor.Error(editor.ErrWindowInvalid)
		}
		repeated := strings.Repeat(text, max(count, 1))
		cmd := history.NewInsertCommand(repeated)
		if err := coalescer.Execute(cmd, win.Buffer(), cursors, history.EditInsert, repeated); err != nil {
			return editor.Error(editor.ErrRangeInvalid)
		}
		win.SetCursorOffset(cursors.PrimaryCursor())
		return editor.OkWindow(win.ID())
	}
}

func deleteDirection(dir history.DeleteDirection) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		win, coalescer, cursors, ok := editContext(s)
		if !ok {
			return editor.Error(editor.ErrWindowInvalid)
		}
		cmd := history.NewDeleteCommandN(dir, max(count, 1))
		if err := coalescer.Execute(cmd, win.Buffer(), cursors, history.EditDelete, ""); err != nil {
			return editor.Error(editor.ErrOffsetOutOfRange)
		}
		win.SetCursorOffset(cursors.PrimaryCursor())
		return editor.OkWindow(win.ID())
	}
}

// killLine kills from point to end of line (without the trailing
// newline) into the kill ring, per Emacs kill-line.
func killLine(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	buf := win.Buffer()
	line := win.Cursor().Line
	start := win.CursorOffset()
	end := buf.LineEndOffset(line)
	if start >= end {
		// At end of line already: kill the newline itself.
		if line+1 < buf.LineCount() {
			end = buf.LineStartOffset(line + 1)
		}
	}
	if start >= end {
		return editor.Ok(editor.RedrawNone)
	}
	killed := buf.TextRange(start, end)

	coalescer := s.HistoryFor(win)
	cursors := cursor.NewCursorSet(cursor.Selection{Anchor: start, Head: end})
	cmd := history.NewDeleteCommandN(history.DeleteForward, 1)
	// DeleteCommand derives its range from the selection when non-empty,
	// so a single Count-1 call removes exactly [start,end).
	if err := coalescer.Execute(cmd, buf, cursors, history.EditDelete, ""); err != nil {
		return editor.Error(editor.ErrOffsetOutOfRange)
	}
	win.SetCursorOffset(cursors.PrimaryCursor())
	s.KillRing().Kill(killed)
	return editor.OkWindow(win.ID())
}

// killRegion kills the text between point and mark (kill-region).
func killRegion(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	start, end, ok := win.Region()
	if !ok || start == end {
		return editor.Error(editor.ErrRangeInvalid)
	}
	buf := win.Buffer()
	killed := buf.TextRange(start, end)

	coalescer := s.HistoryFor(win)
	cursors := cursor.NewCursorSet(cursor.Selection{Anchor: start, Head: end})
	cmd := history.NewDeleteCommandN(history.DeleteForward, 1)
	if err := coalescer.Execute(cmd, buf, cursors, history.EditDelete, ""); err != nil {
		return editor.Error(editor.ErrOffsetOutOfRange)
	}
	win.SetCursorOffset(cursors.PrimaryCursor())
	win.ClearMark()
	s.KillRing().Kill(killed)
	return editor.OkWindow(win.ID())
}

func yank(s *editor.State, count int) editor.DispatchResult {
	text, ok := s.KillRing().Yank()
	if !ok {
		return editor.Error(editor.ErrRangeInvalid)
	}
	return insertText(text)(s, max(count, 1))
}

// yankPop inserts the next entry rotated off the kill ring at point.
// The text inserted by the preceding yank is not removed, and no
// last-command check ties this to an immediately preceding yank.
func yankPop(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	text, ok := s.KillRing().Rotate()
	if !ok {
		return editor.Error(editor.ErrRangeInvalid)
	}
	return insertText(text)(s, 1)
}

func undo(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	coalescer := s.HistoryFor(win)
	coalescer.Flush()
	cursors := cursor.NewCursorSetAt(win.CursorOffset())
	for i := 0; i < max(count, 1); i++ {
		if !coalescer.History().CanUndo() {
			if i == 0 {
				return editor.Error(editor.ErrNothingToUndo)
			}
			break
		}
		if err := coalescer.History().Undo(win.Buffer(), cursors); err != nil {
			return editor.Error(editor.ErrNothingToUndo)
		}
	}
	win.SetCursorOffset(cursors.PrimaryCursor())
	return editor.OkWindow(win.ID())
}

func redo(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	coalescer := s.HistoryFor(win)
	coalescer.Flush()
	cursors := cursor.NewCursorSetAt(win.CursorOffset())
	for i := 0; i < max(count, 1); i++ {
		if !coalescer.History().CanRedo() {
			if i == 0 {
				return editor.Error(editor.ErrNothingToRedo)
			}
			break
		}
		if err := coalescer.History().Redo(win.Buffer(), cursors); err != nil {
			return editor.Error(editor.ErrNothingToRedo)
		}
	}
	win.SetCursorOffset(cursors.PrimaryCursor())
	return editor.OkWindow(win.ID())
}
