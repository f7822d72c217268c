// Package cursor implements the Emacs-named motion commands: point
// movement over the focused window, with a region-extending variant
// whenever a mark is set. It is grounded on the teacher's
// dispatcher/handlers/cursor.Handler — same one-function-per-motion
// shape — but the teacher dispatched over a multi-selection
// cursor.CursorSet via ctx.Cursors.MapInPlace; this spec's window
// carries a single Position cursor/mark pair, so each handler here
// calls window.Window.Move directly instead.
package cursor

import (
	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/window"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs,
// kept as an interface so handler packages don't import dispatcher
// (dispatcher imports them, not the reverse).
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs every motion command into d's command_table.
func Register(d Registrar) {
	d.Register("forward-char", move(window.MotionCharForward))
	d.Register("backward-char", move(window.MotionCharBackward))
	d.Register("next-line", move(window.MotionLineDown))
	d.Register("previous-line", move(window.MotionLineUp))
	d.Register("move-beginning-of-line", move(window.MotionLineStart))
	d.Register("move-end-of-line", move(window.MotionLineEnd))
	d.Register("forward-word", move(window.MotionWordForward))
	d.Register("backward-word", move(window.MotionWordBackward))
	d.Register("forward-paragraph", move(window.MotionParagraphForward))
	d.Register("backward-paragraph", move(window.MotionParagraphBackward))
	d.Register("beginning-of-buffer", move(window.MotionBufferStart))
	d.Register("end-of-buffer", move(window.MotionBufferEnd))

	d.Register("set-mark-command", setMarkCommand)
	d.Register("exchange-point-and-mark", exchangePointAndMark)
	d.Register("keyboard-quit", keyboardQuit)
}

// move builds a command that applies a single motion kind count times
// to the focused window.
func move(kind window.MotionKind) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		win := s.FocusedWindow()
		if win == nil {
			return editor.Error(editor.ErrWindowInvalid)
		}
		win.Move(kind, count)
		return editor.Ok(editor.RedrawCursor)
	}
}

func setMarkCommand(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	win.SetMark()
	return editor.Message("Mark set")
}

func exchangePointAndMark(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	if _, ok := win.Mark(); !ok {
		return editor.Error(editor.ErrRangeInvalid)
	}
	win.ExchangePointAndMark()
	return editor.Ok(editor.RedrawCursor)
}

// keyboardQuit clears the mark and reports the "cancelled" outcome,
// the catch-all abort command (spec §7).
func keyboardQuit(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win != nil {
		win.ClearMark()
	}
	return editor.Error(editor.ErrCancelled)
}
