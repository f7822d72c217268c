package window

import (
	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/layout"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs every window-management command into d's command_table.
func Register(d Registrar) {
	d.Register("split-window-below", split(layout.Horizontal))
	d.Register("split-window-right", split(layout.Vertical))
	d.Register("other-window", otherWindow)
	d.Register("delete-window", deleteWindow)
	d.Register("delete-other-windows", deleteOtherWindows)
	d.Register("grow-window", resize(1))
	d.Register("shrink-window", resize(-1))
}

func split(orientation layout.Orientation) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		target := s.Focus()
		newID, err := s.SplitWindow(target, orientation)
		if err != nil {
			return editor.Error(editor.ErrRangeInvalid)
		}
		return editor.OkWindow(newID)
	}
}

func otherWindow(s *editor.State, count int) editor.DispatchResult {
	n := count
	if n <= 0 {
		n = 1
	}
	var id = s.Focus()
	for i := 0; i < n; i++ {
		id = s.FocusNext()
	}
	return editor.OkWindow(id)
}

func deleteWindow(s *editor.State, count int) editor.DispatchResult {
	target := s.Focus()
	if err := s.CloseWindow(target); err != nil {
		return editor.Error(editor.ErrLastWindow)
	}
	return editor.Ok(editor.RedrawAll)
}

func deleteOtherWindows(s *editor.State, count int) editor.DispatchResult {
	target := s.Focus()
	if err := s.OnlyWindow(target); err != nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	return editor.Ok(editor.RedrawAll)
}

// resize grows (sign > 0) or shrinks (sign < 0) the focused window's
// share of its parent split by a fixed 5% step per invocation,
// repeated count times.
func resize(sign int) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		n := count
		if n <= 0 {
			n = 1
		}
		target := s.Focus()
		root, rect := s.Layout()
		const step float32 = 0.05
		newRoot, err := layout.Grow(root, rect, target, step*float32(sign*n))
		if err != nil {
			return editor.Error(editor.ErrRangeInvalid)
		}
		s.SetLayout(newRoot)
		return editor.Ok(editor.RedrawAll)
	}
}
