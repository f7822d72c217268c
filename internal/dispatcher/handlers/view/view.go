package view

import (
	"github.com/dshills/keystorm/internal/editor"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs every scroll command into d's command_table.
func Register(d Registrar) {
	d.Register("scroll-up-command", pageDown)
	d.Register("scroll-down-command", pageUp)
	d.Register("scroll-up-line", lineScroll(1))
	d.Register("scroll-down-line", lineScroll(-1))
	d.Register("recenter-top-bottom", recenter)
}

func pageDown(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	win.Viewport().PageDown(true)
	return editor.OkWindow(win.ID())
}

func pageUp(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	win.Viewport().PageUp(true)
	return editor.OkWindow(win.ID())
}

func lineScroll(sign int) editor.Command {
	return func(s *editor.State, count int) editor.DispatchResult {
		win := s.FocusedWindow()
		if win == nil {
			return editor.Error(editor.ErrWindowInvalid)
		}
		n := count
		if n <= 0 {
			n = 1
		}
		win.Viewport().ScrollBy(sign*n, true)
		return editor.OkWindow(win.ID())
	}
}

func recenter(s *editor.State, count int) editor.DispatchResult {
	win := s.FocusedWindow()
	if win == nil {
		return editor.Error(editor.ErrWindowInvalid)
	}
	win.Viewport().CenterOn(win.Cursor().Line, true)
	return editor.OkWindow(win.ID())
}
