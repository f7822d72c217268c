package macro

import (
	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/input/key"
)

// Registrar is the subset of dispatcher.Dispatcher this package needs.
type Registrar interface {
	Register(name string, cmd editor.Command)
}

// Register installs begin-macro/end-macro/execute-macro into d's
// command_table.
func Register(d Registrar) {
	d.Register("begin-macro", beginMacro)
	d.Register("end-macro", endMacro)
	d.Register("execute-macro", executeMacro)
}

// Feed replays one key.Event through the main loop's resolve-then-
// dispatch pipeline; wired by the top-level application at startup.
var Feed func(key.Event) error

func beginMacro(s *editor.State, count int) editor.DispatchResult {
	if err := s.MacroState().Begin(); err != nil {
		return editor.Error(editor.ErrMacroRecursive)
	}
	return editor.Message("Defining macro...")
}

func endMacro(s *editor.State, count int) editor.DispatchResult {
	s.MacroState().End()
	return editor.Message("Macro defined")
}

func executeMacro(s *editor.State, count int) editor.DispatchResult {
	if Feed == nil {
		return editor.Error(editor.ErrMacroEmpty)
	}
	n := count
	if n <= 0 {
		n = 1
	}
	if err := s.MacroState().Execute(n, Feed); err != nil {
		return editor.Error(editor.ErrMacroEmpty)
	}
	return editor.Ok(editor.RedrawAll)
}
