package macro

import (
	"testing"

	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/keymap"
	"github.com/dshills/keystorm/internal/layout"
)

type fakeRegistrar struct {
	commands map[string]editor.Command
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{commands: make(map[string]editor.Command)}
}

func (f *fakeRegistrar) Register(name string, cmd editor.Command) {
	f.commands[name] = cmd
}

func newTestState(t *testing.T) *editor.State {
	t.Helper()
	return editor.New(keymap.NewRegistry(), layout.Rect{Width: 80, Height: 24})
}

func TestBeginEndExecuteMacro(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)

	res := r.commands["begin-macro"](s, 1)
	if res.Kind != editor.DispatchMessage {
		t.Fatalf("unexpected begin result %+v", res)
	}

	s.MacroState().Record(key.NewRuneEvent('a', 0))
	r.commands["end-macro"](s, 1)

	var fed []key.Event
	Feed = func(e key.Event) error {
		fed = append(fed, e)
		return nil
	}
	defer func() { Feed = nil }()

	res = r.commands["execute-macro"](s, 2)
	if res.Kind != editor.DispatchOk {
		t.Fatalf("unexpected execute result %+v", res)
	}
	if len(fed) != 2 {
		t.Fatalf("fed %d events, want 2", len(fed))
	}
}

func TestExecuteMacroWithoutFeedErrors(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)
	Feed = nil

	res := r.commands["execute-macro"](s, 1)
	if res.Kind != editor.DispatchError || res.Err != editor.ErrMacroEmpty {
		t.Fatalf("unexpected result %+v", res)
	}
}
