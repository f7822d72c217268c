package cursor

import (
	"testing"

	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/engine/buffer"
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

func newTestState(t *testing.T, text string) *editor.State {
	t.Helper()
	s := editor.New(keymap.NewRegistry(), layout.Rect{Width: 80, Height: 24})
	buf := buffer.NewBufferFromString(text)
	s.OpenBuffer(buf, 80, 24)
	return s
}

func TestForwardCharAdvancesCursor(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t, "hello")

	res := r.commands["forward-char"](s, 1)
	if res.Kind != editor.DispatchOk {
		t.Fatalf("unexpected result kind %v", res.Kind)
	}
	if got := s.FocusedWindow().Cursor().Column; got != 1 {
		t.Fatalf("cursor column = %d, want 1", got)
	}
}

func TestForwardCharHonorsCount(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t, "hello world")

	r.commands["forward-char"](s, 5)
	if got := s.FocusedWindow().Cursor().Column; got != 5 {
		t.Fatalf("cursor column = %d, want 5", got)
	}
}

func TestSetMarkThenExchangePointAndMark(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t, "hello world")
	win := s.FocusedWindow()

	r.commands["set-mark-command"](s, 1)
	r.commands["forward-char"](s, 5)

	markBefore, _ := win.Mark()
	cursorBefore := win.Cursor()

	res := r.commands["exchange-point-and-mark"](s, 1)
	if res.Kind != editor.DispatchOk {
		t.Fatalf("unexpected result %+v", res)
	}
	if win.Cursor() != markBefore {
		t.Fatalf("cursor after exchange = %+v, want old mark %+v", win.Cursor(), markBefore)
	}
	newMark, ok := win.Mark()
	if !ok || newMark != cursorBefore {
		t.Fatalf("mark after exchange = (%+v, %v), want old cursor %+v", newMark, ok, cursorBefore)
	}
}

func TestExchangePointAndMarkWithoutMarkErrors(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t, "hello")

	res := r.commands["exchange-point-and-mark"](s, 1)
	if res.Kind != editor.DispatchError || res.Err != editor.ErrRangeInvalid {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestKeyboardQuitReturnsCancelled(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t, "hello")

	res := r.commands["keyboard-quit"](s, 1)
	if res.Kind != editor.DispatchError || res.Err != editor.ErrCancelled {
		t.Fatalf("unexpected result %+v", res)
	}
}
