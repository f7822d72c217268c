package window

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

func newTestState(t *testing.T) *editor.State {
	t.Helper()
	s := editor.New(keymap.NewRegistry(), layout.Rect{Width: 80, Height: 24})
	buf := buffer.NewBufferFromString("hello")
	s.OpenBuffer(buf, 80, 24)
	return s
}

func TestSplitWindowBelowCreatesAndFocusesNewWindow(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)
	original := s.Focus()

	res := r.commands["split-window-below"](s, 1)
	if res.Kind != editor.DispatchOk {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Focus() == original {
		t.Fatal("expected focus to move to the new split")
	}
	if len(s.Windows()) != 2 {
		t.Fatalf("window count = %d, want 2", len(s.Windows()))
	}
}

func TestDeleteWindowRefusesLastWindow(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)

	res := r.commands["delete-window"](s, 1)
	if res.Kind != editor.DispatchError || res.Err != editor.ErrLastWindow {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestOtherWindowCyclesFocus(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)
	r.commands["split-window-below"](s, 1)
	first := s.Focus()

	r.commands["other-window"](s, 1)
	if s.Focus() == first {
		t.Fatal("expected focus to change after other-window")
	}

	r.commands["other-window"](s, 1)
	if s.Focus() != first {
		t.Fatal("expected focus to cycle back to the original window")
	}
}

func TestDeleteOtherWindowsCollapsesToOne(t *testing.T) {
	r := newFakeRegistrar()
	Register(r)
	s := newTestState(t)
	r.commands["split-window-below"](s, 1)
	focused := s.Focus()

	res := r.commands["delete-other-windows"](s, 1)
	if res.Kind != editor.DispatchOk {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(s.Windows()) != 1 {
		t.Fatalf("window count = %d, want 1", len(s.Windows()))
	}
	if s.Focus() != focused {
		t.Fatalf("focus = %d, want %d", s.Focus(), focused)
	}
}
