package editor

import (
	"testing"

	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/keymap"
	"github.com/dshills/keystorm/internal/layout"
)

func TestOpenBufferFocusesNewWindow(t *testing.T) {
	s := New(keymap.NewRegistry(), layout.Rect{Width: 80, Height: 24})
	buf := buffer.NewBufferFromString("hello")
	_, wid := s.OpenBuffer(buf, 80, 24)
	if s.Focus() != wid {
		t.Fatalf("focus = %d, want %d", s.Focus(), wid)
	}
	if s.FocusedWindow() == nil {
		t.Fatal("expected a focused window")
	}
	root, _ := s.Layout()
	if !root.IsLeaf() || root.Window != wid {
		t.Fatalf("layout root = %+v, want single leaf for %d", root, wid)
	}
}

func TestBufferIDForAndHistory(t *testing.T) {
	s := New(keymap.NewRegistry(), layout.Rect{Width: 80, Height: 24})
	buf := buffer.NewBufferFromString("hello")
	bid, _ := s.OpenBuffer(buf, 80, 24)

	gotID, ok := s.BufferIDFor(buf)
	if !ok || gotID != bid {
		t.Fatalf("BufferIDFor = (%d, %v), want (%d, true)", gotID, ok, bid)
	}
	if s.History(bid) == nil {
		t.Fatal("expected a history coalescer for the opened buffer")
	}
}

func TestKillRingKillYankRotate(t *testing.T) {
	k := NewKillRing()
	if _, ok := k.Yank(); ok {
		t.Fatal("empty ring should not yank")
	}
	k.Kill("first")
	k.Kill("second")
	got, ok := k.Yank()
	if !ok || got != "second" {
		t.Fatalf("Yank = (%q, %v), want (second, true)", got, ok)
	}
	got, ok = k.Rotate()
	if !ok || got != "first" {
		t.Fatalf("Rotate = (%q, %v), want (first, true)", got, ok)
	}
	got, ok = k.Rotate()
	if !ok || got != "second" {
		t.Fatalf("Rotate wraparound = (%q, %v), want (second, true)", got, ok)
	}
}

func TestMacroBeginRecordEndExecute(t *testing.T) {
	m := NewMacroState()
	if m.Phase() != MacroIdle {
		t.Fatal("new macro state should be idle")
	}
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if m.Phase() != MacroRecording {
		t.Fatal("expected recording phase")
	}

	m.End()

	if err := m.Execute(1, func(e key.Event) error { return nil }); err == nil {
		t.Fatal("expected an error executing an empty recording")
	}
}
