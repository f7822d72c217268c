package resolver

import (
	"testing"
	"time"

	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/keymap"
)

func newTestResolver(t *testing.T, bindings ...[2]string) *Resolver {
	t.Helper()
	reg := keymap.NewRegistry()
	km := keymap.NewKeymap("test")
	for _, b := range bindings {
		km.Add(b[0], b[1])
	}
	if err := reg.Register(km); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return New(reg, nil)
}

func ctrl(r rune) key.Event {
	return key.NewRuneEvent(r, key.ModCtrl)
}

func plain(r rune) key.Event {
	return key.NewRuneEvent(r, key.ModNone)
}

func TestResolveSingleKeyExecutesImmediately(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	out := r.Resolve(ctrl('f'))
	if out.Kind != OutcomeExecute || out.Action != "forward-char" || out.Count != 1 {
		t.Fatalf("out = %+v, want Execute forward-char count=1", out)
	}
}

func TestResolveMultiKeyPrefixThenExecute(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-x><C-s>", "save-buffer"})
	out := r.Resolve(ctrl('x'))
	if out.Kind != OutcomePending {
		t.Fatalf("after C-x: out = %+v, want Pending", out)
	}
	if _, ok := r.Pending(); !ok {
		t.Fatal("expected a pending prefix")
	}
	out = r.Resolve(ctrl('s'))
	if out.Kind != OutcomeExecute || out.Action != "save-buffer" {
		t.Fatalf("after C-x C-s: out = %+v, want Execute save-buffer", out)
	}
	if _, ok := r.Pending(); ok {
		t.Fatal("prefix should be cleared after execute")
	}
}

func TestResolveNoMatchClearsPrefix(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-x><C-s>", "save-buffer"})
	r.Resolve(ctrl('x'))
	out := r.Resolve(ctrl('q')) // not a valid continuation
	if out.Kind != OutcomeNoMatch {
		t.Fatalf("out = %+v, want NoMatch", out)
	}
	if _, ok := r.Pending(); ok {
		t.Fatal("prefix should be cleared after no-match")
	}
}

func TestUniversalArgumentDefaultFour(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	r.Resolve(ctrl('u'))
	out := r.Resolve(ctrl('f'))
	if out.Kind != OutcomeExecute || out.Count != 4 {
		t.Fatalf("Ctrl-U Ctrl-F: out = %+v, want count=4", out)
	}
}

func TestUniversalArgumentRepeatedMultipliesByFour(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	r.Resolve(ctrl('u'))
	r.Resolve(ctrl('u'))
	out := r.Resolve(ctrl('f'))
	if out.Kind != OutcomeExecute || out.Count != 16 {
		t.Fatalf("Ctrl-U Ctrl-U Ctrl-F: out = %+v, want count=16", out)
	}
}

func TestUniversalArgumentWithDigits(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	r.Resolve(ctrl('u'))
	r.Resolve(plain('4'))
	out := r.Resolve(ctrl('f'))
	if out.Kind != OutcomeExecute || out.Count != 4 {
		t.Fatalf("Ctrl-U 4 Ctrl-F: out = %+v, want count=4", out)
	}
}

func TestSelfInsertUnboundPrintable(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	out := r.Resolve(plain('q'))
	if out.Kind != OutcomeSelfInsert || out.Rune != 'q' || out.Count != 1 {
		t.Fatalf("out = %+v, want SelfInsert 'q' count=1", out)
	}
}

func TestSelfInsertHonorsUniversalArgument(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	r.Resolve(ctrl('u'))
	out := r.Resolve(plain('q'))
	if out.Kind != OutcomeSelfInsert || out.Count != 4 {
		t.Fatalf("Ctrl-U q: out = %+v, want SelfInsert count=4", out)
	}
}

func TestTickFlushesStalePrefix(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-x><C-s>", "save-buffer"})
	r.Resolve(ctrl('x'))
	out, flushed := r.Tick(time.Now().Add(PrefixTimeout + time.Millisecond))
	if !flushed || out.Kind != OutcomeTimeout {
		t.Fatalf("Tick after timeout: out=%+v flushed=%v, want Timeout", out, flushed)
	}
	if _, ok := r.Pending(); ok {
		t.Fatal("prefix should be cleared after timeout")
	}
}

func TestTickNoOpWithoutPendingPrefix(t *testing.T) {
	r := newTestResolver(t, [2]string{"<C-f>", "forward-char"})
	_, flushed := r.Tick(time.Now().Add(time.Second))
	if flushed {
		t.Fatal("Tick should be a no-op with no pending prefix")
	}
}
