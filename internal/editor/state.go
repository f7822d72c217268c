// Package editor owns the process-wide editor state spec §3
// describes: buffer and window registries, the layout tree, focus,
// the kill ring, macro state, and the dispatch/keymap tables. It is
// the new top-level coordinator, grounded on internal/app.Application's
// constructor pattern but stripped of every IDE-feature wiring
// (project, LSP, plugins, event bus) that sits outside this spec.
package editor

import (
	"github.com/dshills/keystorm/internal/editorconfig"
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/engine/history"
	"github.com/dshills/keystorm/internal/input/keymap"
	"github.com/dshills/keystorm/internal/layout"
	"github.com/dshills/keystorm/internal/resolver"
	"github.com/dshills/keystorm/internal/window"
)

// BufferID identifies a registered buffer. Unlike buffer.Buffer's
// internal RevisionID/version (which identify a point in one buffer's
// edit history), BufferID identifies the buffer itself across its
// whole lifetime.
type BufferID uint64

// bufferEntry pairs a buffer with the undo history and coalescing
// policy that apply to it; every buffer gets its own independent undo
// stack, matching spec §4.2's per-buffer history.
type bufferEntry struct {
	buf       *buffer.Buffer
	coalescer *history.Coalescer
}

// State is the single process-wide editor instance. It is not
// internally locked: spec §5 makes the core single-threaded
// cooperative, driven from one main loop, so State (unlike
// buffer.Buffer and history.History, which keep their teacher-inherited
// mutexes for safe snapshot reads) adds no locking of its own.
type State struct {
	buffers map[BufferID]*bufferEntry
	nextBuf BufferID

	windows map[window.ID]*window.Window
	nextWin window.ID

	layoutRoot *layout.Node
	rootRect   layout.Rect
	focus      window.ID

	killRing   *KillRing
	macroState *MacroState

	registry *keymap.Registry
	resolver *resolver.Resolver
	config   *editorconfig.Config
}

// New creates an empty editor with no buffers or windows; callers
// typically follow with OpenBuffer to create the first window. The
// command table itself (spec §4.6) lives in dispatcher.Dispatcher, not
// here — State is the data the handlers act on, not the routing table.
//
// cfg may be nil, in which case editorconfig.Default() is used; this
// keeps the common case (default config) a two-argument call while
// still letting cmd/keystorm wire an overridden Config through.
func New(registry *keymap.Registry, rootRect layout.Rect, cfg ...*editorconfig.Config) *State {
	var c *editorconfig.Config
	if len(cfg) > 0 && cfg[0] != nil {
		c = cfg[0]
	} else {
		c = editorconfig.Default()
	}
	s := &State{
		buffers:  make(map[BufferID]*bufferEntry),
		windows:  make(map[window.ID]*window.Window),
		rootRect: rootRect,
		killRing: NewKillRingWithCapacity(c.KillRingCapacity),
		registry: registry,
		config:   c,
	}
	s.macroState = NewMacroState()
	s.resolver = resolver.New(registry, keymap.NewLookupContext())
	s.resolver.SetTimeout(c.PrefixTimeout)
	return s
}

// Config returns the immutable configuration this editor was built
// with.
func (s *State) Config() *editorconfig.Config {
	return s.config
}

// Resolver returns the keybinding resolver driving pending_prefix and
// pending_count (spec §3 models these as editor_state fields; they
// live inside Resolver, the component that actually owns the
// accumulation logic, and are surfaced here by delegation rather than
// duplicated).
func (s *State) Resolver() *resolver.Resolver {
	return s.resolver
}

// MacroState returns the recording/playback state.
func (s *State) MacroState() *MacroState {
	return s.macroState
}

// KillRing returns the shared kill ring.
func (s *State) KillRing() *KillRing {
	return s.killRing
}

// Layout returns the current layout root and the rectangle it tiles.
func (s *State) Layout() (*layout.Node, layout.Rect) {
	return s.layoutRoot, s.rootRect
}

// SetLayout replaces the layout root, e.g. after Split/Close/Grow.
func (s *State) SetLayout(root *layout.Node) {
	s.layoutRoot = root
}

// Resize updates the root rectangle (e.g. on terminal resize).
func (s *State) Resize(rect layout.Rect) {
	s.rootRect = rect
}

// Focus returns the window currently receiving input.
func (s *State) Focus() window.ID {
	return s.focus
}

// SetFocus changes the focused window. No-op if id is not registered.
func (s *State) SetFocus(id window.ID) {
	if _, ok := s.windows[id]; ok {
		s.focus = id
	}
}

// FocusedWindow returns the focused window, or nil if none is focused.
func (s *State) FocusedWindow() *window.Window {
	return s.windows[s.focus]
}

// Window returns the window with the given ID, or nil.
func (s *State) Window(id window.ID) *window.Window {
	return s.windows[id]
}

// Windows returns every registered window ID.
func (s *State) Windows() []window.ID {
	ids := make([]window.ID, 0, len(s.windows))
	for id := range s.windows {
		ids = append(ids, id)
	}
	return ids
}

// OpenBuffer registers buf, creates its undo coalescer, opens a window
// onto it sized to fill the whole layout (replacing any existing
// tree), and focuses that window. This is the entry point used for the
// first file a front-end opens.
func (s *State) OpenBuffer(buf *buffer.Buffer, width, height int) (BufferID, window.ID) {
	bid := s.addBuffer(buf)
	wid := s.addWindow(buf, width, height)
	s.layoutRoot = layout.NewLeaf(wid)
	s.focus = wid
	return bid, wid
}

// OpenBufferInWindow registers buf and points an existing window at
// it, for find-file in an already-split layout. No-op (returns 0,
// false) if win is not a registered window.
func (s *State) OpenBufferInWindow(buf *buffer.Buffer, win window.ID) (BufferID, bool) {
	w, ok := s.windows[win]
	if !ok {
		return 0, false
	}
	bid := s.addBuffer(buf)
	w.SetBuffer(buf)
	return bid, true
}

func (s *State) addBuffer(buf *buffer.Buffer) BufferID {
	s.nextBuf++
	id := s.nextBuf
	coalescer := history.NewCoalescer(history.NewHistory(0))
	if s.config != nil {
		coalescer.Timeout = s.config.UndoGroupTimeout
	}
	s.buffers[id] = &bufferEntry{
		buf:       buf,
		coalescer: coalescer,
	}
	return id
}

func (s *State) addWindow(buf *buffer.Buffer, width, height int) window.ID {
	s.nextWin++
	id := s.nextWin
	s.windows[id] = window.New(id, buf, width, height)
	return id
}

// SplitWindow opens a new window over the same buffer as target,
// splits target's layout slot with the given orientation, and focuses
// the new window (split-window-below/split-window-right). The new
// window is first sized to the whole root rectangle; its real size
// comes from the layout tile once the front-end retiles.
func (s *State) SplitWindow(target window.ID, orientation layout.Orientation) (window.ID, error) {
	existing, ok := s.windows[target]
	if !ok {
		return 0, NewCommandError(ErrWindowInvalid, "window %d not found", target)
	}
	wid := s.addWindow(existing.Buffer(), s.rootRect.Width, s.rootRect.Height)
	root, err := layout.Split(s.layoutRoot, s.rootRect, target, wid, orientation)
	if err != nil {
		delete(s.windows, wid)
		return 0, NewCommandError(ErrRangeInvalid, "%v", err)
	}
	s.layoutRoot = root
	s.focus = wid
	return wid, nil
}

// CloseWindow removes win from the layout, collapsing its parent
// split, and, if win had focus, focuses the first remaining window in
// tiling order. Refuses (ErrLastWindow) to close the only remaining
// window.
func (s *State) CloseWindow(win window.ID) error {
	root, err := layout.Close(s.layoutRoot, win)
	if err != nil {
		return NewCommandError(ErrLastWindow, "%v", err)
	}
	s.layoutRoot = root
	delete(s.windows, win)
	if s.focus == win {
		s.focus = root.Leaves()[0]
	}
	return nil
}

// OnlyWindow collapses the layout to just win (delete-other-windows).
func (s *State) OnlyWindow(win window.ID) error {
	root, err := layout.Only(s.layoutRoot, win)
	if err != nil {
		return NewCommandError(ErrWindowInvalid, "%v", err)
	}
	for id := range s.windows {
		if id != win {
			delete(s.windows, id)
		}
	}
	s.layoutRoot = root
	s.focus = win
	return nil
}

// FocusNext moves focus to the next window in tiling order (other-window).
func (s *State) FocusNext() window.ID {
	s.focus = layout.FocusNext(s.layoutRoot, s.focus)
	return s.focus
}

// FocusPrev moves focus to the previous window in tiling order.
func (s *State) FocusPrev() window.ID {
	s.focus = layout.FocusPrev(s.layoutRoot, s.focus)
	return s.focus
}

// Buffer returns the buffer with the given ID, or nil.
func (s *State) Buffer(id BufferID) *buffer.Buffer {
	entry, ok := s.buffers[id]
	if !ok {
		return nil
	}
	return entry.buf
}

// History returns the undo coalescer for the given buffer, or nil.
func (s *State) History(id BufferID) *history.Coalescer {
	entry, ok := s.buffers[id]
	if !ok {
		return nil
	}
	return entry.coalescer
}

// BufferIDFor finds the BufferID owning buf, by identity. Returns
// (0, false) if buf is not registered (spec §4.2's buffer-invalid case).
func (s *State) BufferIDFor(buf *buffer.Buffer) (BufferID, bool) {
	for id, entry := range s.buffers {
		if entry.buf == buf {
			return id, true
		}
	}
	return 0, false
}

// HistoryFor returns the undo coalescer for the buffer shown in win.
func (s *State) HistoryFor(win *window.Window) *history.Coalescer {
	id, ok := s.BufferIDFor(win.Buffer())
	if !ok {
		return nil
	}
	return s.History(id)
}

// EmergencyRescue best-effort saves every dirty buffer to "<path>.rescue"
// (or "untitled.rescue" for a buffer with no recorded path) ahead of an
// unrecoverable-error exit, per spec §7. Save failures are collected
// rather than stopping the sweep, so one bad path doesn't cost the
// rescue of every other open buffer.
func (s *State) EmergencyRescue() []error {
	var errs []error
	for _, entry := range s.buffers {
		if !entry.buf.Dirty() {
			continue
		}
		path := entry.buf.Path()
		if path == "" {
			path = "untitled"
		}
		if _, err := entry.buf.Save(path+".rescue", true); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
