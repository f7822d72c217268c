// Package main is the entry point for the keystorm editor core: a
// terminal front-end in interactive mode, or a stream-mode substitution
// filter when invoked with -e/-f, per spec §6.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dshills/keystorm/internal/dispatcher"
	hcursor "github.com/dshills/keystorm/internal/dispatcher/handlers/cursor"
	heditor "github.com/dshills/keystorm/internal/dispatcher/handlers/editor"
	hfile "github.com/dshills/keystorm/internal/dispatcher/handlers/file"
	hmacro "github.com/dshills/keystorm/internal/dispatcher/handlers/macro"
	hsearch "github.com/dshills/keystorm/internal/dispatcher/handlers/search"
	hview "github.com/dshills/keystorm/internal/dispatcher/handlers/view"
	hwindow "github.com/dshills/keystorm/internal/dispatcher/handlers/window"
	"github.com/dshills/keystorm/internal/editor"
	"github.com/dshills/keystorm/internal/editorconfig"
	"github.com/dshills/keystorm/internal/engine/buffer"
	"github.com/dshills/keystorm/internal/input/key"
	"github.com/dshills/keystorm/internal/input/keymap"
	"github.com/dshills/keystorm/internal/layout"
	"github.com/dshills/keystorm/internal/obs/log"
	"github.com/dshills/keystorm/internal/renderer"
	"github.com/dshills/keystorm/internal/renderer/backend"
	"github.com/dshills/keystorm/internal/renderer/statusline"
	"github.com/dshills/keystorm/internal/resolver"
	"github.com/dshills/keystorm/internal/streamedit"
	"github.com/dshills/keystorm/internal/window"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes per spec §6: clean exit, usage error, I/O error on
// startup, unrecoverable runtime error.
const (
	exitOK = iota
	exitUsage
	exitIOError
	exitRuntime
)

func main() {
	os.Exit(run())
}

// scriptFlags collects repeated -e occurrences, the standard
// repeatable-flag idiom (flag.Value backed by a slice) this module's
// teacher already used for -config/-workspace single-value flags.
type scriptFlags []string

func (s *scriptFlags) String() string { return strings.Join(*s, "; ") }

func (s *scriptFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func run() int {
	var tui, gui, showHelp, showVersion bool
	var scripts scriptFlags
	var scriptFile string

	flag.BoolVar(&tui, "u", false, "Force interactive terminal mode")
	flag.BoolVar(&tui, "tui", false, "Force interactive terminal mode")
	flag.BoolVar(&gui, "g", false, "Force graphical mode")
	flag.BoolVar(&gui, "gui", false, "Force graphical mode")
	flag.Var(&scripts, "e", "Stream-mode substitution script (may repeat)")
	flag.StringVar(&scriptFile, "f", "", "Read stream-mode script from a file")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keystorm - a headless, multi-modal text-editor core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keystorm [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keystorm file.go                   Open a file in the terminal UI\n")
		fmt.Fprintf(os.Stderr, "  keystorm -e 's/foo/bar/g' file.go  Stream-edit a file to stdout\n")
		fmt.Fprintf(os.Stderr, "  keystorm -f script.sed file.go     Stream-edit using a script file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		return exitOK
	}
	if showVersion {
		fmt.Printf("keystorm %s (commit %s, built %s)\n", version, commit, date)
		return exitOK
	}
	if gui {
		fmt.Fprintln(os.Stderr, "Error: -g/--gui is not built in this configuration")
		return exitUsage
	}
	_ = tui // -u/--tui is the only mode this build offers; accepted for CLI compatibility

	files := flag.Args()

	if len(scripts) > 0 || scriptFile != "" {
		return runStreamMode(scripts, scriptFile, files)
	}

	return runInteractive(files)
}

// runStreamMode implements the `-e`/`-f` stream-mode surface: each
// positional file is rewritten through the parsed substitution script
// and the result is written to stdout (stdin/stdout when no files are
// given), mirroring sed's non-in-place mode.
func runStreamMode(scripts scriptFlags, scriptFile string, files []string) int {
	var script strings.Builder
	for _, s := range scripts {
		script.WriteString(s)
		script.WriteByte('\n')
	}
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading script file %s: %v\n", scriptFile, err)
			return exitIOError
		}
		script.Write(data)
	}

	directives, err := streamedit.ParseScript(script.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	l := log.Default()
	if len(files) == 0 {
		if _, err := streamedit.Run(directives, streamedit.Options{Input: os.Stdin, Output: os.Stdout, Log: l}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitIOError
		}
		return exitOK
	}

	for _, path := range files {
		if _, err := streamedit.Run(directives, streamedit.Options{Path: path, Output: os.Stdout, Log: l}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			return exitIOError
		}
	}
	return exitOK
}

func runInteractive(files []string) int {
	l := log.Default()
	cfg := editorconfig.Default()

	registry := keymap.NewRegistry()
	if err := keymap.LoadDefaults(registry); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading default keymap: %v\n", err)
		return exitRuntime
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return exitIOError
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing terminal: %v\n", err)
		return exitIOError
	}
	defer term.Shutdown()

	// The bottom terminal row is reserved for the status line, so the
	// editor's own layout only ever tiles the rows above it.
	width, height := term.Size()
	contentHeight := height - 1
	st := editor.New(registry, layout.Rect{Width: width, Height: contentHeight}, cfg)

	if err := openFiles(st, files, width, contentHeight); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitIOError
	}

	d := dispatcher.New()
	hcursor.Register(d)
	heditor.Register(d)
	hfile.Register(d)
	hmacro.Register(d)
	hsearch.Register(d)
	hview.Register(d)
	hwindow.Register(d)

	loop := newMainLoop(st, d, term, l, width, height)
	hmacro.Feed = loop.feed

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		loop.requestShutdown()
	}()

	if err := loop.run(); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if rescueErrs := st.EmergencyRescue(); len(rescueErrs) > 0 {
			for _, rerr := range rescueErrs {
				fmt.Fprintf(os.Stderr, "Error: emergency rescue: %v\n", rerr)
			}
		}
		return exitRuntime
	}
	return exitOK
}

// openFiles opens each positional file argument into its own window,
// splitting horizontally for every file after the first, and opens one
// empty scratch buffer when no files were given.
func openFiles(st *editor.State, files []string, width, height int) error {
	if len(files) == 0 {
		st.OpenBuffer(buffer.NewBufferFromString(""), width, height)
		return nil
	}

	var focus window.ID
	for i, path := range files {
		buf, err := loadFileBuffer(path)
		if err != nil {
			return err
		}
		if i == 0 {
			_, wid := st.OpenBuffer(buf, width, height)
			focus = wid
			continue
		}
		wid, err := st.SplitWindow(focus, layout.Horizontal)
		if err != nil {
			return fmt.Errorf("splitting for %s: %w", path, err)
		}
		if _, ok := st.OpenBufferInWindow(buf, wid); !ok {
			return fmt.Errorf("opening %s in new window", path)
		}
		focus = wid
	}
	return nil
}

func loadFileBuffer(path string) (*buffer.Buffer, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		buf := buffer.NewBufferFromString(string(data))
		buf.SetPath(path)
		return buf, nil
	case os.IsNotExist(err):
		buf := buffer.NewBufferFromString("")
		buf.SetPath(path)
		return buf, nil
	default:
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
}

// errQuit is the sentinel mainLoop.run returns for a clean "quit"
// dispatch, the DispatchResult-flavored equivalent of the teacher's
// app.ErrQuit.
var errQuit = errors.New("keystorm: quit")

// mainLoop owns the resolve-then-dispatch pipeline and the per-window
// renderers, grounded on the teacher's Application.eventLoop: an
// input-polling goroutine feeding a buffered channel, drained by a
// select alongside a timer tick (here driving resolver.Resolver.Tick's
// prefix-timeout instead of the teacher's frame-rate ticker).
type mainLoop struct {
	state      *editor.State
	dispatcher *dispatcher.Dispatcher
	term       *backend.Terminal
	log        log.Logger
	status     *statusline.StatusLine

	panes map[window.ID]*pane

	done      chan struct{}
	closeOnce sync.Once
}

// pane pairs one window's Subsurface view onto the terminal with the
// Renderer painting through it, kept across frames so a layout retile
// only needs to reposition the Subsurface, not rebuild the Renderer.
type pane struct {
	sub  *backend.Subsurface
	rend *renderer.Renderer
	buf  *buffer.Buffer
	rect layout.Rect
}

func newMainLoop(st *editor.State, d *dispatcher.Dispatcher, term *backend.Terminal, l log.Logger, width, height int) *mainLoop {
	status := statusline.New()
	status.Resize(width, height)
	return &mainLoop{
		state:      st,
		dispatcher: d,
		term:       term,
		log:        l,
		status:     status,
		panes:      make(map[window.ID]*pane),
		done:       make(chan struct{}),
	}
}

func (m *mainLoop) requestShutdown() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *mainLoop) run() error {
	events := make(chan backend.Event, 64)
	go func() {
		defer close(events)
		for {
			select {
			case <-m.done:
				return
			default:
			}
			ev := m.term.PollEvent()
			select {
			case events <- ev:
			case <-m.done:
				return
			}
		}
	}()

	ticker := time.NewTicker(cfgPrefixTick)
	defer ticker.Stop()

	m.renderAll()
	for {
		select {
		case <-m.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := m.handle(ev); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
			m.renderAll()
		case now := <-ticker.C:
			if outcome, fired := m.state.Resolver().Tick(now); fired {
				if err := m.applyOutcome(outcome); err != nil {
					if errors.Is(err, errQuit) {
						return nil
					}
					return err
				}
				m.renderAll()
			}
		}
	}
}

// cfgPrefixTick is how often the main loop checks whether a pending
// prefix has exceeded editorconfig.Config.PrefixTimeout. It is finer
// than the timeout itself so the expiry notice lands close to the
// configured deadline rather than up to one full tick late.
const cfgPrefixTick = 50 * time.Millisecond

func (m *mainLoop) handle(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		m.state.Resize(layout.Rect{Width: ev.Width, Height: ev.Height - 1})
		m.status.Resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		evt, ok := convertKeyEvent(ev)
		if !ok {
			return nil
		}
		return m.feed(evt)
	default:
		return nil
	}
}

// feed runs one key.Event through the resolve-then-dispatch pipeline.
// It is installed as handlers/macro.Feed, so macro playback replays
// through exactly this path (spec §4.6).
func (m *mainLoop) feed(evt key.Event) error {
	m.status.ClearMessage()
	m.state.MacroState().Record(evt)
	outcome := m.state.Resolver().Resolve(evt)
	return m.applyOutcome(outcome)
}

func (m *mainLoop) applyOutcome(outcome resolver.Outcome) error {
	switch outcome.Kind {
	case resolver.OutcomeExecute:
		result := m.dispatcher.Dispatch(outcome.Action, m.state, outcome.Count)
		return m.applyResult(result)
	case resolver.OutcomeSelfInsert:
		heditor.SelfInsertText = string(outcome.Rune)
		result := m.dispatcher.Dispatch("self-insert-command", m.state, outcome.Count)
		heditor.SelfInsertText = ""
		return m.applyResult(result)
	case resolver.OutcomeNoMatch:
		m.term.Beep()
		m.log.Warn("key sequence not bound")
	case resolver.OutcomeTimeout:
		m.log.Debug("pending prefix timed out")
	}
	return nil
}

func (m *mainLoop) applyResult(result editor.DispatchResult) error {
	switch result.Kind {
	case editor.DispatchExit:
		return errQuit
	case editor.DispatchError:
		m.term.Beep()
		m.log.Warn("command failed", "kind", result.Err)
		m.status.SetMessage(result.Err.String(), statusline.MessageError)
	case editor.DispatchMessage:
		m.log.Info(result.Text)
		m.status.SetMessage(result.Text, statusline.MessageInfo)
	}
	return nil
}

// renderAll retiles the layout, reconciles the pane map against the
// current leaf set, and repaints only what window.Window's dirty
// tracker (renderer/dirty.Tracker, spec §4.7) marked changed since the
// last frame, before a single Show flushes the whole composed frame.
func (m *mainLoop) renderAll() {
	root, rect := m.state.Layout()
	if root == nil {
		m.term.Clear()
		m.term.Show()
		return
	}

	tiles := layout.Tile(root, rect)
	for id := range m.panes {
		if _, ok := tiles[id]; !ok {
			delete(m.panes, id)
		}
	}

	for id, r := range tiles {
		win := m.state.Window(id)
		if win == nil {
			continue
		}
		p, ok := m.panes[id]
		if !ok {
			sub := backend.NewSubsurface(m.term, r.X, r.Y, r.Width, r.Height)
			p = &pane{sub: sub, rend: renderer.New(sub, renderer.DefaultOptions()), rect: r}
			p.rend.SetCursorProvider(windowCursorProvider{win: win})
			m.panes[id] = p
		} else if r != p.rect {
			p.rect = r
			p.sub.SetRect(r.X, r.Y, r.Width, r.Height)
			p.rend.Resize(r.Width, r.Height)
			win.Resize(r.Width, r.Height)
		}

		if p.buf != win.Buffer() {
			p.buf = win.Buffer()
			p.rend.SetBuffer(p.buf)
		}

		if win.NeedsFullRedraw() {
			p.rend.MarkFullRedraw()
		} else {
			for _, line := range win.DirtyRows() {
				p.rend.InvalidateLine(line)
			}
		}
		win.ClearDirty()

		if p.rend.NeedsRedraw() {
			p.rend.RenderNow()
		}
	}

	m.renderStatusLine()
	m.term.Show()
}

// renderStatusLine refreshes the status line from the focused window and
// draws it to the terminal row reserved below the tiled panes.
func (m *mainLoop) renderStatusLine() {
	switch m.state.MacroState().Phase() {
	case editor.MacroRecording:
		m.status.SetMode(statusline.ModeRecord)
	default:
		m.status.SetMode(statusline.ModeEdit)
	}

	if win := m.state.FocusedWindow(); win != nil {
		buf := win.Buffer()
		m.status.SetFilename(buf.Path())
		m.status.SetModified(buf.Dirty())
		m.status.SetTotalLines(buf.LineCount())

		cursor := win.Cursor()
		m.status.SetPosition(cursor.Line+1, cursor.Column+1)
		m.status.SetScrollPercent(int(win.Viewport().ScrollPercent() * 100))
	}

	_, rect := m.state.Layout()
	row := rect.Height
	m.status.Render(m.term, row)
}

// windowCursorProvider adapts window.Window's single point/mark pair to
// renderer.CursorProvider's interface.
type windowCursorProvider struct {
	win *window.Window
}

func (w windowCursorProvider) PrimaryCursor() (line, col uint32) {
	pos := w.win.Cursor()
	return pos.Line, pos.Column
}

func (w windowCursorProvider) Selections() []renderer.Selection {
	mark, ok := w.win.Mark()
	if !ok {
		return nil
	}
	cursor := w.win.Cursor()
	sel := renderer.Selection{
		StartLine: mark.Line, StartCol: mark.Column,
		EndLine: cursor.Line, EndCol: cursor.Column,
		IsPrimary: true,
	}
	if sel.StartLine > sel.EndLine || (sel.StartLine == sel.EndLine && sel.StartCol > sel.EndCol) {
		sel.StartLine, sel.EndLine = sel.EndLine, sel.StartLine
		sel.StartCol, sel.EndCol = sel.EndCol, sel.StartCol
	}
	return []renderer.Selection{sel}
}

// convertKeyEvent translates one tcell-flavored backend.Event into the
// key.Event vocabulary the resolver understands. Non-key events (and
// KeyNone) report ok=false.
func convertKeyEvent(ev backend.Event) (key.Event, bool) {
	if ev.Type != backend.EventKey {
		return key.Event{}, false
	}
	mods := convertMods(ev.Mod)

	if ev.Key >= backend.KeyCtrlA && ev.Key <= backend.KeyCtrlZ {
		r := rune('a' + (ev.Key - backend.KeyCtrlA))
		return key.NewRuneEvent(r, mods|key.ModCtrl), true
	}
	if ev.Key == backend.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods|key.ModCtrl), true
	}
	if ev.Key == backend.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods), true
	}
	if special, ok := specialKeys[ev.Key]; ok {
		return key.NewSpecialEvent(special, mods), true
	}
	return key.Event{}, false
}

var specialKeys = map[backend.Key]key.Key{
	backend.KeyEscape:    key.KeyEscape,
	backend.KeyEnter:     key.KeyEnter,
	backend.KeyTab:       key.KeyTab,
	backend.KeyBackspace: key.KeyBackspace,
	backend.KeyDelete:    key.KeyDelete,
	backend.KeyInsert:    key.KeyInsert,
	backend.KeyHome:      key.KeyHome,
	backend.KeyEnd:       key.KeyEnd,
	backend.KeyPageUp:    key.KeyPageUp,
	backend.KeyPageDown:  key.KeyPageDown,
	backend.KeyUp:        key.KeyUp,
	backend.KeyDown:      key.KeyDown,
	backend.KeyLeft:      key.KeyLeft,
	backend.KeyRight:     key.KeyRight,
	backend.KeyF1:        key.KeyF1,
	backend.KeyF2:        key.KeyF2,
	backend.KeyF3:        key.KeyF3,
	backend.KeyF4:        key.KeyF4,
	backend.KeyF5:        key.KeyF5,
	backend.KeyF6:        key.KeyF6,
	backend.KeyF7:        key.KeyF7,
	backend.KeyF8:        key.KeyF8,
	backend.KeyF9:        key.KeyF9,
	backend.KeyF10:       key.KeyF10,
	backend.KeyF11:       key.KeyF11,
	backend.KeyF12:       key.KeyF12,
}

func convertMods(m backend.ModMask) key.Modifier {
	var mods key.Modifier
	if m.Has(backend.ModShift) {
		mods |= key.ModShift
	}
	if m.Has(backend.ModCtrl) {
		mods |= key.ModCtrl
	}
	if m.Has(backend.ModAlt) {
		mods |= key.ModAlt
	}
	if m.Has(backend.ModMeta) {
		mods |= key.ModMeta
	}
	return mods
}
