package renderer

import (
	"sync"
	"time"

	"github.com/dshills/keystorm/internal/dispatcher/handlers/search"
	"github.com/dshills/keystorm/internal/renderer/backend"
	"github.com/dshills/keystorm/internal/renderer/core"
	"github.com/dshills/keystorm/internal/renderer/cursor"
	"github.com/dshills/keystorm/internal/renderer/gutter"
	"github.com/dshills/keystorm/internal/renderer/layout"
	"github.com/dshills/keystorm/internal/renderer/selection"
	"github.com/dshills/keystorm/internal/renderer/style"
	"github.com/dshills/keystorm/internal/renderer/viewport"
)

// BufferReader provides read access to buffer content.
// This interface abstracts the engine for rendering.
type BufferReader interface {
	// LineText returns the text content of a line (0-indexed).
	LineText(line uint32) string

	// LineCount returns the total number of lines in the buffer.
	LineCount() uint32

	// TabWidth returns the configured tab width.
	TabWidth() int
}

// CursorProvider provides cursor and selection information.
type CursorProvider interface {
	// PrimaryCursor returns the primary cursor position (line, column).
	PrimaryCursor() (line uint32, col uint32)

	// Selections returns all active selections for rendering.
	Selections() []Selection
}

// Selection represents a selection range for rendering.
type Selection struct {
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
	IsPrimary bool
}

// HighlightProvider provides syntax highlighting information.
type HighlightProvider interface {
	// HighlightsForLine returns style spans for the given line.
	// Returns spans sorted by start position.
	HighlightsForLine(line uint32) []StyleSpan

	// InvalidateLines invalidates cached highlighting for a range.
	InvalidateLines(startLine, endLine uint32)
}

// Options configures the renderer.
type Options struct {
	// Display
	ShowLineNumbers bool // Show line numbers in gutter
	LineNumberWidth int  // Width of line number column (0 = auto)
	ShowGutter      bool // Show gutter (line numbers, signs, etc.)
	WordWrap        bool // Enable word wrap
	WrapAtColumn    int  // Column to wrap at (0 = window width)

	// Scrolling
	ScrollMarginTop    int  // Lines to keep above cursor
	ScrollMarginBottom int  // Lines to keep below cursor
	ScrollMarginLeft   int  // Columns to keep left of cursor
	ScrollMarginRight  int  // Columns to keep right of cursor
	SmoothScroll       bool // Enable smooth scroll animation

	// Cursor
	CursorStyle     backend.CursorStyle // Cursor appearance
	CursorBlink     bool                // Enable cursor blink
	CursorBlinkRate time.Duration       // Blink rate

	// Performance
	MaxFPS           int  // Maximum frames per second
	LazyHighlighting bool // Defer highlighting for off-screen lines
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers:    true,
		LineNumberWidth:    0, // Auto-calculate
		ShowGutter:         true,
		WordWrap:           false,
		WrapAtColumn:       0, // Window width
		ScrollMarginTop:    5,
		ScrollMarginBottom: 5,
		ScrollMarginLeft:   10,
		ScrollMarginRight:  10,
		SmoothScroll:       true,
		CursorStyle:        backend.CursorBlock,
		CursorBlink:        true,
		CursorBlinkRate:    500 * time.Millisecond,
		MaxFPS:             60,
		LazyHighlighting:   true,
	}
}

// Renderer is the main rendering facade.
// It coordinates all rendering components to display buffer content.
type Renderer struct {
	mu sync.RWMutex

	// Configuration
	opts Options

	// Backend and screen
	backend backend.Backend
	width   int
	height  int

	// Content providers
	bufReader  BufferReader
	cursorProv CursorProvider
	hlProvider HighlightProvider

	// Components
	viewport  *viewport.Viewport
	lineCache *layout.LineCache
	layout    *layout.LayoutEngine

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration
	frameCount   uint64
	needsRedraw  bool
	fullRedraw   bool

	// Gutter state
	gutterWidth int
	gutterPkg   *gutter.Gutter

	// Selection and style composition
	selMgr        *selection.Manager
	styleResolver *style.Resolver
	defaultStyles style.DefaultStyles

	// Cursor blink animation
	cursorBlink *cursor.Renderer
}

// New creates a new renderer with the given backend and options.
func New(backend backend.Backend, opts Options) *Renderer {
	width, height := backend.Size()

	layoutEngine := layout.NewLayoutEngine(4)            // Default tab width
	lineCache := layout.NewLineCache(layoutEngine, 1000) // Cache up to 1000 lines

	gutterCfg := gutter.DefaultConfig()
	gutterCfg.ShowLineNumbers = opts.ShowLineNumbers
	gutterCfg.LineNumberWidth = opts.LineNumberWidth

	r := &Renderer{
		opts:          opts,
		backend:       backend,
		width:         width,
		height:        height,
		viewport:      viewport.NewViewport(width, height),
		lineCache:     lineCache,
		layout:        layoutEngine,
		lastFrame:     time.Now(),
		minFrameTime:  time.Second / time.Duration(opts.MaxFPS),
		needsRedraw:   true,
		fullRedraw:    true,
		gutterPkg:     gutter.New(gutterCfg),
		selMgr:        selection.NewManager(),
		styleResolver: style.NewResolver(),
		defaultStyles: style.NewDefaultStyles(),
		cursorBlink: cursor.New(cursor.Config{
			Style:          cursorStyleFromBackend(opts.CursorStyle),
			BlinkEnabled:   opts.CursorBlink,
			BlinkRate:      opts.CursorBlinkRate,
			PrimaryColor:   core.ColorDefault,
			SecondaryColor: core.ColorGray,
			BlinkOnType:    true,
		}),
	}

	// Configure viewport margins
	r.viewport.SetMargins(
		opts.ScrollMarginTop,
		opts.ScrollMarginBottom,
		opts.ScrollMarginLeft,
		opts.ScrollMarginRight,
	)
	r.viewport.SetSmoothScroll(opts.SmoothScroll)

	// Register resize handler
	backend.OnResize(func(w, h int) {
		r.Resize(w, h)
	})

	return r
}

// SetBuffer sets the buffer reader for content.
func (r *Renderer) SetBuffer(buf BufferReader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bufReader = buf
	if buf != nil {
		r.layout.SetTabWidth(buf.TabWidth())
		r.viewport.SetMaxLine(buf.LineCount())
	}
	r.lineCache.InvalidateAll()
	r.needsRedraw = true
	r.fullRedraw = true
}

// SetCursorProvider sets the cursor provider.
func (r *Renderer) SetCursorProvider(cp CursorProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursorProv = cp
	r.needsRedraw = true
}

// SetHighlightProvider sets the syntax highlighting provider.
func (r *Renderer) SetHighlightProvider(hp HighlightProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hlProvider = hp
	r.lineCache.InvalidateAll()
	r.needsRedraw = true
	r.fullRedraw = true
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.viewport.Resize(width, height)
	r.needsRedraw = true
	r.fullRedraw = true
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// MarkFullRedraw marks the renderer as needing a complete redraw.
func (r *Renderer) MarkFullRedraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
	r.fullRedraw = true
}

// InvalidateLine marks a specific line as needing redraw.
func (r *Renderer) InvalidateLine(line uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lineCache.Invalidate(line)
	r.needsRedraw = true
}

// InvalidateLines marks a range of lines as needing redraw.
func (r *Renderer) InvalidateLines(startLine, endLine uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lineCache.InvalidateRange(startLine, endLine)
	r.needsRedraw = true
}

// Viewport returns the viewport for external manipulation.
func (r *Renderer) Viewport() *viewport.Viewport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewport
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts
}

// SetOptions updates the renderer options.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.opts = opts
	r.minFrameTime = time.Second / time.Duration(opts.MaxFPS)
	r.viewport.SetMargins(
		opts.ScrollMarginTop,
		opts.ScrollMarginBottom,
		opts.ScrollMarginLeft,
		opts.ScrollMarginRight,
	)
	r.viewport.SetSmoothScroll(opts.SmoothScroll)
	r.backend.SetCursorStyle(opts.CursorStyle)

	gutterCfg := r.gutterPkg.Config()
	gutterCfg.ShowLineNumbers = opts.ShowLineNumbers
	gutterCfg.LineNumberWidth = opts.LineNumberWidth
	r.gutterPkg.SetConfig(gutterCfg)

	cursorCfg := r.cursorBlink.Config()
	cursorCfg.Style = cursorStyleFromBackend(opts.CursorStyle)
	cursorCfg.BlinkEnabled = opts.CursorBlink
	cursorCfg.BlinkRate = opts.CursorBlinkRate
	r.cursorBlink.SetConfig(cursorCfg)

	r.fullRedraw = true
	r.needsRedraw = true
}

// cursorStyleFromBackend maps a backend cursor style to the cursor
// package's rendering style.
func cursorStyleFromBackend(bs backend.CursorStyle) cursor.Style {
	switch bs {
	case backend.CursorUnderline:
		return cursor.StyleUnderline
	case backend.CursorBar:
		return cursor.StyleBar
	default:
		return cursor.StyleBlock
	}
}

// NeedsRedraw returns true if the renderer needs to redraw.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.needsRedraw
}

// Update advances animations and prepares for rendering.
// Returns true if the display needs updating.
func (r *Renderer) Update(dt float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	moved := r.viewport.Update(dt)
	if moved {
		r.needsRedraw = true
	}

	if r.cursorBlink.Update(time.Now()) {
		r.needsRedraw = true
	}

	return r.needsRedraw
}

// Render performs a full render cycle.
// Respects frame rate limiting.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Frame rate limiting
	now := time.Now()
	elapsed := now.Sub(r.lastFrame)
	if elapsed < r.minFrameTime {
		return
	}
	r.lastFrame = now

	if !r.needsRedraw {
		return
	}

	r.render()
	r.needsRedraw = false
	r.fullRedraw = false
	r.frameCount++
}

// RenderNow performs an immediate render, ignoring frame rate limiting.
func (r *Renderer) RenderNow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.render()
	r.needsRedraw = false
	r.fullRedraw = false
	r.frameCount++
	r.lastFrame = time.Now()
}

// render performs the actual rendering (must hold lock).
func (r *Renderer) render() {
	if r.bufReader == nil {
		r.renderEmpty()
		return
	}

	// Update max line in viewport
	lineCount := r.bufReader.LineCount()
	r.viewport.SetMaxLine(lineCount)

	r.gutterPkg.SetLineCount(lineCount)
	r.syncSelections()
	if r.cursorProv != nil {
		line, _ := r.cursorProv.PrimaryCursor()
		r.gutterPkg.SetCurrentLine(line)
	}

	// Calculate gutter width
	if r.opts.ShowGutter {
		r.gutterWidth = r.gutterPkg.Width()
	} else {
		r.gutterWidth = 0
	}

	// Update viewport content width
	contentWidth := r.width - r.gutterWidth
	if contentWidth < 1 {
		contentWidth = 1
	}

	// Clear screen if full redraw
	if r.fullRedraw {
		r.backend.Clear()
	}

	// Get visible line range
	startLine, endLine := r.viewport.VisibleLineRange()

	// Render each visible line
	for line := startLine; line <= endLine; line++ {
		screenRow := r.viewport.LineToScreenRow(line)
		if screenRow >= 0 && screenRow < r.height {
			r.renderLine(line, screenRow)
		}
	}

	// Render cursor
	r.renderCursor()

	// Flush to screen
	r.backend.Show()
}

// renderEmpty renders when there's no buffer.
func (r *Renderer) renderEmpty() {
	r.backend.Clear()
	r.backend.HideCursor()
	r.backend.Show()
}

// renderLine renders a single buffer line at the given screen row.
func (r *Renderer) renderLine(line uint32, screenRow int) {
	// Render gutter
	if r.opts.ShowGutter {
		r.renderGutter(line, screenRow)
	}

	// Get line text
	lineCount := r.bufReader.LineCount()
	if line >= lineCount {
		// Clear rest of screen for lines beyond buffer
		r.clearLineContent(screenRow)
		return
	}

	text := r.bufReader.LineText(line)

	// Get layout from cache
	lineLayout := r.lineCache.Get(line, text)

	// Apply syntax highlighting if available
	if r.hlProvider != nil {
		spans := r.hlProvider.HighlightsForLine(line)
		if len(spans) > 0 {
			r.layout.ApplyStyles(lineLayout, spans)
		}
	}

	// Selection and search-match overlays for this line, highest layer last.
	overlaySpans := r.buildLineSpans(line)

	// Render cells
	leftCol := r.viewport.LeftColumn()
	contentWidth := r.width - r.gutterWidth

	for x := 0; x < contentWidth; x++ {
		visCol := leftCol + x
		screenX := r.gutterWidth + x

		var cell Cell
		if visCol >= 0 && visCol < len(lineLayout.Cells) {
			cell = lineLayout.Cells[visCol]
		} else {
			cell = EmptyCell()
		}

		if len(overlaySpans) > 0 {
			cell = r.resolveCellStyle(cell, uint32(visCol), overlaySpans)
		}

		r.backend.SetCell(screenX, screenRow, cell)
	}
}

// renderGutter renders the gutter (line numbers, signs) for a line via
// the gutter package.
func (r *Renderer) renderGutter(line uint32, screenRow int) {
	lineCount := r.bufReader.LineCount()
	cells := r.gutterPkg.RenderLine(line, line < lineCount)

	for x, gc := range cells {
		r.backend.SetCell(x, screenRow, Cell{
			Rune:  gc.Rune,
			Width: 1,
			Style: styleFromGutter(gc.Style),
		})
	}
}

// styleFromGutter maps a gutter cell style to a renderer style.
func styleFromGutter(cs gutter.CellStyle) Style {
	switch cs {
	case gutter.StyleCurrentLine:
		return DefaultStyle().Bold()
	case gutter.StyleDim:
		return DefaultStyle().Dim()
	case gutter.StyleError:
		return NewStyle(ColorRed)
	case gutter.StyleWarning:
		return NewStyle(ColorYellow)
	case gutter.StyleInfo:
		return NewStyle(ColorCyan)
	case gutter.StyleGitAdd:
		return NewStyle(ColorGreen)
	case gutter.StyleGitModify:
		return NewStyle(ColorYellow)
	case gutter.StyleGitDelete:
		return NewStyle(ColorRed)
	default:
		return DefaultStyle()
	}
}

// syncSelections refreshes the selection manager from the cursor provider.
func (r *Renderer) syncSelections() {
	if r.cursorProv == nil {
		r.selMgr.Clear()
		return
	}

	sels := r.cursorProv.Selections()
	r.selMgr.ClearSecondary()
	primarySet := false

	for _, sel := range sels {
		rng := selection.Range{
			Start: selection.Position{Line: sel.StartLine, Column: sel.StartCol},
			End:   selection.Position{Line: sel.EndLine, Column: sel.EndCol},
			Type:  selection.TypeNormal,
		}
		if sel.IsPrimary || !primarySet {
			r.selMgr.SetPrimary(rng)
			primarySet = true
		} else {
			r.selMgr.AddSecondary(rng)
		}
	}
	if !primarySet {
		r.selMgr.Clear()
	}
}

// buildLineSpans collects the selection and search-match style spans that
// apply to a line, in priority order (selection under search, cursor highest
// but applied separately in renderCursor).
func (r *Renderer) buildLineSpans(line uint32) []style.Span {
	b := style.NewSpanBuilder()

	for _, ls := range r.selMgr.SelectionsOnLine(line) {
		end := ls.EndCol
		if ls.SelectToEnd {
			end = ^uint32(0)
		}
		b.AddSelection(ls.StartCol, end, r.defaultStyles.Selection)
	}

	if search.LastMatchValid && search.LastMatchLine == line {
		b.AddSearch(search.LastMatchStartCol, search.LastMatchEndCol, r.defaultStyles.SearchMatch)
	}

	return b.Build()
}

// resolveCellStyle composes a cell's existing style with any overlay spans
// covering its column, using the style resolver.
func (r *Renderer) resolveCellStyle(cell Cell, col uint32, spans []style.Span) Cell {
	r.styleResolver.SetBaseStyle(coreFromStyle(cell.Style))
	cell.Style = styleFromCore(r.styleResolver.Resolve(col, spans))
	return cell
}

// coreFromStyle converts a renderer style to a core style for use with the
// style resolver.
func coreFromStyle(s Style) core.Style {
	return core.Style{
		Foreground: s.Foreground,
		Background: s.Background,
		Attributes: core.Attribute(s.Attributes),
	}
}

// styleFromCore converts a core style back to a renderer style.
func styleFromCore(s core.Style) Style {
	return Style{
		Foreground: s.Foreground,
		Background: s.Background,
		Attributes: Attribute(s.Attributes),
	}
}

// clearLineContent clears the content area of a line.
func (r *Renderer) clearLineContent(screenRow int) {
	empty := EmptyCell()
	for x := r.gutterWidth; x < r.width; x++ {
		r.backend.SetCell(x, screenRow, empty)
	}
}

// renderCursor renders the cursor at the current position.
func (r *Renderer) renderCursor() {
	if r.cursorProv == nil {
		r.backend.HideCursor()
		return
	}

	line, col := r.cursorProv.PrimaryCursor()
	r.cursorBlink.SetPrimaryCursor(line, col)

	// Check if cursor is visible
	if !r.viewport.IsLineVisible(line) {
		r.backend.HideCursor()
		return
	}

	if !r.cursorBlink.IsVisible() {
		r.backend.HideCursor()
		return
	}

	// Get layout for cursor line
	text := r.bufReader.LineText(line)
	lineLayout := r.lineCache.Get(line, text)

	// Convert buffer column to visual column
	visCol := lineLayout.VisualColumn(col)

	// Convert to screen coordinates
	screenRow := r.viewport.LineToScreenRow(line)
	screenCol := visCol - r.viewport.LeftColumn() + r.gutterWidth

	// Check if cursor is in visible area
	if screenCol < r.gutterWidth || screenCol >= r.width {
		r.backend.HideCursor()
		return
	}

	r.backend.ShowCursor(screenCol, screenRow)
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frameCount
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

// GutterWidth returns the current gutter width.
func (r *Renderer) GutterWidth() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gutterWidth
}

// ScrollToLine scrolls to make the given line visible.
func (r *Renderer) ScrollToLine(line uint32, smooth bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport.EnsureLineVisible(line, smooth)
	r.needsRedraw = true
}

// ScrollToReveal scrolls minimally to reveal a position.
func (r *Renderer) ScrollToReveal(line uint32, col int, smooth bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport.ScrollToReveal(line, col, smooth)
	r.needsRedraw = true
}

// CenterOnLine centers the viewport on the given line.
func (r *Renderer) CenterOnLine(line uint32, smooth bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport.CenterOn(line, smooth)
	r.needsRedraw = true
}
