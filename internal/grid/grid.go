// Package grid is the engine-facing cell grid spec §4.7 describes: a
// double-buffered rectangle of styled cells with incremental diffing.
// It promotes renderer/backend's ScreenBuffer (a front-end-internal
// type) to an engine-level component, so the dispatcher and the
// window/layout packages can compute what changed without reaching
// into a specific front-end's buffer implementation.
//
// The one structural change from ScreenBuffer.ComputeDiff: that method
// emits one DiffChange per dirty cell; Diff here coalesces each dirty
// row into contiguous CellUpdate runs, matching spec §4.7's wire
// format (an ordered sequence of row-scoped updates, not a per-cell
// stream) and cutting the update count on a typical single-character
// edit from O(width) to O(1).
package grid

import (
	"github.com/dshills/keystorm/internal/renderer/core"
)

// CellUpdate is one contiguous run of changed cells within a single
// row, the unit spec §6's poll_redraw/RedrawBatch carries to a
// front-end.
type CellUpdate struct {
	Row      int
	ColStart int
	Cells    []core.Cell
}

// Grid is a double-buffered width×height rectangle of cells: Set*
// calls write the back buffer, Diff reports what differs from the
// front buffer, and Sync commits back to front. Grounded on
// renderer/backend/buffer.go's ScreenBuffer, generalized from a
// terminal-front-end-only type into one the engine itself owns.
type Grid struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	dirty         [][]bool
	fullRedraw    bool
}

// New creates a Grid with the given dimensions, every cell starting
// empty (a space in the default style).
func New(width, height int) *Grid {
	g := &Grid{width: width, height: height, fullRedraw: true}
	g.allocate()
	return g
}

func (g *Grid) allocate() {
	g.front = make([][]core.Cell, g.height)
	g.back = make([][]core.Cell, g.height)
	g.dirty = make([][]bool, g.height)
	for y := 0; y < g.height; y++ {
		g.front[y] = make([]core.Cell, g.width)
		g.back[y] = make([]core.Cell, g.width)
		g.dirty[y] = make([]bool, g.width)
		for x := 0; x < g.width; x++ {
			g.front[y][x] = core.EmptyCell()
			g.back[y][x] = core.EmptyCell()
		}
	}
}

// Resize changes the grid's dimensions, preserving overlapping
// content and forcing a full redraw (the front buffer can no longer be
// trusted to match what a front-end last drew at the old size).
func (g *Grid) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	oldBack, oldW, oldH := g.back, g.width, g.height
	g.width, g.height = width, height
	g.allocate()

	copyH, copyW := min(oldH, height), min(oldW, width)
	for y := 0; y < copyH; y++ {
		for x := 0; x < copyW; x++ {
			g.back[y][x] = oldBack[y][x]
		}
	}
	g.fullRedraw = true
}

// Size returns the grid's current dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// SetCell writes one cell into the back buffer. Out-of-bounds
// coordinates are silently ignored, matching ScreenBuffer.SetCell.
func (g *Grid) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.back[y][x] = cell
	g.dirty[y][x] = true
}

// GetCell returns the back-buffer cell at (x, y), or an empty cell if
// out of bounds.
func (g *Grid) GetCell(x, y int) core.Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return core.EmptyCell()
	}
	return g.back[y][x]
}

// SetLine writes a contiguous run of cells into row y starting at x,
// clipping anything that falls outside the grid.
func (g *Grid) SetLine(x, y int, cells []core.Cell) {
	if y < 0 || y >= g.height {
		return
	}
	for i, cell := range cells {
		col := x + i
		if col >= 0 && col < g.width {
			g.back[y][col] = cell
			g.dirty[y][col] = true
		}
	}
}

// SetString writes s starting at (x, y) in the given style,
// accounting for wide (double-width) runes by writing a continuation
// cell after each one, matching ScreenBuffer.SetString.
func (g *Grid) SetString(x, y int, s string, style core.Style) {
	if y < 0 || y >= g.height {
		return
	}
	col := x
	for _, r := range s {
		if col < 0 {
			col++
			continue
		}
		if col >= g.width {
			break
		}
		width := core.RuneWidth(r)
		g.back[y][col] = core.Cell{Rune: r, Width: width, Style: style}
		g.dirty[y][col] = true
		col++
		if width == 2 && col < g.width {
			g.back[y][col] = core.ContinuationCell()
			g.dirty[y][col] = true
			col++
		}
	}
}

// Fill sets every cell in rect to cell.
func (g *Grid) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := rect.Top; y < rect.Bottom && y < g.height; y++ {
		for x := rect.Left; x < rect.Right && x < g.width; x++ {
			if x >= 0 && y >= 0 {
				g.back[y][x] = cell
				g.dirty[y][x] = true
			}
		}
	}
}

// Clear resets every cell to empty.
func (g *Grid) Clear() {
	empty := core.EmptyCell()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.back[y][x] = empty
			g.dirty[y][x] = true
		}
	}
}

// MarkDirty forces (x, y) into the next Diff even if its cell value is
// unchanged, for cases like a cursor blink where the content is
// identical but the front-end still needs to redraw it.
func (g *Grid) MarkDirty(x, y int) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.dirty[y][x] = true
		g.front[y][x] = core.Cell{Rune: -1} // matches no back cell, so Diff reports it
	}
}

// MarkRegionDirty forces every cell in rect into the next Diff.
func (g *Grid) MarkRegionDirty(rect core.ScreenRect) {
	for y := rect.Top; y < rect.Bottom && y < g.height; y++ {
		for x := rect.Left; x < rect.Right && x < g.width; x++ {
			if x >= 0 && y >= 0 {
				g.dirty[y][x] = true
				g.front[y][x] = core.Cell{Rune: -1}
			}
		}
	}
}

// MarkFullRedraw forces every cell into the next Diff, used after a
// resize or when the dirty tracker's coalesce threshold (spec §4.7)
// trips.
func (g *Grid) MarkFullRedraw() {
	g.fullRedraw = true
}

// IsDirty reports whether Diff would return any updates.
func (g *Grid) IsDirty() bool {
	if g.fullRedraw {
		return true
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.dirty[y][x] {
				return true
			}
		}
	}
	return false
}

// Diff returns the CellUpdate runs needed to bring a front-end's last
// known display in line with the back buffer: one run per maximal
// contiguous stretch of changed cells in each dirty row, in row-major
// order. Returns nil if nothing changed.
func (g *Grid) Diff() []CellUpdate {
	var updates []CellUpdate
	for y := 0; y < g.height; y++ {
		x := 0
		for x < g.width {
			if !g.cellChanged(x, y) {
				x++
				continue
			}
			start := x
			var run []core.Cell
			for x < g.width && g.cellChanged(x, y) {
				run = append(run, g.back[y][x])
				x++
			}
			updates = append(updates, CellUpdate{Row: y, ColStart: start, Cells: run})
		}
	}
	return updates
}

func (g *Grid) cellChanged(x, y int) bool {
	if g.fullRedraw {
		return true
	}
	if !g.dirty[y][x] {
		return false
	}
	return !g.back[y][x].Equals(g.front[y][x])
}

// Sync copies the back buffer to the front buffer and clears dirty
// state. Call once per redraw cycle, after Diff has been consumed.
func (g *Grid) Sync() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.front[y][x] = g.back[y][x]
			g.dirty[y][x] = false
		}
	}
	g.fullRedraw = false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
