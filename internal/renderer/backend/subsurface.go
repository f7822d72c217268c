package backend

import "github.com/dshills/keystorm/internal/renderer/core"

// Subsurface confines drawing to one sub-rectangle of an underlying
// Backend. renderer.Renderer's facade assumes it owns the whole
// screen (it calls Size() once at construction and addresses cells
// from (0,0)); Subsurface lets that facade be reused unmodified for
// each pane of a layout.Node split, by translating local (0,0)-origin
// coordinates into the parent Backend's coordinate space and clipping
// anything outside its bounds.
type Subsurface struct {
	parent              Backend
	x, y, width, height int
}

// NewSubsurface returns a Backend view onto parent confined to the
// rectangle (x, y, width, height) in parent's coordinates.
func NewSubsurface(parent Backend, x, y, width, height int) *Subsurface {
	return &Subsurface{parent: parent, x: x, y: y, width: width, height: height}
}

func (s *Subsurface) Init() error { return nil }
func (s *Subsurface) Shutdown()   {}

func (s *Subsurface) Size() (int, int) { return s.width, s.height }

// SetRect repositions and resizes the pane this Subsurface views,
// letting a caller reuse one Subsurface (and the Renderer built on it)
// across layout retiles instead of rebuilding both every frame.
func (s *Subsurface) SetRect(x, y, width, height int) {
	s.x, s.y, s.width, s.height = x, y, width, height
}

// OnResize is a no-op: a pane's size changes only when the layout tree
// retiles it, driven top-down from the real Terminal's resize handler,
// never bottom-up from a pane believing itself resized.
func (s *Subsurface) OnResize(callback func(width, height int)) {}

func (s *Subsurface) SetCell(x, y int, cell core.Cell) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.parent.SetCell(s.x+x, s.y+y, cell)
}

func (s *Subsurface) GetCell(x, y int) core.Cell {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return core.EmptyCell()
	}
	return s.parent.GetCell(s.x+x, s.y+y)
}

func (s *Subsurface) Fill(rect core.ScreenRect, cell core.Cell) {
	for row := rect.Top; row < rect.Bottom && row < s.height; row++ {
		for col := rect.Left; col < rect.Right && col < s.width; col++ {
			if col >= 0 && row >= 0 {
				s.parent.SetCell(s.x+col, s.y+row, cell)
			}
		}
	}
}

func (s *Subsurface) Clear() {
	s.Fill(core.ScreenRect{Top: 0, Left: 0, Bottom: s.height, Right: s.width}, core.EmptyCell())
}

// Show is a no-op: the parent Backend's single Show call after every
// pane has drawn is what actually flushes the frame.
func (s *Subsurface) Show() {}

func (s *Subsurface) ShowCursor(x, y int) {
	if x >= 0 && y >= 0 && x < s.width && y < s.height {
		s.parent.ShowCursor(s.x+x, s.y+y)
	}
}

func (s *Subsurface) HideCursor() { s.parent.HideCursor() }

func (s *Subsurface) SetCursorStyle(style CursorStyle) { s.parent.SetCursorStyle(style) }

func (s *Subsurface) PollEvent() Event      { return s.parent.PollEvent() }
func (s *Subsurface) PostEvent(event Event) { s.parent.PostEvent(event) }
func (s *Subsurface) HasTrueColor() bool    { return s.parent.HasTrueColor() }
func (s *Subsurface) Beep()                 { s.parent.Beep() }
func (s *Subsurface) EnableMouse()          {}
func (s *Subsurface) DisableMouse()         {}
func (s *Subsurface) EnablePaste()          {}
func (s *Subsurface) DisablePaste()         {}
func (s *Subsurface) Suspend() error        { return nil }
func (s *Subsurface) Resume() error         { return nil }
