package layout

import "github.com/dshills/keystorm/internal/window"

// Tile computes the Rect for every window in the tree given the root
// rectangle, recursively dividing Split nodes by their Ratio.
func Tile(n *Node, root Rect) map[window.ID]Rect {
	out := make(map[window.ID]Rect)
	tileInto(n, root, out)
	return out
}

func tileInto(n *Node, rect Rect, out map[window.ID]Rect) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindLeaf:
		out[n.Window] = rect
	case KindSplit:
		first, second := splitRect(rect, n.Orientation, n.Ratio)
		tileInto(n.First, first, out)
		tileInto(n.Second, second, out)
	}
}

// splitRect divides rect into two by orientation at ratio (the fraction
// given to the first half).
func splitRect(rect Rect, orientation Orientation, ratio float32) (Rect, Rect) {
	if ratio <= 0 {
		ratio = 0.5
	}
	if ratio >= 1 {
		ratio = 0.99
	}

	switch orientation {
	case Vertical: // side by side
		firstW := int(float32(rect.Width) * ratio)
		if firstW < MinWidth {
			firstW = MinWidth
		}
		if rect.Width-firstW < MinWidth {
			firstW = rect.Width - MinWidth
		}
		first := Rect{X: rect.X, Y: rect.Y, Width: firstW, Height: rect.Height}
		second := Rect{X: rect.X + firstW, Y: rect.Y, Width: rect.Width - firstW, Height: rect.Height}
		return first, second
	default: // Horizontal: stacked
		firstH := int(float32(rect.Height) * ratio)
		if firstH < MinHeight {
			firstH = MinHeight
		}
		if rect.Height-firstH < MinHeight {
			firstH = rect.Height - MinHeight
		}
		first := Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: firstH}
		second := Rect{X: rect.X, Y: rect.Y + firstH, Width: rect.Width, Height: rect.Height - firstH}
		return first, second
	}
}

// Fits reports whether rect meets the minimum pane dimensions.
func Fits(rect Rect) bool {
	return rect.Width >= MinWidth && rect.Height >= MinHeight
}
