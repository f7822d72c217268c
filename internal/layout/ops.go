package layout

import (
	"errors"

	"github.com/dshills/keystorm/internal/window"
)

// ErrLastWindow is returned when an operation would close the only
// remaining window in the tree.
var ErrLastWindow = errors.New("layout: cannot close the last window")

// ErrWindowNotFound is returned when id does not name a leaf in the tree.
var ErrWindowNotFound = errors.New("layout: window not found")

// ErrTooSmall is returned when a split or resize would leave a pane
// smaller than MinWidth/MinHeight.
var ErrTooSmall = errors.New("layout: resulting pane would be smaller than the minimum size")

// Split replaces the leaf for target with a Split node, putting the
// existing window first and newID second, dividing target's current
// rectangle in half. rootRect is the tree's current screen rectangle, needed
// to verify the resulting halves still meet the minimum size.
func Split(root *Node, rootRect Rect, target window.ID, newID window.ID, orientation Orientation) (*Node, error) {
	leaf, _, ok := Find(root, target)
	if !ok {
		return root, ErrWindowNotFound
	}

	rects := Tile(root, rootRect)
	targetRect := rects[target]
	first, second := splitRect(targetRect, orientation, 0.5)
	if !Fits(first) || !Fits(second) {
		return root, ErrTooSmall
	}

	replacement := &Node{
		Kind:        KindSplit,
		Orientation: orientation,
		Ratio:       0.5,
		First:       NewLeaf(leaf.Window),
		Second:      NewLeaf(newID),
	}

	return replaceNode(root, leaf, replacement), nil
}

// replaceNode returns a new tree with old replaced by replacement.
// old is compared by pointer identity.
func replaceNode(root, old, replacement *Node) *Node {
	if root == old {
		return replacement
	}
	if root == nil || root.Kind == KindLeaf {
		return root
	}
	return &Node{
		Kind:        root.Kind,
		Orientation: root.Orientation,
		Ratio:       root.Ratio,
		First:       replaceNode(root.First, old, replacement),
		Second:      replaceNode(root.Second, old, replacement),
	}
}

// Close removes the leaf for target from the tree, collapsing its parent
// Split into the sibling subtree. Returns ErrLastWindow if target is the
// only window left.
func Close(root *Node, target window.ID) (*Node, error) {
	if root == nil {
		return root, ErrWindowNotFound
	}
	if root.Kind == KindLeaf {
		if root.Window == target {
			return root, ErrLastWindow
		}
		return root, ErrWindowNotFound
	}

	newRoot, _, err := closeIn(root, target)
	return newRoot, err
}

func closeIn(n *Node, target window.ID) (*Node, bool, error) {
	if n.Kind == KindLeaf {
		if n.Window == target {
			return nil, true, nil
		}
		return n, false, nil
	}

	if n.First.IsLeaf() && n.First.Window == target {
		return n.Second, true, nil
	}
	if n.Second.IsLeaf() && n.Second.Window == target {
		return n.First, true, nil
	}

	if newFirst, removed, err := closeIn(n.First, target); err != nil && err != ErrWindowNotFound {
		return n, false, err
	} else if removed {
		return &Node{Kind: KindSplit, Orientation: n.Orientation, Ratio: n.Ratio, First: newFirst, Second: n.Second}, true, nil
	}
	if newSecond, removed, err := closeIn(n.Second, target); err != nil {
		return n, false, err
	} else if removed {
		return &Node{Kind: KindSplit, Orientation: n.Orientation, Ratio: n.Ratio, First: n.First, Second: newSecond}, true, nil
	}
	return n, false, ErrWindowNotFound
}

// Only collapses the tree to a single leaf for target, discarding every
// other window (the caller is responsible for actually closing those
// buffers/windows elsewhere).
func Only(root *Node, target window.ID) (*Node, error) {
	if _, _, ok := Find(root, target); !ok {
		return root, ErrWindowNotFound
	}
	return NewLeaf(target), nil
}

// FocusNext returns the window ID that follows current in the tree's
// left-to-right/top-to-bottom leaf order, wrapping around.
func FocusNext(root *Node, current window.ID) window.ID {
	leaves := root.Leaves()
	if len(leaves) == 0 {
		return current
	}
	for i, id := range leaves {
		if id == current {
			return leaves[(i+1)%len(leaves)]
		}
	}
	return leaves[0]
}

// FocusPrev returns the window ID that precedes current, wrapping around.
func FocusPrev(root *Node, current window.ID) window.ID {
	leaves := root.Leaves()
	if len(leaves) == 0 {
		return current
	}
	for i, id := range leaves {
		if id == current {
			return leaves[(i-1+len(leaves))%len(leaves)]
		}
	}
	return leaves[0]
}

// Grow increases target's share of its parent Split by delta (0..1),
// clamped so neither side goes below the minimum size; Shrink is Grow
// with a negated delta.
func Grow(root *Node, rootRect Rect, target window.ID, delta float32) (*Node, error) {
	_, parent, ok := Find(root, target)
	if !ok {
		return root, ErrWindowNotFound
	}
	if parent == nil {
		return root, nil // sole window, nothing to resize against
	}

	growingFirst := parent.First.IsLeaf() && parent.First.Window == target ||
		(!parent.First.IsLeaf() && containsWindow(parent.First, target))

	newRatio := parent.Ratio
	if growingFirst {
		newRatio += delta
	} else {
		newRatio -= delta
	}
	if newRatio < 0.1 {
		newRatio = 0.1
	}
	if newRatio > 0.9 {
		newRatio = 0.9
	}

	replacement := &Node{
		Kind:        parent.Kind,
		Orientation: parent.Orientation,
		Ratio:       newRatio,
		First:       parent.First,
		Second:      parent.Second,
	}

	newRoot := replaceNode(root, parent, replacement)

	check := Tile(newRoot, rootRect)
	for _, r := range check {
		if !Fits(r) {
			return root, ErrTooSmall
		}
	}
	return newRoot, nil
}

// Shrink decreases target's share of its parent Split by delta (0..1).
func Shrink(root *Node, rootRect Rect, target window.ID, delta float32) (*Node, error) {
	return Grow(root, rootRect, target, -delta)
}

func containsWindow(n *Node, id window.ID) bool {
	for _, l := range n.Leaves() {
		if l == id {
			return true
		}
	}
	return false
}
