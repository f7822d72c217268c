package buffer

import "github.com/dshills/keystorm/internal/engine/rope"

// GraphemeColumn returns the number of grapheme clusters between the
// start of offset's line and offset itself.
func (b *Buffer) GraphemeColumn(offset ByteOffset) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return rope.GraphemeColumn(b.rope, rope.ByteOffset(offset))
}

// OffsetForGraphemeColumn converts a (line, grapheme column) pair to a
// byte offset, clamping column to the line's cluster count.
func (b *Buffer) OffsetForGraphemeColumn(line, column uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(rope.OffsetForGraphemeColumn(b.rope, line, column))
}

// LineGraphemeCount returns the number of grapheme clusters on a line.
func (b *Buffer) LineGraphemeCount(line uint32) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start := b.rope.LineStartOffset(line)
	end := b.rope.LineEndOffset(line)
	return rope.GraphemeColumn(b.rope, end) - rope.GraphemeColumn(b.rope, start)
}

// IsGraphemeBoundary reports whether offset lies on a grapheme cluster
// boundary.
func (b *Buffer) IsGraphemeBoundary(offset ByteOffset) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return rope.IsGraphemeBoundary(b.rope, rope.ByteOffset(offset))
}

// NextGraphemeBoundary returns the offset of the next grapheme boundary
// at or after offset.
func (b *Buffer) NextGraphemeBoundary(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(rope.NextGraphemeBoundary(b.rope, rope.ByteOffset(offset)))
}

// PrevGraphemeBoundary returns the offset of the previous grapheme
// boundary at or before offset.
func (b *Buffer) PrevGraphemeBoundary(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(rope.PrevGraphemeBoundary(b.rope, rope.ByteOffset(offset)))
}

// VisualColumn maps a byte offset within a line to a screen column,
// expanding tabs at tabWidth stops and counting each grapheme cluster's
// real display width (1 or 2 for wide/CJK clusters).
func (b *Buffer) VisualColumn(offset ByteOffset, tabWidth int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if tabWidth < 1 {
		tabWidth = 1
	}
	point := b.rope.OffsetToPoint(rope.ByteOffset(offset))
	lineStart := b.rope.LineStartOffset(point.Line)

	col := 0
	it := rope.Graphemes(b.rope, lineStart, rope.ByteOffset(offset))
	for it.Next() {
		g := it.Grapheme()
		if g.End-g.Start == 1 {
			if bt, ok := b.rope.ByteAt(g.Start); ok && bt == '\t' {
				col += tabWidth - (col % tabWidth)
				continue
			}
		}
		w := g.Width
		if w <= 0 {
			w = 1
		}
		col += w
	}
	return col
}
