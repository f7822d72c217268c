package rope

import "github.com/rivo/uniseg"

// Grapheme describes one extended grapheme cluster within a rope.
type Grapheme struct {
	Start ByteOffset
	End   ByteOffset
	Width int
}

// GraphemeIterator walks a rope cluster by cluster using the Unicode
// text segmentation algorithm, so a "character" always matches what a
// terminal or GUI would render as one glyph cell.
type GraphemeIterator struct {
	text    string
	base    ByteOffset
	state   int
	boundary int
	cur     Grapheme
	done    bool
}

// Graphemes returns an iterator over the grapheme clusters in [start, end).
func Graphemes(r Rope, start, end ByteOffset) *GraphemeIterator {
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return &GraphemeIterator{done: true}
	}
	return &GraphemeIterator{
		text: r.Slice(start, end),
		base: start,
	}
}

// Next advances to the next grapheme cluster, returning false at the end.
func (g *GraphemeIterator) Next() bool {
	if g.done || g.boundary >= len(g.text) {
		g.done = true
		return false
	}

	rest := g.text[g.boundary:]
	cluster, _, width, newState := uniseg.FirstGraphemeClusterInString(rest, g.state)
	g.state = newState

	startOff := g.base + ByteOffset(g.boundary)
	g.boundary += len(cluster)
	g.cur = Grapheme{
		Start: startOff,
		End:   g.base + ByteOffset(g.boundary),
		Width: width,
	}
	return true
}

// Grapheme returns the cluster found by the most recent call to Next.
func (g *GraphemeIterator) Grapheme() Grapheme {
	return g.cur
}

// IsGraphemeBoundary reports whether offset falls on a grapheme cluster
// boundary within r (true for 0, Len(), and any cluster edge in between).
func IsGraphemeBoundary(r Rope, offset ByteOffset) bool {
	if offset == 0 || offset == r.Len() {
		return true
	}
	if offset > r.Len() {
		return false
	}

	// Re-segment from the start of the containing line; grapheme breaks
	// never depend on context more than a few runes back in practice, but
	// scanning from the nearest preceding line start keeps this correct
	// without assuming a bounded lookback window.
	point := r.OffsetToPoint(offset)
	lineStart := r.LineStartOffset(point.Line)
	it := Graphemes(r, lineStart, r.Len())
	for it.Next() {
		c := it.Grapheme()
		if c.Start == offset {
			return true
		}
		if c.Start > offset {
			return false
		}
	}
	return false
}

// NextGraphemeBoundary returns the offset of the cluster boundary after offset.
func NextGraphemeBoundary(r Rope, offset ByteOffset) ByteOffset {
	if offset >= r.Len() {
		return r.Len()
	}
	it := Graphemes(r, offset, r.Len())
	if it.Next() {
		return it.Grapheme().End
	}
	return r.Len()
}

// PrevGraphemeBoundary returns the offset of the cluster boundary before offset.
func PrevGraphemeBoundary(r Rope, offset ByteOffset) ByteOffset {
	if offset == 0 {
		return 0
	}
	point := r.OffsetToPoint(offset)
	lineStart := r.LineStartOffset(point.Line)
	it := Graphemes(r, lineStart, offset)
	prev := lineStart
	for it.Next() {
		prev = it.Grapheme().Start
	}
	return prev
}

// GraphemeColumn returns the number of grapheme clusters between the start
// of the line containing offset and offset itself (the spec's grapheme_column).
func GraphemeColumn(r Rope, offset ByteOffset) uint32 {
	point := r.OffsetToPoint(offset)
	lineStart := r.LineStartOffset(point.Line)
	it := Graphemes(r, lineStart, offset)
	var col uint32
	for it.Next() {
		col++
	}
	return col
}

// OffsetForGraphemeColumn converts a (line, grapheme_column) pair back to a
// byte offset, clamping column to the line's length in clusters.
func OffsetForGraphemeColumn(r Rope, line uint32, column uint32) ByteOffset {
	lineStart := r.LineStartOffset(line)
	lineEnd := r.LineEndOffset(line)
	it := Graphemes(r, lineStart, lineEnd)
	var i uint32
	last := lineStart
	for it.Next() {
		if i == column {
			return it.Grapheme().Start
		}
		last = it.Grapheme().End
		i++
	}
	return last
}
