package grid

import (
	"testing"

	"github.com/dshills/keystorm/internal/renderer/core"
)

func TestNewGridStartsFullyDirty(t *testing.T) {
	g := New(10, 5)
	if !g.IsDirty() {
		t.Fatal("a freshly created grid should report dirty until the first Sync")
	}
	updates := g.Diff()
	if len(updates) != 5 {
		t.Fatalf("got %d row updates, want 5 (one full-width run per row)", len(updates))
	}
	for _, u := range updates {
		if len(u.Cells) != 10 {
			t.Errorf("row %d: got %d cells, want 10", u.Row, len(u.Cells))
		}
	}
}

func TestSyncClearsDirtyState(t *testing.T) {
	g := New(4, 2)
	g.Sync()
	if g.IsDirty() {
		t.Fatal("grid should be clean immediately after Sync")
	}
	if diff := g.Diff(); diff != nil {
		t.Errorf("Diff() = %+v, want nil after Sync", diff)
	}
}

func TestSetCellProducesSingleCellRun(t *testing.T) {
	g := New(10, 3)
	g.Sync()

	g.SetCell(4, 1, core.NewCell('x'))
	updates := g.Diff()
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(updates))
	}
	u := updates[0]
	if u.Row != 1 || u.ColStart != 4 || len(u.Cells) != 1 || u.Cells[0].Rune != 'x' {
		t.Errorf("unexpected update %+v", u)
	}
}

func TestAdjacentSetCellsCoalesceIntoOneRun(t *testing.T) {
	g := New(10, 1)
	g.Sync()

	g.SetCell(2, 0, core.NewCell('a'))
	g.SetCell(3, 0, core.NewCell('b'))
	g.SetCell(4, 0, core.NewCell('c'))

	updates := g.Diff()
	if len(updates) != 1 {
		t.Fatalf("got %d runs, want 1 coalesced run for 3 adjacent cells", len(updates))
	}
	if updates[0].ColStart != 2 || len(updates[0].Cells) != 3 {
		t.Errorf("unexpected run %+v", updates[0])
	}
}

func TestNonAdjacentSetCellsProduceSeparateRuns(t *testing.T) {
	g := New(10, 1)
	g.Sync()

	g.SetCell(1, 0, core.NewCell('a'))
	g.SetCell(7, 0, core.NewCell('b'))

	updates := g.Diff()
	if len(updates) != 2 {
		t.Fatalf("got %d runs, want 2 separate runs", len(updates))
	}
}

func TestSettingSameValueIsNotDirty(t *testing.T) {
	g := New(5, 1)
	cell := core.NewCell('z')
	g.SetCell(0, 0, cell)
	g.Sync()

	// Re-setting the identical value marks the cell dirty, but Diff
	// should recognize the content is unchanged and skip it.
	g.SetCell(0, 0, cell)
	if diff := g.Diff(); diff != nil {
		t.Errorf("Diff() = %+v, want nil for an unchanged cell value", diff)
	}
}

func TestMarkDirtyForcesRedrawEvenIfUnchanged(t *testing.T) {
	g := New(5, 1)
	cell := core.NewCell('z')
	g.SetCell(0, 0, cell)
	g.Sync()

	g.MarkDirty(0, 0)
	updates := g.Diff()
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1 after MarkDirty", len(updates))
	}
}

func TestResizePreservesOverlapAndForcesFullRedraw(t *testing.T) {
	g := New(4, 4)
	g.SetCell(1, 1, core.NewCell('p'))
	g.Sync()

	g.Resize(6, 2)
	w, h := g.Size()
	if w != 6 || h != 2 {
		t.Fatalf("Size() = (%d, %d), want (6, 2)", w, h)
	}
	if !g.IsDirty() {
		t.Fatal("resize should force a full redraw")
	}
	if got := g.GetCell(1, 1); got.Rune != 'p' {
		t.Errorf("GetCell(1,1) = %+v, want preserved 'p' cell", got)
	}
}

func TestClearMarksEveryCellDirty(t *testing.T) {
	g := New(3, 3)
	g.Fill(core.ScreenRect{Top: 0, Left: 0, Bottom: 3, Right: 3}, core.NewCell('x'))
	g.Sync()
	g.Clear()
	updates := g.Diff()
	if len(updates) != 3 {
		t.Fatalf("got %d row updates after Clear, want 3", len(updates))
	}
}

func TestSetStringWritesContinuationCellForWideRune(t *testing.T) {
	g := New(5, 1)
	g.Sync()
	g.SetString(0, 0, "世", core.DefaultStyle())

	if got := g.GetCell(0, 0); got.Width != 2 {
		t.Errorf("GetCell(0,0).Width = %d, want 2 for a wide rune", got.Width)
	}
	if got := g.GetCell(1, 0); !got.IsContinuation() {
		t.Errorf("GetCell(1,0) = %+v, want a continuation cell", got)
	}
}
