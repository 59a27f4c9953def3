package tilelight

import "testing"

func TestNewGrid(t *testing.T) {
	g := NewGrid(7, 5)
	if g.Width() != 7 || g.Height() != 5 {
		t.Errorf("dimensions = %dx%d, want 7x5", g.Width(), g.Height())
	}
	if len(g.Cells()) != 35 {
		t.Errorf("len(Cells()) = %d, want 35", len(g.Cells()))
	}
	for i, c := range g.Cells() {
		if c != (Cell{}) {
			t.Fatalf("cell %d not zeroed: %v", i, c)
		}
	}
}

func TestNewGridFrom(t *testing.T) {
	cells := make([]Cell, 6)
	g := NewGridFrom(3, 2, cells)
	if g == nil {
		t.Fatal("NewGridFrom returned nil for matching slice")
	}

	// The grid wraps the slice without copying.
	l := DefaultLayout()
	l.SetChannel(&cells[4], 0, 9, 9, false)
	if g.At(1, 1) != cells[4] {
		t.Error("grid does not share the backing slice")
	}

	if NewGridFrom(3, 3, cells) != nil {
		t.Error("NewGridFrom accepted a slice of the wrong length")
	}
}

func TestGridAtSet(t *testing.T) {
	g := NewGrid(4, 3)
	l := DefaultLayout()

	var c Cell
	l.SetChannel(&c, 0, 1, 2, true)

	g.Set(2, 1, c)
	if got := g.At(2, 1); got != c {
		t.Errorf("At(2, 1) = %v, want %v", got, c)
	}
	if got := g.At(1, 2); got != (Cell{}) {
		t.Errorf("At(1, 2) = %v, want zero cell", got)
	}

	// Out-of-range access is safe.
	oob := []struct{ x, y int }{
		{-1, 0}, {4, 0}, {0, -1}, {0, 3}, {-10, -10}, {100, 100},
	}
	for _, p := range oob {
		g.Set(p.x, p.y, c)
		if got := g.At(p.x, p.y); got != (Cell{}) {
			t.Errorf("At(%d, %d) = %v, want zero cell", p.x, p.y, got)
		}
	}
}

func TestGridCellPointer(t *testing.T) {
	g := NewGrid(3, 3)
	l := DefaultLayout()

	p := g.Cell(1, 2)
	if p == nil {
		t.Fatal("Cell(1, 2) = nil inside the grid")
	}
	l.SetChannel(p, 0, 42, 7, false)

	if x, y := l.ChannelCoords(g.At(1, 2), 0); x != 42 || y != 7 {
		t.Errorf("in-place encode not visible through At: (%d, %d)", x, y)
	}

	if g.Cell(-1, 0) != nil || g.Cell(3, 0) != nil || g.Cell(0, 3) != nil {
		t.Error("Cell returned a pointer for out-of-range coordinates")
	}
}

// TestGridCellIndex verifies the position-to-index map: each coordinate
// truncates toward zero and the linear index is x + y*width.
func TestGridCellIndex(t *testing.T) {
	g := NewGrid(4, 3)

	tests := []struct {
		name   string
		pos    Vec2
		expect int
	}{
		{"origin", V2(0, 0), 0},
		{"cell center", V2(0.5, 0.5), 0},
		{"just inside first cell", V2(0.999, 0.999), 0},
		{"second column", V2(1.0, 0.5), 1},
		{"high fraction stays in cell", V2(1.9, 0.5), 1},
		{"second row", V2(0.5, 1.5), 4},
		{"interior", V2(2.5, 1.5), 6},
		{"last cell", V2(3.999, 2.999), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.CellIndex(tt.pos); got != tt.expect {
				t.Errorf("CellIndex(%v) = %d, want %d", tt.pos, got, tt.expect)
			}
		})
	}
}

func TestGridCellAt(t *testing.T) {
	g := NewGrid(2, 2)
	l := DefaultLayout()

	l.SetChannel(g.Cell(1, 0), 0, 10, 0, false)
	l.SetChannel(g.Cell(0, 1), 0, 0, 10, false)

	if g.CellAt(V2(1.5, 0.5)) != g.At(1, 0) {
		t.Error("CellAt(1.5, 0.5) did not return cell (1, 0)")
	}
	if g.CellAt(V2(0.25, 1.75)) != g.At(0, 1) {
		t.Error("CellAt(0.25, 1.75) did not return cell (0, 1)")
	}
}
