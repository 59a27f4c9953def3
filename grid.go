package tilelight

// Grid is a rectangular field of cells in row-major order, the layout the
// compositing core and the GPU kernel both index directly.
//
// A grid is read-only for the duration of a render pass. Nothing in this
// package mutates a grid except the Set* helpers, which are intended for
// the producer side between passes.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a zeroed grid with the given dimensions.
// All cells start with an empty status word: not visible, no channels.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// NewGridFrom wraps existing cell data as a grid without copying.
// The slice must hold exactly width*height cells in row-major order;
// NewGridFrom returns nil when it does not. The caller keeps ownership of
// the backing slice and must not mutate it while a pass is running.
func NewGridFrom(width, height int, cells []Cell) *Grid {
	if len(cells) != width*height {
		return nil
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// Cells returns the backing cell slice in row-major order.
// Backends use this to upload the grid as a single storage buffer.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// At returns the cell at integer coordinates (x, y).
// Out-of-range coordinates return the zero cell.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Cell{}
	}
	return g.cells[x+y*g.width]
}

// Set replaces the cell at integer coordinates (x, y).
// Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[x+y*g.width] = c
}

// Cell returns a pointer to the cell at (x, y) for in-place encoding with
// the Layout helpers. Out-of-range coordinates return nil.
func (g *Grid) Cell(x, y int) *Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return &g.cells[x+y*g.width]
}

// CellIndex maps a continuous cell-space position to its linear index.
// Each coordinate is truncated toward zero, exactly as a GPU integer
// conversion would, and the index is x + y*width.
//
// There is no bounds check: positions outside the grid produce an index
// outside the cell slice, and using it will panic or read a neighboring
// row. Staying in range is the caller's contract; the Renderer guarantees
// it by construction for every position it generates.
func (g *Grid) CellIndex(pos Vec2) int {
	return int(pos.X) + int(pos.Y)*g.width
}

// CellAt returns the cell at a continuous position via CellIndex.
// The same caller contract applies: the position must lie inside the grid.
func (g *Grid) CellAt(pos Vec2) Cell {
	return g.cells[g.CellIndex(pos)]
}
