package xlspan

import "fmt"

// GridProvider abstracts the storage of a fixed-size grid of cells. The span
// controller reads bounds and cell state through it and mutates cells through
// the returned handles.
type GridProvider interface {
	// Bounds returns the row and column count.
	Bounds() (rows, cols int)

	// Cell returns the cell at pos. It fails with ErrOutOfRange when pos lies
	// outside [0,rows) x [0,cols).
	Cell(pos CellRef) (*Cell, error)
}

// Cell holds the span state of a single grid cell.
type Cell struct {
	span    Span
	covered bool
}

// Span returns the cell's span, (1,1) when it does not span.
func (c *Cell) Span() Span {
	if c.span.Rows == 0 && c.span.Cols == 0 {
		return NoSpan
	}
	return c.span
}

// SetSpan sets the cell's span.
func (c *Cell) SetSpan(s Span) { c.span = s }

// Covered reports whether the cell is hidden inside another cell's span.
func (c *Cell) Covered() bool { return c.covered }

// SetCovered sets the covered flag.
func (c *Cell) SetCovered(covered bool) { c.covered = covered }

// Grid is an in-memory GridProvider backed by a dense row-major slice.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid of rows x cols plain cells.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("new grid (%dx%d): %w", rows, cols, ErrInvalidSize)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

// Bounds returns the row and column count.
func (g *Grid) Bounds() (rows, cols int) {
	return g.rows, g.cols
}

// Cell returns the cell at pos.
func (g *Grid) Cell(pos CellRef) (*Cell, error) {
	if !g.InBounds(pos) {
		return nil, fmt.Errorf("cell %d,%d in %dx%d grid: %w", pos.Row, pos.Col, g.rows, g.cols, ErrOutOfRange)
	}
	return &g.cells[pos.Row*g.cols+pos.Col], nil
}

// InBounds reports whether pos addresses a cell of the grid.
func (g *Grid) InBounds(pos CellRef) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}
