// Package xlspan manages merged (spanned) cells in a spreadsheet-style grid:
// it applies spans, tracks covered cells, rejects overlapping requests and
// splits spans back into plain cells.
package xlspan

import (
	"go.uber.org/zap"
)

// SpanController applies and removes cell spans on a GridProvider while
// keeping every covered cell owned by exactly one anchor.
//
// The controller is the only writer of span and covered state. It takes no
// locks; callers sharing a grid between goroutines must serialize access.
type SpanController struct {
	grid GridProvider
	opts *Options
}

// SpanInfo is an anchor together with the size of its region.
type SpanInfo struct {
	Pos  CellRef
	Size Span
}

// Area returns the region of the span as an AreaRef.
func (s SpanInfo) Area() AreaRef {
	return NewAreaRef(s.Pos, s.Size)
}

// NewSpanController creates a controller operating on grid.
func NewSpanController(grid GridProvider, opts ...Option) *SpanController {
	return &SpanController{grid: grid, opts: buildOptions(opts)}
}

// Grid returns the provider the controller operates on.
func (c *SpanController) Grid() GridProvider {
	return c.grid
}

// IsSpanning reports whether the cell at pos anchors a multi-cell region.
func (c *SpanController) IsSpanning(pos CellRef) (bool, error) {
	cell, err := c.grid.Cell(pos)
	if err != nil {
		return false, err
	}
	return cell.Span().IsMulti(), nil
}

// SetSpan makes pos the anchor of a region of the given size and marks every
// other cell of the region covered. Nothing is written unless the whole region
// lies inside the grid and contains no covered cell and no other anchor.
// A 1x1 size on a plain cell is a no-op.
//
// The size and the bounds are checked before the anchor is looked up, so an
// anchor past the last row or column reports ErrOutOfBounds, even with a 1x1
// size, rather than ErrOutOfRange. A negative anchor reports ErrOutOfRange.
func (c *SpanController) SetSpan(pos CellRef, size Span) error {
	if !size.Valid() {
		return c.reject(pos, size, "", ErrInvalidSize)
	}
	rows, cols := c.grid.Bounds()
	if !fits(pos, size, rows, cols) {
		return c.reject(pos, size, "", ErrOutOfBounds)
	}
	anchor, err := c.grid.Cell(pos)
	if err != nil {
		return err
	}
	if anchor.Covered() || anchor.Span().IsMulti() {
		return c.reject(pos, size, "already spanned", ErrOverlap)
	}

	covered := make([]*Cell, 0, size.Rows*size.Cols-1)
	for ref := range coveredRegion(pos, size) {
		cell, err := c.grid.Cell(ref)
		if err != nil {
			return err
		}
		if cell.Covered() || cell.Span().IsMulti() {
			return c.reject(pos, size, "would span over already-spanned cells at "+ref.String(), ErrOverlap)
		}
		covered = append(covered, cell)
	}

	if !size.IsMulti() {
		return nil
	}
	anchor.SetSpan(size)
	for _, cell := range covered {
		cell.SetCovered(true)
	}

	c.opts.logger.Debug("span set",
		zap.Stringer("anchor", pos),
		zap.Stringer("size", size))
	for _, l := range c.opts.listeners {
		l.SpanSet(pos, size)
	}
	return nil
}

// RemoveSpan splits the region anchored at pos back into plain cells.
// Removing at a cell that is not an anchor does nothing.
func (c *SpanController) RemoveSpan(pos CellRef) error {
	anchor, err := c.grid.Cell(pos)
	if err != nil {
		return err
	}
	size := anchor.Span()
	if !size.IsMulti() {
		return nil
	}
	var covered []*Cell
	if size.Valid() {
		if rows, cols := c.grid.Bounds(); !fits(pos, size, rows, cols) {
			return newSpanError("remove", pos, size, "region leaves the grid", ErrOutOfBounds)
		}
		covered = make([]*Cell, 0, size.Rows*size.Cols-1)
	}
	for ref := range coveredRegion(pos, size) {
		cell, err := c.grid.Cell(ref)
		if err != nil {
			return newSpanError("remove", pos, size, "region leaves the grid", err)
		}
		covered = append(covered, cell)
	}

	anchor.SetSpan(NoSpan)
	for _, cell := range covered {
		cell.SetCovered(false)
	}

	c.opts.logger.Debug("span removed",
		zap.Stringer("anchor", pos),
		zap.Stringer("size", size))
	for _, l := range c.opts.listeners {
		l.SpanRemoved(pos, size)
	}
	return nil
}

// Spans returns every anchor of the grid in row-major order.
func (c *SpanController) Spans() ([]SpanInfo, error) {
	rows, cols := c.grid.Bounds()
	var spans []SpanInfo
	for ref := range Region(NewCellRef(0, 0), Span{Rows: rows, Cols: cols}) {
		cell, err := c.grid.Cell(ref)
		if err != nil {
			return nil, err
		}
		if s := cell.Span(); s.IsMulti() {
			spans = append(spans, SpanInfo{Pos: ref, Size: s})
		}
	}
	return spans, nil
}

// CoveringAnchor returns the anchor whose region contains pos. An anchor is
// its own covering anchor. It returns false for a plain cell.
func (c *SpanController) CoveringAnchor(pos CellRef) (CellRef, bool, error) {
	cell, err := c.grid.Cell(pos)
	if err != nil {
		return CellRef{}, false, err
	}
	if cell.Span().IsMulti() {
		return pos, true, nil
	}
	if !cell.Covered() {
		return CellRef{}, false, nil
	}

	// anchors sit above and to the left of the cells they cover
	for row := pos.Row; row >= 0; row-- {
		for col := pos.Col; col >= 0; col-- {
			ref := NewCellRef(row, col)
			candidate, err := c.grid.Cell(ref)
			if err != nil {
				return CellRef{}, false, err
			}
			if s := candidate.Span(); s.IsMulti() && pos.Row-row < s.Rows && pos.Col-col < s.Cols {
				return ref, true, nil
			}
		}
	}
	return CellRef{}, false, nil
}

func (c *SpanController) reject(pos CellRef, size Span, reason string, err error) error {
	c.opts.logger.Debug("span rejected",
		zap.Stringer("anchor", pos),
		zap.Stringer("size", size),
		zap.String("reason", reason),
		zap.Error(err))
	return newSpanError("set", pos, size, reason, err)
}
