package xlspan

import "iter"

// Region yields every coordinate of the region anchored at pos with the given
// size in row-major order, the anchor first. It yields nothing for a size
// with a component below 1.
func Region(pos CellRef, size Span) iter.Seq[CellRef] {
	return func(yield func(CellRef) bool) {
		if !size.Valid() {
			return
		}
		for row := 0; row < size.Rows; row++ {
			for col := 0; col < size.Cols; col++ {
				if !yield(pos.Offset(row, col)) {
					return
				}
			}
		}
	}
}

// coveredRegion yields the region without its anchor.
func coveredRegion(pos CellRef, size Span) iter.Seq[CellRef] {
	return func(yield func(CellRef) bool) {
		for ref := range Region(pos, size) {
			if ref == pos {
				continue
			}
			if !yield(ref) {
				return
			}
		}
	}
}

// extends reports whether n cells starting at start run past limit. n is at
// least 1, so neither branch can overflow.
func extends(start, n, limit int) bool {
	if start < 0 {
		return start+n > limit
	}
	return n > limit-start
}

// fits reports whether the region anchored at pos with the given size ends
// inside a grid of rows by cols.
func fits(pos CellRef, size Span, rows, cols int) bool {
	return !extends(pos.Row, size.Rows, rows) && !extends(pos.Col, size.Cols, cols)
}
