package xlspan

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable picture of grid: a character map with
// 'A' for anchors, '#' for covered cells and '.' for plain cells, followed by
// one line per span. Useful for debugging imports and tests.
//
//	Grid (3x4)
//	A#..
//	##..
//	....
//	Spans:
//	  A1:B2 span (2x2)
func Describe(grid GridProvider) (string, error) {
	rows, cols := grid.Bounds()

	var b strings.Builder
	fmt.Fprintf(&b, "Grid (%dx%d)\n", rows, cols)

	var spans []SpanInfo
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			ref := NewCellRef(row, col)
			cell, err := grid.Cell(ref)
			if err != nil {
				return "", fmt.Errorf("describe %s: %w", ref, err)
			}
			switch {
			case cell.Span().IsMulti():
				b.WriteByte('A')
				spans = append(spans, SpanInfo{Pos: ref, Size: cell.Span()})
			case cell.Covered():
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}

	if len(spans) > 0 {
		b.WriteString("Spans:\n")
		for _, s := range spans {
			fmt.Fprintf(&b, "  %s span %s\n", s.Area(), s.Size)
		}
	}
	return b.String(), nil
}
