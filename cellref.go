package xlspan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellRef is a 0-based cell coordinate within a grid.
type CellRef struct {
	Row int
	Col int
}

// NewCellRef creates a CellRef from a 0-based row and column.
func NewCellRef(row, col int) CellRef {
	return CellRef{Row: row, Col: col}
}

// ParseCellRef parses a cell reference like "A1", "$B$5" or "Sheet1!C3".
// Any sheet prefix is discarded.
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}
	cellPart := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		cellPart = s[idx+1:]
	}
	cellPart = strings.ReplaceAll(cellPart, "$", "")
	if cellPart == "" {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, row, err := parseCellName(cellPart)
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}
	return CellRef{Row: row, Col: col}, nil
}

// parseCellName parses "A1" into col=0, row=0.
func parseCellName(name string) (col, row int, err error) {
	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 || i == len(name) {
		return 0, 0, fmt.Errorf("invalid cell name: %q", name)
	}

	col, err = NameToCol(name[:i])
	if err != nil {
		return 0, 0, err
	}
	rowNum, err := strconv.Atoi(name[i:])
	if err != nil || rowNum < 1 || strings.ContainsAny(name[i:], "+-") {
		return 0, 0, fmt.Errorf("invalid row number in cell name: %q", name)
	}
	return col, rowNum - 1, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef in A1 notation.
func (c CellRef) String() string {
	return c.CellName()
}

// CellName returns the A1 name of the cell.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

// Offset returns the cell rows down and cols right of c.
func (c CellRef) Offset(rows, cols int) CellRef {
	return CellRef{Row: c.Row + rows, Col: c.Col + cols}
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColToName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [14]byte // 26^14 > math.MaxInt
	i := len(buf)
	for n := uint(col) + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = 'A' + byte((n-1)%26)
	}
	return string(buf[i:])
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	var n uint64 // 1-based, at most math.MaxInt+1
	for i := 0; i < len(name); i++ {
		if !isAlpha(name[i]) {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		d := uint64(name[i]|0x20-'a') + 1
		if n > (math.MaxInt+1-d)/26 {
			return 0, fmt.Errorf("column name too long: %q", name)
		}
		n = n*26 + d
	}
	return int(n - 1), nil
}

// Span is the extent of a cell's region in rows and columns.
type Span struct {
	Rows int
	Cols int
}

// NoSpan is the span of a cell that does not span anything.
var NoSpan = Span{Rows: 1, Cols: 1}

// String formats the Span as "(RxC)".
func (s Span) String() string {
	return fmt.Sprintf("(%dx%d)", s.Rows, s.Cols)
}

// IsMulti reports whether the span covers more than one cell.
func (s Span) IsMulti() bool {
	return s != NoSpan
}

// Valid reports whether both components are at least 1.
func (s Span) Valid() bool {
	return s.Rows >= 1 && s.Cols >= 1
}

// ParseSpan parses "RxC" (e.g. "3x2") into a Span.
func ParseSpan(s string) (Span, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return Span{}, fmt.Errorf("invalid span %q: want RxC", s)
	}
	rows, err := strconv.Atoi(parts[0])
	if err != nil {
		return Span{}, fmt.Errorf("invalid span rows %q: %w", s, err)
	}
	cols, err := strconv.Atoi(parts[1])
	if err != nil {
		return Span{}, fmt.Errorf("invalid span cols %q: %w", s, err)
	}
	return Span{Rows: rows, Cols: cols}, nil
}

// AreaRef is a rectangular range between two corner cells, inclusive.
type AreaRef struct {
	First CellRef
	Last  CellRef
}

// NewAreaRef returns the area anchored at pos with the given span.
func NewAreaRef(pos CellRef, size Span) AreaRef {
	return AreaRef{First: pos, Last: pos.Offset(size.Rows-1, size.Cols-1)}
}

// ParseAreaRef parses an area like "A1:C5". A single cell "B2" is a 1x1 area.
func ParseAreaRef(s string) (AreaRef, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)

	first, err := ParseCellRef(parts[0])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}
	if len(parts) == 1 {
		return AreaRef{First: first, Last: first}, nil
	}
	last, err := ParseCellRef(parts[1])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}

	// normalize so First is the top-left corner
	if last.Row < first.Row {
		first.Row, last.Row = last.Row, first.Row
	}
	if last.Col < first.Col {
		first.Col, last.Col = last.Col, first.Col
	}
	return AreaRef{First: first, Last: last}, nil
}

// String formats the AreaRef as "A1:C5".
func (a AreaRef) String() string {
	return a.First.CellName() + ":" + a.Last.CellName()
}

// Span returns the dimensions of the area.
func (a AreaRef) Span() Span {
	return Span{
		Rows: a.Last.Row - a.First.Row + 1,
		Cols: a.Last.Col - a.First.Col + 1,
	}
}

// Contains reports whether ref lies within the area.
func (a AreaRef) Contains(ref CellRef) bool {
	return ref.Row >= a.First.Row && ref.Row <= a.Last.Row &&
		ref.Col >= a.First.Col && ref.Col <= a.Last.Col
}
