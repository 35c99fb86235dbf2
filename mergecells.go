package xlspan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MergeCellsCommand merges a region whose size is computed from data.
// Rows and Cols are expressions such as "2" or "len(headers)"; an empty
// expression means 1.
type MergeCellsCommand struct {
	Rows    string // number of rows to merge (expression)
	Cols    string // number of columns to merge (expression)
	MinRows string // minimum rows before merging
	MinCols string // minimum cols before merging
}

func (c *MergeCellsCommand) Name() string { return "mergeCells" }

// NewMergeCellsCommand creates a MergeCellsCommand from attributes such as
// {"rows": "2", "cols": "len(headers)", "minCols": "2"}.
func NewMergeCellsCommand(attrs map[string]string) (*MergeCellsCommand, error) {
	for k := range attrs {
		switch k {
		case "rows", "cols", "minRows", "minCols":
		default:
			return nil, fmt.Errorf("mergeCells: unknown attribute %q", k)
		}
	}
	return &MergeCellsCommand{
		Rows:    attrs["rows"],
		Cols:    attrs["cols"],
		MinRows: attrs["minRows"],
		MinCols: attrs["minCols"],
	}, nil
}

// ApplyAt evaluates the command against data and spans the resulting region
// at pos through ctl. It returns the computed size. Sizes below the minimum
// thresholds are returned without merging, as is a computed 1x1.
func (c *MergeCellsCommand) ApplyAt(pos CellRef, data map[string]any, ctl *SpanController) (Span, error) {
	ev := ctl.opts.evaluator
	if ev == nil {
		ev = NewExpressionEvaluator()
	}

	rows, err := evalCount(ev, "rows", c.Rows, data)
	if err != nil {
		return Span{}, err
	}
	cols, err := evalCount(ev, "cols", c.Cols, data)
	if err != nil {
		return Span{}, err
	}
	size := Span{Rows: rows, Cols: cols}

	minRows, err := parseMin("minRows", c.MinRows)
	if err != nil {
		return Span{}, err
	}
	minCols, err := parseMin("minCols", c.MinCols)
	if err != nil {
		return Span{}, err
	}
	if rows < minRows || cols < minCols {
		return size, nil // skip merge
	}

	if !size.IsMulti() {
		return NoSpan, nil
	}
	if err := ctl.SetSpan(pos, size); err != nil {
		return Span{}, fmt.Errorf("merge cells %s%s: %w", pos, size, err)
	}
	return size, nil
}

// evalCount evaluates a size expression, falling back to a literal integer.
func evalCount(ev ExpressionEvaluator, attr, expression string, data map[string]any) (int, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 1, nil
	}
	if n, err := strconv.Atoi(expression); err == nil {
		return n, nil
	}
	val, err := ev.Evaluate(expression, data)
	if err != nil {
		return 0, fmt.Errorf("evaluate %s %q: %w", attr, expression, err)
	}
	n, err := toInt(val)
	if err != nil {
		return 0, fmt.Errorf("evaluate %s %q: %w", attr, expression, err)
	}
	return n, nil
}

func parseMin(attr, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", attr, s, err)
	}
	return n, nil
}

// toInt converts an evaluated count to int. Fractions and values outside the
// int range are errors rather than being truncated or wrapped.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("%d is out of range", n)
		}
		return int(n), nil
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return uintToInt(uint64(n))
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("got %T, expected a number", v)
}

func uintToInt(n uint64) (int, error) {
	if n > math.MaxInt {
		return 0, fmt.Errorf("%d is out of range", n)
	}
	return int(n), nil
}

// floatToInt accepts only whole values that convert to int exactly.
// math.MaxInt rounds up to 2^63 as a float64, hence the exclusive bound.
func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int(f), nil
}
