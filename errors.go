package xlspan

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a coordinate outside the grid.
var ErrOutOfRange = errors.New("cell index out of range")

// ErrOutOfBounds indicates a span region that would extend past the grid.
var ErrOutOfBounds = errors.New("row/column spanning over table limits")

// ErrOverlap indicates a span region that intersects an existing span.
var ErrOverlap = errors.New("span overlaps an existing span")

// ErrInvalidSize indicates a grid dimension or span component below 1.
var ErrInvalidSize = errors.New("invalid size")

// SpanError describes a rejected span operation.
type SpanError struct {
	Op     string // "set" or "remove"
	Pos    CellRef
	Size   Span
	Reason string
	Err    error
}

func (e *SpanError) Error() string {
	msg := fmt.Sprintf("%s span %s%s", e.Op, e.Pos, e.Size)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg + ": " + e.Err.Error()
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

func newSpanError(op string, pos CellRef, size Span, reason string, err error) *SpanError {
	return &SpanError{Op: op, Pos: pos, Size: size, Reason: reason, Err: err}
}
