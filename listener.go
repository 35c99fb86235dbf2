package xlspan

// SpanListener is notified after the controller changes the grid. It is not
// called for rejected requests or for removals that were no-ops.
type SpanListener interface {
	// SpanSet is called after pos became the anchor of a size region.
	SpanSet(pos CellRef, size Span)

	// SpanRemoved is called after the size region anchored at pos was split
	// back into plain cells.
	SpanRemoved(pos CellRef, size Span)
}

// SpanListenerFuncs adapts plain functions to SpanListener. Nil fields are skipped.
type SpanListenerFuncs struct {
	OnSet    func(pos CellRef, size Span)
	OnRemove func(pos CellRef, size Span)
}

func (f SpanListenerFuncs) SpanSet(pos CellRef, size Span) {
	if f.OnSet != nil {
		f.OnSet(pos, size)
	}
}

func (f SpanListenerFuncs) SpanRemoved(pos CellRef, size Span) {
	if f.OnRemove != nil {
		f.OnRemove(pos, size)
	}
}
