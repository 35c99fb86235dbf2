package xlspan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	ctl, g := newTestController(t, 3, 4)
	require.NoError(t, ctl.SetSpan(NewCellRef(0, 0), Span{Rows: 2, Cols: 2}))
	require.NoError(t, ctl.SetSpan(NewCellRef(2, 1), Span{Rows: 1, Cols: 3}))

	desc, err := Describe(g)
	require.NoError(t, err)
	expected := "Grid (3x4)\n" +
		"A#..\n" +
		"##..\n" +
		".A##\n" +
		"Spans:\n" +
		"  A1:B2 span (2x2)\n" +
		"  B3:D3 span (1x3)\n"
	assert.Equal(t, expected, desc)
}

func TestDescribe_NoSpans(t *testing.T) {
	_, g := newTestController(t, 1, 2)
	desc, err := Describe(g)
	require.NoError(t, err)
	assert.Equal(t, "Grid (1x2)\n..\n", desc)
}
