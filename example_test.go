package xlspan_test

import (
	"errors"
	"fmt"

	"github.com/javajack/xlspan"
)

func ExampleSpanController() {
	grid, _ := xlspan.NewGrid(3, 4)
	ctl := xlspan.NewSpanController(grid)

	_ = ctl.SetSpan(xlspan.NewCellRef(0, 0), xlspan.Span{Rows: 2, Cols: 2})

	err := ctl.SetSpan(xlspan.NewCellRef(1, 1), xlspan.Span{Rows: 2, Cols: 2})
	fmt.Println(errors.Is(err, xlspan.ErrOverlap))

	desc, _ := xlspan.Describe(grid)
	fmt.Print(desc)

	_ = ctl.RemoveSpan(xlspan.NewCellRef(0, 0))
	spanning, _ := ctl.IsSpanning(xlspan.NewCellRef(0, 0))
	fmt.Println(spanning)
	// Output:
	// true
	// Grid (3x4)
	// A#..
	// ##..
	// ....
	// Spans:
	//   A1:B2 span (2x2)
	// false
}

func ExampleMergeCellsCommand() {
	grid, _ := xlspan.NewGrid(5, 10)
	ctl := xlspan.NewSpanController(grid)

	cmd := &xlspan.MergeCellsCommand{Cols: "len(headers)"}
	size, err := cmd.ApplyAt(xlspan.NewCellRef(0, 0), map[string]any{
		"headers": []string{"Name", "Q1", "Q2", "Q3"},
	}, ctl)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(size, xlspan.NewAreaRef(xlspan.NewCellRef(0, 0), size))
	// Output:
	// (1x4) A1:D1
}
