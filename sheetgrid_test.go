package xlspan

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createMergedSheet creates a workbook with merged cells.
// Layout (Sheet1):
//
//	A1:C1 "Report" (merged)
//	A2 "Name"  B2 "Q1"  C2 "Q2"
//	A3:A4 "Alice" (merged)
func createMergedSheet(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Report")
	require.NoError(t, f.MergeCell(sheet, "A1", "C1"))
	f.SetCellValue(sheet, "A2", "Name")
	f.SetCellValue(sheet, "B2", "Q1")
	f.SetCellValue(sheet, "C2", "Q2")
	f.SetCellValue(sheet, "A3", "Alice")
	require.NoError(t, f.MergeCell(sheet, "A3", "A4"))
	return f
}

func mergeRanges(t *testing.T, f *excelize.File, sheet string) []string {
	t.Helper()
	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	out := make([]string, 0, len(merges))
	for _, m := range merges {
		out = append(out, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	return out
}

func TestNewSheetGrid_LoadsMerges(t *testing.T) {
	f := createMergedSheet(t)
	defer f.Close()

	sg, err := NewSheetGrid(f, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sg.Sheet())
	assert.Same(t, f, sg.File())

	rows, cols := sg.Grid().Bounds()
	assert.GreaterOrEqual(t, rows, 4)
	assert.GreaterOrEqual(t, cols, 3)

	spans, err := sg.Controller().Spans()
	require.NoError(t, err)
	assert.Equal(t, []SpanInfo{
		{Pos: NewCellRef(0, 0), Size: Span{Rows: 1, Cols: 3}},
		{Pos: NewCellRef(2, 0), Size: Span{Rows: 2, Cols: 1}},
	}, spans)

	issues, err := Validate(sg.Grid())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewSheetGrid_MinSize(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sg, err := NewSheetGrid(f, "Sheet1", WithMinSize(20, 8))
	require.NoError(t, err)
	rows, cols := sg.Grid().Bounds()
	assert.Equal(t, 20, rows)
	assert.Equal(t, 8, cols)
}

func TestNewSheetGrid_SheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := NewSheetGrid(f, "Missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSheetGrid_WriteRoundTrip(t *testing.T) {
	f := createMergedSheet(t)
	sg, err := NewSheetGrid(f, "Sheet1", WithMinSize(10, 10))
	require.NoError(t, err)
	defer sg.Close()

	ctl := sg.Controller()
	require.NoError(t, ctl.RemoveSpan(NewCellRef(2, 0)))
	require.NoError(t, ctl.SetSpan(NewCellRef(1, 1), Span{Rows: 1, Cols: 2}))
	assert.ErrorIs(t, ctl.SetSpan(NewCellRef(0, 2), Span{Rows: 2, Cols: 1}), ErrOverlap)

	var buf bytes.Buffer
	require.NoError(t, sg.Write(&buf))
	out, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer out.Close()

	assert.ElementsMatch(t, []string{"A1:C1", "B2:C2"}, mergeRanges(t, out, "Sheet1"))

	v, _ := out.GetCellValue("Sheet1", "A1")
	assert.Equal(t, "Report", v)
}

func TestSheetGrid_SyncIsRepeatable(t *testing.T) {
	f := createMergedSheet(t)
	sg, err := NewSheetGrid(f, "Sheet1")
	require.NoError(t, err)
	defer sg.Close()

	require.NoError(t, sg.Sync())
	require.NoError(t, sg.Sync())
	assert.ElementsMatch(t, []string{"A1:C1", "A3:A4"}, mergeRanges(t, f, "Sheet1"))
}

func TestOpenSheet_SaveAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "merged.xlsx")
	f := createMergedSheet(t)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	sg, err := OpenSheet(path, "Sheet1")
	require.NoError(t, err)
	require.NoError(t, sg.Controller().RemoveSpan(NewCellRef(0, 0)))
	outPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, sg.SaveAs(outPath))
	require.NoError(t, sg.Close())

	sg, err = OpenSheet(outPath, "Sheet1")
	require.NoError(t, err)
	defer sg.Close()
	spans, err := sg.Controller().Spans()
	require.NoError(t, err)
	assert.Equal(t, []SpanInfo{{Pos: NewCellRef(2, 0), Size: Span{Rows: 2, Cols: 1}}}, spans)
}

func TestOpenSheet_MissingFile(t *testing.T) {
	_, err := OpenSheet(filepath.Join(t.TempDir(), "nope.xlsx"), "Sheet1")
	assert.Error(t, err)
}
