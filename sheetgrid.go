package xlspan

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetGrid loads the merged ranges of one worksheet into an in-memory Grid
// and writes the grid's spans back as merged ranges.
type SheetGrid struct {
	file  *excelize.File
	sheet string
	grid  *Grid
	ctl   *SpanController
	log   *zap.Logger
}

// NewSheetGrid builds a grid for sheet of f. The grid covers the sheet's used
// range and every merged range, and is at least WithMinSize. Each merged range
// in the sheet is applied through the span controller, so a sheet whose
// merges overlap is rejected with ErrOverlap.
func NewSheetGrid(f *excelize.File, sheet string, opts ...Option) (*SheetGrid, error) {
	o := buildOptions(opts)
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, cols, err := sheetExtent(f, sheet)
	if err != nil {
		return nil, err
	}
	merges, err := mergedAreas(f, sheet)
	if err != nil {
		return nil, err
	}
	for _, a := range merges {
		rows = max(rows, a.Last.Row+1)
		cols = max(cols, a.Last.Col+1)
	}
	rows = max(rows, o.minRows, 1)
	cols = max(cols, o.minCols, 1)

	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	sg := &SheetGrid{
		file:  f,
		sheet: sheet,
		grid:  grid,
		ctl:   NewSpanController(grid, opts...),
		log:   o.logger,
	}
	for _, a := range merges {
		if err := sg.ctl.SetSpan(a.First, a.Span()); err != nil {
			return nil, fmt.Errorf("load merged range %s!%s: %w", sheet, a, err)
		}
	}
	sg.log.Debug("sheet loaded",
		zap.String("sheet", sheet),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("merges", len(merges)))
	return sg, nil
}

// OpenSheet opens an xlsx file and builds a SheetGrid for sheet.
func OpenSheet(path, sheet string, opts ...Option) (*SheetGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	sg, err := NewSheetGrid(f, sheet, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return sg, nil
}

// sheetExtent returns the number of used rows and columns of sheet. The
// stored dimension is not updated by in-memory edits, so the row data is
// scanned as well.
func sheetExtent(f *excelize.File, sheet string) (rows, cols int, err error) {
	data, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	rows = len(data)
	for _, row := range data {
		cols = max(cols, len(row))
	}
	if dim, derr := f.GetSheetDimension(sheet); derr == nil && dim != "" {
		if a, perr := ParseAreaRef(dim); perr == nil {
			rows = max(rows, a.Last.Row+1)
			cols = max(cols, a.Last.Col+1)
		}
	}
	return rows, cols, nil
}

// mergedAreas returns the merged ranges of sheet.
func mergedAreas(f *excelize.File, sheet string) ([]AreaRef, error) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merged cells from sheet %q: %w", sheet, err)
	}
	areas := make([]AreaRef, 0, len(merges))
	for _, m := range merges {
		a, err := ParseAreaRef(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("merged range in sheet %q: %w", sheet, err)
		}
		areas = append(areas, a)
	}
	return areas, nil
}

// Controller returns the span controller for the sheet's grid.
func (sg *SheetGrid) Controller() *SpanController { return sg.ctl }

// Grid returns the in-memory grid.
func (sg *SheetGrid) Grid() *Grid { return sg.grid }

// File returns the underlying excelize file for advanced operations.
func (sg *SheetGrid) File() *excelize.File { return sg.file }

// Sheet returns the worksheet name.
func (sg *SheetGrid) Sheet() string { return sg.sheet }

// Sync replaces the sheet's merged ranges with the grid's spans.
func (sg *SheetGrid) Sync() error {
	existing, err := mergedAreas(sg.file, sg.sheet)
	if err != nil {
		return err
	}
	for _, a := range existing {
		if err := sg.file.UnmergeCell(sg.sheet, a.First.CellName(), a.Last.CellName()); err != nil {
			return fmt.Errorf("unmerge %s!%s: %w", sg.sheet, a, err)
		}
	}

	spans, err := sg.ctl.Spans()
	if err != nil {
		return err
	}
	for _, s := range spans {
		a := s.Area()
		if err := sg.file.MergeCell(sg.sheet, a.First.CellName(), a.Last.CellName()); err != nil {
			return fmt.Errorf("merge %s!%s: %w", sg.sheet, a, err)
		}
	}
	sg.log.Debug("sheet synced",
		zap.String("sheet", sg.sheet),
		zap.Int("removed", len(existing)),
		zap.Int("merged", len(spans)))
	return nil
}

// Write syncs the spans into the workbook and writes it to w.
func (sg *SheetGrid) Write(w io.Writer) error {
	if err := sg.Sync(); err != nil {
		return err
	}
	return sg.file.Write(w)
}

// SaveAs syncs the spans into the workbook and saves it to path.
func (sg *SheetGrid) SaveAs(path string) error {
	if err := sg.Sync(); err != nil {
		return err
	}
	if err := sg.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Close closes the underlying excelize file.
func (sg *SheetGrid) Close() error {
	return sg.file.Close()
}
