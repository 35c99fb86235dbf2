package xlspan

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // grid breaks the span invariants
	SeverityWarning                 // grid is consistent but has a partial region
)

// ValidationIssue is a single problem found while checking a grid.
type ValidationIssue struct {
	Severity Severity
	CellRef  CellRef
	Message  string
}

// String formats the issue as "[ERROR] B2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.CellRef, v.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []ValidationIssue) bool {
	for _, v := range issues {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks every cell of grid against the span invariants and returns
// the issues found in row-major order of discovery. A non-nil error means the
// provider failed to return a cell inside its own bounds.
func Validate(grid GridProvider) ([]ValidationIssue, error) {
	rows, cols := grid.Bounds()
	all := Span{Rows: rows, Cols: cols}
	owner := make(map[CellRef]CellRef)

	var issues []ValidationIssue
	report := func(sev Severity, ref CellRef, format string, args ...any) {
		issues = append(issues, ValidationIssue{Severity: sev, CellRef: ref, Message: fmt.Sprintf(format, args...)})
	}

	for ref := range Region(NewCellRef(0, 0), all) {
		cell, err := grid.Cell(ref)
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", ref, err)
		}
		size := cell.Span()
		if !size.IsMulti() {
			continue
		}
		if !size.Valid() {
			report(SeverityError, ref, "invalid span %s", size)
			continue
		}
		if cell.Covered() {
			report(SeverityError, ref, "covered cell has its own span %s", size)
		}
		inside := size
		if !fits(ref, size, rows, cols) {
			report(SeverityError, ref, "span %s extends beyond grid (%dx%d)", size, rows, cols)
			inside = Span{Rows: min(size.Rows, rows-ref.Row), Cols: min(size.Cols, cols-ref.Col)}
		}

		for member := range coveredRegion(ref, inside) {
			m, err := grid.Cell(member)
			if err != nil {
				return nil, fmt.Errorf("validate %s: %w", member, err)
			}
			if prev, ok := owner[member]; ok {
				report(SeverityError, member, "cell is inside spans of both %s and %s", prev, ref)
			} else {
				owner[member] = ref
			}
			if m.Span().IsMulti() {
				report(SeverityError, member, "anchor lies inside span of %s", ref)
			}
			if !m.Covered() {
				report(SeverityWarning, member, "cell inside span of %s is not covered", ref)
			}
		}
	}

	for ref := range Region(NewCellRef(0, 0), all) {
		cell, err := grid.Cell(ref)
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", ref, err)
		}
		if _, ok := owner[ref]; cell.Covered() && !ok {
			report(SeverityError, ref, "covered cell is not inside any span")
		}
	}
	return issues, nil
}
