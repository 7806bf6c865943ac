package ingestion

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is the minimal read surface the engine needs from a spreadsheet
// file: the list of sheet names and the raw cell grid of one sheet. Keeping
// it narrow lets tests feed in-memory grids and lets alternate backends be
// substituted without touching the parsing logic.
type Workbook interface {
	SheetNames() []string
	// Rows returns the untyped rectangular grid of the named sheet. Rows may
	// be ragged: trailing empty cells are not padded.
	Rows(sheet string) ([][]string, error)
}

// excelWorkbook adapts an open excelize file to the Workbook interface.
type excelWorkbook struct {
	f *excelize.File
}

// OpenWorkbook opens an .xlsx workbook from disk.
func OpenWorkbook(path string) (Workbook, func() error, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &excelWorkbook{f: f}, f.Close, nil
}

// OpenWorkbookBytes opens an .xlsx workbook from an in-memory byte slice
// (e.g. an uploaded file).
func OpenWorkbookBytes(data []byte) (Workbook, func() error, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook bytes: %w", err)
	}
	return &excelWorkbook{f: f}, f.Close, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *excelWorkbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// gridWorkbook is an in-memory Workbook used by tests and by callers that
// already hold a parsed grid.
type gridWorkbook struct {
	order  []string
	sheets map[string][][]string
}

// NewGridWorkbook builds a Workbook from named grids. Sheet order follows
// the order of the names slice.
func NewGridWorkbook(names []string, sheets map[string][][]string) Workbook {
	return &gridWorkbook{order: names, sheets: sheets}
}

func (w *gridWorkbook) SheetNames() []string { return w.order }

func (w *gridWorkbook) Rows(sheet string) ([][]string, error) {
	g, ok := w.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}
	return g, nil
}

// cell returns the trimmed-at-source cell at (row, col), or "" when the grid
// is ragged and the coordinate falls outside the stored row.
func cell(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
