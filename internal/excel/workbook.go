package excel

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// MaxWorkbookSize is the hard ceiling on an uploaded workbook.
const MaxWorkbookSize = 10 << 20 // 10 MiB

// Rows 0 and 1 are the header row and a reserved row injected by the export
// tool; data rows start at index 2.
const firstDataRow = 2

var (
	ErrEmptyWorkbook = errors.New("workbook is empty")
	ErrWorkbookSize  = errors.New("workbook exceeds maximum size")
)

// ReadWorkbook decodes workbook bytes into a rectangular grid of typed cell
// values from the first sheet. Row 0 is the header row.
func ReadWorkbook(data []byte) ([][]CellValue, error) {
	if len(data) == 0 {
		return nil, ErrEmptyWorkbook
	}
	if len(data) > MaxWorkbookSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrWorkbookSize, len(data))
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	// Pad every row to the header width so column indices are always valid.
	width := len(rows[0])
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make([][]CellValue, len(rows))
	for i, row := range rows {
		cells := make([]CellValue, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = NewCellValue(row[j])
			} else {
				cells[j] = CellValue{Kind: CellEmpty}
			}
		}
		grid[i] = cells
	}
	return grid, nil
}
