package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadFile reads a product feed from an .xlsx file on disk.
func ReadFile(path string, opts Options) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, opts)
}

// Read reads a product feed from .xlsx file contents in memory.
// Used by the HTTP import endpoint, which receives the file as an upload.
func Read(data []byte, opts Options) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, opts)
}

func readWorkbook(f *excelize.File, opts Options) ([]Row, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("feed has no worksheets")
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	cols := opts.columns()
	barcodeIdx, err := columnIndex(cols.Barcode)
	if err != nil {
		return nil, err
	}
	nameIdx, err := columnIndex(cols.Name)
	if err != nil {
		return nil, err
	}
	priceIdx, err := columnIndex(cols.Price)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, cells := range raw {
		if i < opts.HeaderRows {
			continue
		}

		row := Row{
			Line:    i + 1,
			Barcode: cell(cells, barcodeIdx),
			Name:    cell(cells, nameIdx),
			Price:   cell(cells, priceIdx),
		}

		// Trailing blank lines are a spreadsheet artifact, not feed rows.
		// Partially filled rows pass through so the planner can reject them.
		if row.Barcode == "" && row.Name == "" && row.Price == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// columnIndex converts a column letter like "A" to a 0-based index.
func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("invalid feed column %q: %w", name, err)
	}
	return n - 1, nil
}

// cell returns the trimmed cell at idx, or "" when the row is shorter.
// excelize drops trailing empty cells, so short rows are routine.
func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
