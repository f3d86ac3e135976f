package feed

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes cells onto the default sheet and returns the
// serialized .xlsx bytes. cells is row-major; empty strings leave the cell
// unset so short rows behave like real exports.
func buildWorkbook(t *testing.T, cells [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range cells {
		for c, v := range row {
			if v == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name (%d, %d): %v", c+1, r+1, err)
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				t.Fatalf("set cell %s: %v", name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Barcode", "Name", "", "", "Price"},
		{"3001", "Widget A", "", "", "9.99"},
		{"3002", "Widget B", "", "", ""},
	})

	rows, err := Read(data, Options{HeaderRows: 1})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []Row{
		{Line: 2, Barcode: "3001", Name: "Widget A", Price: "9.99"},
		{Line: 3, Barcode: "3002", Name: "Widget B", Price: ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestRead_TrimsWhitespace(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"  3001  ", " Widget A ", "", "", " 9.99 "},
	})

	rows, err := Read(data, Options{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Barcode != "3001" || rows[0].Name != "Widget A" || rows[0].Price != "9.99" {
		t.Errorf("row = %+v, want trimmed cells", rows[0])
	}
}

func TestRead_SkipsBlankRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"3001", "Widget A", "", "", "1"},
		{"", "", "", "", ""},
		{"3002", "Widget B", "", "", "2"},
		{"", "", "", "", ""},
	})

	rows, err := Read(data, Options{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	// Line numbers still refer to the sheet, blanks included.
	if rows[1].Line != 3 {
		t.Errorf("second row Line = %d, want 3", rows[1].Line)
	}
}

func TestRead_PartialRowsPassThrough(t *testing.T) {
	// Rows missing a barcode or a name are feed rows, not artifacts; the
	// planner decides their fate.
	data := buildWorkbook(t, [][]string{
		{"", "Name Only", "", "", "1"},
		{"3002", "", "", "", "2"},
	})

	rows, err := Read(data, Options{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}
	if rows[0].Barcode != "" || rows[0].Name != "Name Only" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Barcode != "3002" || rows[1].Name != "" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestRead_CustomColumns(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"9.99", "3001", "Widget A"},
	})

	rows, err := Read(data, Options{Columns: Columns{Barcode: "B", Name: "C", Price: "A"}})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Barcode != "3001" || rows[0].Name != "Widget A" || rows[0].Price != "9.99" {
		t.Errorf("row = %+v, want columns remapped", rows[0])
	}
}

func TestRead_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Tarifs"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Tarifs", "A1", "3001"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("Tarifs", "B1", "Widget A"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := Read(buf.Bytes(), Options{Sheet: "Tarifs"})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Barcode != "3001" {
		t.Fatalf("rows = %+v, want one row from the named sheet", rows)
	}

	if _, err := Read(buf.Bytes(), Options{Sheet: "Missing"}); err == nil {
		t.Error("Read() with unknown sheet: error = nil, want error")
	}
}

func TestRead_InvalidColumn(t *testing.T) {
	data := buildWorkbook(t, [][]string{{"3001", "Widget A"}})

	if _, err := Read(data, Options{Columns: Columns{Barcode: "1A", Name: "B", Price: "C"}}); err == nil {
		t.Error("Read() with invalid column: error = nil, want error")
	}
}

func TestRead_NotAWorkbook(t *testing.T) {
	if _, err := Read([]byte("not an xlsx file"), Options{}); err == nil {
		t.Error("Read() on junk bytes: error = nil, want error")
	}
}

func TestReadFile(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Barcode", "Name", "", "", "Price"},
		{"3001", "Widget A", "", "", "9.99"},
	})

	path := filepath.Join(t.TempDir(), "feed.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp feed: %v", err)
	}

	rows, err := ReadFile(path, Options{HeaderRows: 1})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Barcode != "3001" {
		t.Fatalf("rows = %+v, want the one product row", rows)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"), Options{}); err == nil {
		t.Error("ReadFile() on missing path: error = nil, want error")
	}
}
