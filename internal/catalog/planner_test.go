package catalog

import (
	"testing"

	"github.com/poissondor/catimport/internal/feed"
)

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name string
		row  feed.Row
		want string
	}{
		{"valid", feed.Row{Barcode: "3001", Name: "Widget"}, ""},
		{"no barcode", feed.Row{Name: "Widget"}, "missing barcode"},
		{"no name", feed.Row{Barcode: "3001"}, "missing name"},
		{"empty row", feed.Row{}, "missing barcode and name"},
		{"price alone is not enough", feed.Row{Price: "9.99"}, "missing barcode and name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := missingFields(tt.row); got != tt.want {
				t.Errorf("missingFields(%+v) = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain", "9.99", 9.99},
		{"integer", "12", 12},
		{"empty cell", "", 0},
		{"not a number", "N/A", 0},
		{"comma decimal", "9,99", 0},
		{"negative", "-3.50", 0},
		{"zero", "0", 0},
		{"scientific", "1e2", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePrice(tt.raw); got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPlanRow_Create(t *testing.T) {
	row := feed.Row{Line: 2, Barcode: "3001", Name: "Widget A", Price: "9.99"}

	p := planRow(row, 0, false)

	if p.Kind != ActionCreate {
		t.Fatalf("Kind = %q, want %q", p.Kind, ActionCreate)
	}
	if p.ID != 0 {
		t.Errorf("ID = %d, want 0 for creates", p.ID)
	}
	want := Fields{Barcode: "3001", Name: "Widget A", Price: 9.99, Slug: "widget-a"}
	if p.Fields != want {
		t.Errorf("Fields = %+v, want %+v", p.Fields, want)
	}
}

func TestPlanRow_Update(t *testing.T) {
	row := feed.Row{Line: 3, Barcode: "3002", Name: "Widget B", Price: "bad"}

	p := planRow(row, 42, true)

	if p.Kind != ActionUpdate {
		t.Fatalf("Kind = %q, want %q", p.Kind, ActionUpdate)
	}
	if p.ID != 42 {
		t.Errorf("ID = %d, want 42", p.ID)
	}
	if p.Fields.Price != 0 {
		t.Errorf("Price = %v, want 0 for an unparseable cell", p.Fields.Price)
	}
	if p.Fields.Slug != "widget-b" {
		t.Errorf("Slug = %q, want %q", p.Fields.Slug, "widget-b")
	}
}
