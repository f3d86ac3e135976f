package catalog

import (
	"strconv"

	"github.com/poissondor/catimport/internal/feed"
)

// missingFields returns the skip reason for rows that fail validation, or
// "" for valid rows. Barcode and name are the only mandatory fields; the
// check runs before any store access so skipped rows never touch the
// database.
func missingFields(row feed.Row) string {
	switch {
	case row.Barcode == "" && row.Name == "":
		return "missing barcode and name"
	case row.Barcode == "":
		return "missing barcode"
	case row.Name == "":
		return "missing name"
	default:
		return ""
	}
}

// planRow decides the action for a validated feed row. Resolution already
// happened: found reports whether resolvedID identifies an existing product.
func planRow(row feed.Row, resolvedID int64, found bool) Plan {
	p := Plan{
		Fields: Fields{
			Barcode: row.Barcode,
			Name:    row.Name,
			Price:   parsePrice(row.Price),
			Slug:    Slug(row.Name),
		},
	}
	if found {
		p.Kind = ActionUpdate
		p.ID = resolvedID
	} else {
		p.Kind = ActionCreate
	}
	return p
}

// parsePrice coerces a raw price cell to a monetary amount. Absent or
// unparseable values fall back to 0 rather than rejecting the row; the feed
// never carries signed prices, so negatives are treated like any other
// unparseable cell.
func parsePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
