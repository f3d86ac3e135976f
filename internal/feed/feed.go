// Package feed reads spreadsheet product feeds into ordered row sequences.
//
// The feed is positional: each product line carries a barcode, a display
// name, and an optional price, located by spreadsheet column letters. The
// package only materializes rows; deciding what to do with them is the
// catalog package's job.
package feed

// Row is one product line from the feed.
//
// Barcode and Name are trimmed of surrounding whitespace. Price is the raw
// cell text; numeric coercion (and its fallback to zero) happens during
// planning so that a bad price never rejects a row at read time.
type Row struct {
	Line    int // 1-based line number in the source sheet
	Barcode string
	Name    string
	Price   string
}

// Columns locates the product fields in the sheet by column letter.
type Columns struct {
	Barcode string
	Name    string
	Price   string
}

// DefaultColumns matches the supplier's standard price list layout.
var DefaultColumns = Columns{Barcode: "A", Name: "B", Price: "E"}

// Options control how a feed file is read.
type Options struct {
	// Sheet is the worksheet name; empty selects the first sheet.
	Sheet string

	// Columns locates the product fields. Zero value means DefaultColumns.
	Columns Columns

	// HeaderRows is the number of leading rows to skip.
	HeaderRows int
}

func (o Options) columns() Columns {
	if o.Columns == (Columns{}) {
		return DefaultColumns
	}
	return o.Columns
}
