package catalog

import "context"

// resolveBarcode reports whether the catalog already has a product for the
// barcode. Comparison is exact-string; the feed reader already trimmed the
// value. A store failure comes back as a LookupError (or passes through
// unchanged when systemic). It must never be mistaken for "not found",
// which would create a duplicate on the next run.
func resolveBarcode(ctx context.Context, s Store, barcode string) (int64, bool, error) {
	id, found, err := s.ProductIDByBarcode(ctx, barcode)
	if err != nil {
		if isSystemic(err) {
			return 0, false, err
		}
		return 0, false, &LookupError{Barcode: barcode, Err: err}
	}
	return id, found, nil
}
