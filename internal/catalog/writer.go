package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Writer executes the paired product/localized writes. It owns the fixed
// (language, shop) scope every localized row is written for.
type Writer struct {
	store  Store
	langID int
	shopID int
}

// NewWriter returns a Writer over store scoped to one language/shop pair.
func NewWriter(store Store, langID, shopID int) *Writer {
	return &Writer{store: store, langID: langID, shopID: shopID}
}

func (w *Writer) localized(id int64, f Fields) ProductLang {
	return ProductLang{
		ProductID: id,
		LangID:    w.langID,
		ShopID:    w.shopID,
		Name:      f.Name,
		Slug:      f.Slug,
		MetaTitle: f.Name,
	}
}

// CreatePair inserts the product row and its localized row. If the
// localized insert fails, the product row is deleted again so the two
// tables stay paired while the batch keeps going. A failed compensating
// delete escalates to a SystemicError: at that point only a full batch
// rollback restores consistency.
func (w *Writer) CreatePair(ctx context.Context, id int64, f Fields) error {
	p := Product{ID: id, Barcode: f.Barcode, Price: f.Price, Defaults: DefaultProduct}
	if err := w.store.InsertProduct(ctx, p); err != nil {
		if isSystemic(err) {
			return err
		}
		return &WriteError{Kind: WriteEntity, ID: id, Err: err}
	}

	if err := w.store.InsertLocalized(ctx, w.localized(id, f)); err != nil {
		if isSystemic(err) {
			return err
		}
		if delErr := w.store.DeleteProduct(ctx, id); delErr != nil {
			return &SystemicError{Err: fmt.Errorf("compensating delete for product %d: %w", id, delErr)}
		}
		return &WriteError{Kind: WriteLocalized, ID: id, Err: err}
	}

	return nil
}

// UpdatePair updates the product's price (and modification timestamp) and
// the localized row's name, meta title, and slug. Both sub-updates are
// attempted independently; any failure is reported as a partial update. No
// compensation runs: the pair already exists, so the pairing invariant is
// not at risk, only field staleness.
func (w *Writer) UpdatePair(ctx context.Context, id int64, f Fields) error {
	prodErr := w.store.UpdateProduct(ctx, id, f.Price)
	if isSystemic(prodErr) {
		return prodErr
	}

	langErr := w.store.UpdateLocalized(ctx, w.localized(id, f))
	if isSystemic(langErr) {
		return langErr
	}

	if prodErr != nil || langErr != nil {
		return &WriteError{Kind: WritePartial, ID: id, Err: errors.Join(prodErr, langErr)}
	}
	return nil
}
