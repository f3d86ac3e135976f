package catalog

// The fake store mirrors the real transaction semantics: every batch works
// on a scratch copy of the data and only Commit publishes it. Hooks let
// individual tests inject row-scoped or systemic failures at any point of
// the resolve/allocate/write sequence.

import (
	"context"
	"fmt"
)

type fakeData struct {
	products map[int64]Product
	langs    map[int64]ProductLang // one localized row per product
}

func newFakeData() *fakeData {
	return &fakeData{
		products: make(map[int64]Product),
		langs:    make(map[int64]ProductLang),
	}
}

func (d *fakeData) clone() *fakeData {
	c := newFakeData()
	for id, p := range d.products {
		c.products[id] = p
	}
	for id, l := range d.langs {
		c.langs[id] = l
	}
	return c
}

// storeHooks run before the corresponding store operation. A non-nil
// return fails the operation without touching the data.
type storeHooks struct {
	lookup        func(barcode string) error
	maxID         func() error
	insertProduct func(p Product) error
	insertLang    func(l ProductLang) error
	updateProduct func(id int64) error
	updateLang    func(l ProductLang) error
	deleteProduct func(id int64) error
}

type fakeDB struct {
	data     *fakeData
	hooks    storeHooks
	beginErr error
	lastTx   *fakeTx
}

func newFakeDB() *fakeDB {
	return &fakeDB{data: newFakeData()}
}

func (db *fakeDB) BeginBatch(ctx context.Context) (Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	tx := &fakeTx{db: db, scratch: db.data.clone(), hooks: db.hooks}
	db.lastTx = tx
	return tx, nil
}

type fakeTx struct {
	db         *fakeDB
	scratch    *fakeData
	hooks      storeHooks
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	t.db.data = t.scratch
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) ProductIDByBarcode(ctx context.Context, barcode string) (int64, bool, error) {
	if t.hooks.lookup != nil {
		if err := t.hooks.lookup(barcode); err != nil {
			return 0, false, err
		}
	}
	for id, p := range t.scratch.products {
		if p.Barcode == barcode {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (t *fakeTx) MaxProductID(ctx context.Context) (int64, error) {
	if t.hooks.maxID != nil {
		if err := t.hooks.maxID(); err != nil {
			return 0, err
		}
	}
	var max int64
	for id := range t.scratch.products {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (t *fakeTx) InsertProduct(ctx context.Context, p Product) error {
	if t.hooks.insertProduct != nil {
		if err := t.hooks.insertProduct(p); err != nil {
			return err
		}
	}
	if _, exists := t.scratch.products[p.ID]; exists {
		return fmt.Errorf("duplicate product id %d", p.ID)
	}
	t.scratch.products[p.ID] = p
	return nil
}

func (t *fakeTx) InsertLocalized(ctx context.Context, l ProductLang) error {
	if t.hooks.insertLang != nil {
		if err := t.hooks.insertLang(l); err != nil {
			return err
		}
	}
	if _, exists := t.scratch.langs[l.ProductID]; exists {
		return fmt.Errorf("duplicate localized row for product %d", l.ProductID)
	}
	t.scratch.langs[l.ProductID] = l
	return nil
}

func (t *fakeTx) UpdateProduct(ctx context.Context, id int64, price float64) error {
	if t.hooks.updateProduct != nil {
		if err := t.hooks.updateProduct(id); err != nil {
			return err
		}
	}
	if p, ok := t.scratch.products[id]; ok {
		p.Price = price
		t.scratch.products[id] = p
	}
	return nil
}

func (t *fakeTx) UpdateLocalized(ctx context.Context, l ProductLang) error {
	if t.hooks.updateLang != nil {
		if err := t.hooks.updateLang(l); err != nil {
			return err
		}
	}
	if existing, ok := t.scratch.langs[l.ProductID]; ok {
		existing.Name = l.Name
		existing.Slug = l.Slug
		existing.MetaTitle = l.MetaTitle
		t.scratch.langs[l.ProductID] = existing
	}
	return nil
}

func (t *fakeTx) DeleteProduct(ctx context.Context, id int64) error {
	if t.hooks.deleteProduct != nil {
		if err := t.hooks.deleteProduct(id); err != nil {
			return err
		}
	}
	delete(t.scratch.products, id)
	return nil
}

// checkPairing fails the test when the two tables have diverged.
func checkPairing(t testingT, d *fakeData) {
	t.Helper()
	if len(d.products) != len(d.langs) {
		t.Fatalf("pairing invariant broken: %d products vs %d localized rows",
			len(d.products), len(d.langs))
	}
	for id := range d.products {
		if _, ok := d.langs[id]; !ok {
			t.Fatalf("product %d has no localized row", id)
		}
	}
}

// testingT is the slice of *testing.T that checkPairing needs.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
