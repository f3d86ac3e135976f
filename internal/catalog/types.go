// Package catalog implements the product feed reconciliation engine.
//
// Each feed row is resolved against the store by barcode, planned into a
// create, update, or skip action, and written to the two catalog tables
// (product and product_lang) so that the pair never diverges: no product
// without its localized row, no localized row without its product. The whole
// batch runs inside one transaction; row-scoped failures skip and continue,
// connection-scoped failures roll the entire batch back.
//
// This package has no knowledge of spreadsheets or HTTP; it consumes
// already-materialized feed rows and reports structured outcomes.
package catalog

import (
	"context"
	"time"
)

// ActionKind classifies what happened (or would happen) to a feed row.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionSkip   ActionKind = "skip"
)

// Fields are the mutable product fields carried by a feed row after
// validation and coercion.
type Fields struct {
	Barcode string
	Name    string
	Price   float64
	Slug    string
}

// Plan is the planner's decision for one feed row.
type Plan struct {
	Kind   ActionKind
	ID     int64 // target product id; set for updates
	Fields Fields
}

// Product is one row of the core product table. The invariant-bearing
// fields (ID, Barcode, Price) are explicit; everything else the store
// schema requires rides along as Defaults.
type Product struct {
	ID       int64
	Barcode  string
	Price    float64
	Defaults ProductDefaults
}

// ProductLang is the localized text row paired with a Product, scoped to
// one (language, shop) pair.
type ProductLang struct {
	ProductID int64
	LangID    int
	ShopID    int
	Name      string
	Slug      string // link_rewrite
	MetaTitle string
}

// Store is the catalog persistence surface the import engine needs: point
// lookup by barcode and by max id, the paired inserts and updates, and the
// compensating delete. Implemented by the pgx transaction store and by the
// in-memory fake in tests.
type Store interface {
	ProductIDByBarcode(ctx context.Context, barcode string) (int64, bool, error)
	MaxProductID(ctx context.Context) (int64, error)
	InsertProduct(ctx context.Context, p Product) error
	InsertLocalized(ctx context.Context, l ProductLang) error
	UpdateProduct(ctx context.Context, id int64, price float64) error
	UpdateLocalized(ctx context.Context, l ProductLang) error
	DeleteProduct(ctx context.Context, id int64) error
}

// Tx is one batch transaction: a Store plus its commit boundary.
type Tx interface {
	Store
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DB opens batch transactions against the catalog store.
type DB interface {
	BeginBatch(ctx context.Context) (Tx, error)
}

// Outcome is the structured per-row result event. Exactly one Outcome is
// emitted per feed row; Error is non-empty for rows counted as errors.
type Outcome struct {
	Row     int        `json:"row"`  // 1-based position in the batch
	Line    int        `json:"line"` // line number in the source sheet
	Barcode string     `json:"barcode,omitempty"`
	Action  ActionKind `json:"action"`
	ID      int64      `json:"idProduct,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// OutcomeFunc receives per-row outcome events as the batch progresses.
type OutcomeFunc func(Outcome)

// Summary is the terminal result of one import batch.
type Summary struct {
	BatchID  string        `json:"batchId"`
	Total    int           `json:"total"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Errors   int           `json:"errors"`
	DryRun   bool          `json:"dryRun,omitempty"`
	Duration time.Duration `json:"duration"`
}
