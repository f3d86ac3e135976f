package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB wraps a pgx connection pool as a catalog DB. The pool is acquired
// per batch: BeginBatch holds one connection for the duration of the batch
// and releases it on commit or rollback.
func NewDB(pool *pgxpool.Pool) DB {
	return &pgDB{pool: pool}
}

type pgDB struct {
	pool *pgxpool.Pool
}

func (db *pgDB) BeginBatch(ctx context.Context) (Tx, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, &SystemicError{Err: fmt.Errorf("begin batch transaction: %w", err)}
	}
	return &pgTx{tx: tx}, nil
}

// pgTx is the Store implementation over one batch transaction.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return &SystemicError{Err: fmt.Errorf("commit batch: %w", err)}
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// exec runs one write under a savepoint. A failed statement poisons an
// open Postgres transaction, so without the savepoint a row-scoped failure
// would take the whole batch down with it. Savepoint management failures
// are connection trouble and surface as systemic.
func (t *pgTx) exec(ctx context.Context, query string, args ...any) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return &SystemicError{Err: fmt.Errorf("savepoint: %w", err)}
	}
	if _, err := sp.Exec(ctx, query, args...); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return &SystemicError{Err: fmt.Errorf("savepoint rollback: %w", rbErr)}
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return &SystemicError{Err: fmt.Errorf("savepoint release: %w", err)}
	}
	return nil
}

func (t *pgTx) ProductIDByBarcode(ctx context.Context, barcode string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id_product FROM product WHERE ean13 = $1`,
		barcode,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (t *pgTx) MaxProductID(ctx context.Context) (int64, error) {
	// MAX over an empty table is NULL, hence the nullable scan target.
	var max pgtype.Int8
	if err := t.tx.QueryRow(ctx, `SELECT MAX(id_product) FROM product`).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Int64, nil
}

func (t *pgTx) InsertProduct(ctx context.Context, p Product) error {
	d := p.Defaults
	return t.exec(ctx, `
		INSERT INTO product (
			id_product, ean13, price,
			id_category_default, id_shop_default, id_tax_rules_group,
			quantity, minimal_quantity, out_of_stock,
			active, visibility, condition, redirect_type,
			available_for_order, show_price, indexed,
			weight, width, height, depth,
			pack_stock_type, state, product_type,
			date_add, date_upd
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23,
			NOW(), NOW()
		)`,
		p.ID, p.Barcode, p.Price,
		d.CategoryDefault, d.ShopDefault, d.TaxRulesGroup,
		d.Quantity, d.MinimalQuantity, d.OutOfStock,
		d.Active, d.Visibility, d.Condition, d.RedirectType,
		d.AvailableForOrder, d.ShowPrice, d.Indexed,
		d.Weight, d.Width, d.Height, d.Depth,
		d.PackStockType, d.State, d.ProductType,
	)
}

func (t *pgTx) InsertLocalized(ctx context.Context, l ProductLang) error {
	return t.exec(ctx, `
		INSERT INTO product_lang (
			id_product, id_lang, id_shop,
			name, link_rewrite, meta_title,
			description, description_short
		) VALUES ($1, $2, $3, $4, $5, $6, '', '')`,
		l.ProductID, l.LangID, l.ShopID,
		l.Name, l.Slug, l.MetaTitle,
	)
}

func (t *pgTx) UpdateProduct(ctx context.Context, id int64, price float64) error {
	return t.exec(ctx, `
		UPDATE product
		SET price = $1, date_upd = NOW()
		WHERE id_product = $2`,
		price, id,
	)
}

func (t *pgTx) UpdateLocalized(ctx context.Context, l ProductLang) error {
	return t.exec(ctx, `
		UPDATE product_lang
		SET name = $1, meta_title = $2, link_rewrite = $3
		WHERE id_product = $4 AND id_lang = $5 AND id_shop = $6`,
		l.Name, l.MetaTitle, l.Slug,
		l.ProductID, l.LangID, l.ShopID,
	)
}

func (t *pgTx) DeleteProduct(ctx context.Context, id int64) error {
	return t.exec(ctx, `DELETE FROM product WHERE id_product = $1`, id)
}
