package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the single-statement surface EnsureSchema needs.
// Satisfied by *pgxpool.Pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// No foreign key between the two tables: the import engine maintains the
// pairing itself (compensating delete on partial creation), matching the
// target store's own schema conventions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS product (
		id_product          BIGINT PRIMARY KEY,
		ean13               VARCHAR(13)    NOT NULL DEFAULT '',
		price               NUMERIC(20,6)  NOT NULL DEFAULT 0,
		id_category_default INTEGER        NOT NULL DEFAULT 1,
		id_shop_default     INTEGER        NOT NULL DEFAULT 1,
		id_tax_rules_group  INTEGER        NOT NULL DEFAULT 1,
		quantity            INTEGER        NOT NULL DEFAULT 0,
		minimal_quantity    INTEGER        NOT NULL DEFAULT 1,
		out_of_stock        INTEGER        NOT NULL DEFAULT 2,
		active              BOOLEAN        NOT NULL DEFAULT TRUE,
		visibility          VARCHAR(32)    NOT NULL DEFAULT 'both',
		condition           VARCHAR(32)    NOT NULL DEFAULT 'new',
		redirect_type       VARCHAR(32)    NOT NULL DEFAULT '404',
		available_for_order BOOLEAN        NOT NULL DEFAULT TRUE,
		show_price          BOOLEAN        NOT NULL DEFAULT TRUE,
		indexed             BOOLEAN        NOT NULL DEFAULT TRUE,
		weight              NUMERIC(20,6)  NOT NULL DEFAULT 0,
		width               NUMERIC(20,6)  NOT NULL DEFAULT 0,
		height              NUMERIC(20,6)  NOT NULL DEFAULT 0,
		depth               NUMERIC(20,6)  NOT NULL DEFAULT 0,
		pack_stock_type     INTEGER        NOT NULL DEFAULT 3,
		state               INTEGER        NOT NULL DEFAULT 1,
		product_type        VARCHAR(32)    NOT NULL DEFAULT 'standard',
		date_add            TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
		date_upd            TIMESTAMPTZ    NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS product_ean13_idx ON product (ean13)`,
	`CREATE TABLE IF NOT EXISTS product_lang (
		id_product        BIGINT       NOT NULL,
		id_lang           INTEGER      NOT NULL,
		id_shop           INTEGER      NOT NULL,
		name              VARCHAR(255) NOT NULL DEFAULT '',
		link_rewrite      VARCHAR(255) NOT NULL DEFAULT '',
		meta_title        VARCHAR(255) NOT NULL DEFAULT '',
		description       TEXT         NOT NULL DEFAULT '',
		description_short TEXT         NOT NULL DEFAULT '',
		PRIMARY KEY (id_product, id_lang, id_shop)
	)`,
}

// EnsureSchema creates the two catalog tables when they do not exist yet.
// Safe to run against a provisioned store; every statement is idempotent.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
