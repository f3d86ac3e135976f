package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poissondor/catimport/internal/feed"
)

// Importer is the batch coordinator. It drives the feed rows through
// resolve, plan, and write in input order, strictly sequentially: each
// row finishes before the next starts, which is what keeps the MAX+1
// identifier allocation correct without locking.
type Importer struct {
	db        DB
	langID    int
	shopID    int
	logger    *slog.Logger
	onOutcome OutcomeFunc
}

// Option configures an Importer.
type Option func(*Importer)

// WithLocale sets the (language, shop) pair localized rows are written for.
func WithLocale(langID, shopID int) Option {
	return func(imp *Importer) {
		imp.langID = langID
		imp.shopID = shopID
	}
}

// WithLogger sets the logger outcome and summary events are written to.
func WithLogger(l *slog.Logger) Option {
	return func(imp *Importer) { imp.logger = l }
}

// WithOutcomeFunc registers a callback invoked once per processed row, in
// row order, from the importing goroutine.
func WithOutcomeFunc(fn OutcomeFunc) Option {
	return func(imp *Importer) { imp.onOutcome = fn }
}

// New creates an Importer over db. Locale defaults to language 1, shop 1.
func New(db DB, opts ...Option) *Importer {
	imp := &Importer{
		db:     db,
		langID: 1,
		shopID: 1,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Run processes the feed inside one batch transaction and commits at the
// end. Row-scoped failures (validation, lookup, dual-write) skip the row
// and continue; a systemic failure aborts the run, rolls the whole batch
// back (rows that already succeeded included), and is returned as the
// error. The returned Summary always reflects what was attempted.
func (imp *Importer) Run(ctx context.Context, rows []feed.Row) (Summary, error) {
	return imp.run(ctx, rows, false)
}

// DryRun resolves and plans every row without writing anything, then
// discards the transaction. Counters report what a real run would do,
// except that rows sharing a barcode within the same feed all plan as
// creates: with no writes there is nothing for the later ones to resolve
// against.
func (imp *Importer) DryRun(ctx context.Context, rows []feed.Row) (Summary, error) {
	return imp.run(ctx, rows, true)
}

func (imp *Importer) run(ctx context.Context, rows []feed.Row, dry bool) (Summary, error) {
	start := time.Now()
	summary := Summary{
		BatchID: uuid.New().String(),
		Total:   len(rows),
		DryRun:  dry,
	}
	logger := imp.logger.With("batch_id", summary.BatchID)

	tx, err := imp.db.BeginBatch(ctx)
	if err != nil {
		summary.Duration = time.Since(start)
		return summary, err
	}

	logger.Info("import started", "rows", len(rows), "dry_run", dry)
	writer := NewWriter(tx, imp.langID, imp.shopID)

	for i, row := range rows {
		if ctx.Err() != nil {
			return imp.abort(ctx, tx, logger, summary, start, &SystemicError{Err: ctx.Err()})
		}

		outcome, err := imp.processRow(ctx, tx, writer, dry, i+1, row)
		if err != nil {
			return imp.abort(ctx, tx, logger, summary, start, err)
		}

		switch {
		case outcome.Error != "":
			summary.Errors++
		case outcome.Action == ActionCreate:
			summary.Created++
		case outcome.Action == ActionUpdate:
			summary.Updated++
		}
		imp.emit(logger, outcome)
	}

	if dry {
		if err := tx.Rollback(ctx); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
	} else if err := tx.Commit(ctx); err != nil {
		summary.Duration = time.Since(start)
		logger.Error("batch commit failed", "error", err)
		return summary, err
	}

	summary.Duration = time.Since(start)
	logger.Info("import finished",
		"created", summary.Created,
		"updated", summary.Updated,
		"errors", summary.Errors,
		"dry_run", dry,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return summary, nil
}

// abort rolls the batch back after a systemic failure. The store is left
// exactly as it was before Run started.
func (imp *Importer) abort(ctx context.Context, tx Tx, logger *slog.Logger, summary Summary, start time.Time, cause error) (Summary, error) {
	// The batch context may already be cancelled; rollback must still run.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		logger.Error("batch rollback failed", "error", err)
	}
	summary.Duration = time.Since(start)
	logger.Error("import aborted, batch rolled back",
		"created_discarded", summary.Created,
		"updated_discarded", summary.Updated,
		"error", cause,
	)
	return summary, cause
}

// processRow takes one feed row through resolve → plan → write. The
// returned error is nil for every row-scoped outcome (those are reported
// inside the Outcome); a non-nil error is systemic and aborts the batch.
func (imp *Importer) processRow(ctx context.Context, store Store, writer *Writer, dry bool, n int, row feed.Row) (Outcome, error) {
	out := Outcome{Row: n, Line: row.Line, Barcode: row.Barcode}

	if reason := missingFields(row); reason != "" {
		out.Action = ActionSkip
		out.Error = reason
		return out, nil
	}

	id, found, err := resolveBarcode(ctx, store, row.Barcode)
	if err != nil {
		if isSystemic(err) {
			return out, err
		}
		out.Action = ActionSkip
		out.Error = err.Error()
		return out, nil
	}

	plan := planRow(row, id, found)
	out.Action = plan.Kind

	switch plan.Kind {
	case ActionCreate:
		if dry {
			return out, nil
		}
		newID, err := nextID(ctx, store)
		if err != nil {
			if isSystemic(err) {
				return out, err
			}
			out.Error = err.Error()
			return out, nil
		}
		out.ID = newID
		if err := writer.CreatePair(ctx, newID, plan.Fields); err != nil {
			if isSystemic(err) {
				return out, err
			}
			out.Error = err.Error()
		}

	case ActionUpdate:
		out.ID = plan.ID
		if dry {
			return out, nil
		}
		if err := writer.UpdatePair(ctx, plan.ID, plan.Fields); err != nil {
			if isSystemic(err) {
				return out, err
			}
			out.Error = err.Error()
		}
	}

	return out, nil
}

// emit publishes the per-row outcome event: one structured log entry plus
// the optional callback.
func (imp *Importer) emit(logger *slog.Logger, out Outcome) {
	if out.Error != "" {
		logger.Warn("row failed",
			"row", out.Row,
			"line", out.Line,
			"barcode", out.Barcode,
			"action", out.Action,
			"error", out.Error,
		)
	} else {
		logger.Info("row processed",
			"row", out.Row,
			"line", out.Line,
			"barcode", out.Barcode,
			"action", out.Action,
			"id_product", out.ID,
		)
	}
	if imp.onOutcome != nil {
		imp.onOutcome(out)
	}
}
