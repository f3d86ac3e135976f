package catalog

import (
	"errors"
	"fmt"
)

// WriteKind identifies which half of a paired write failed.
type WriteKind int

const (
	// WriteEntity: the core product insert failed; nothing was written.
	WriteEntity WriteKind = iota
	// WriteLocalized: the localized insert failed; the product row has
	// been compensated away, the pairing invariant holds.
	WriteLocalized
	// WritePartial: an update pair did not fully apply. Both rows still
	// exist, so the invariant is not at risk, only field staleness.
	WritePartial
)

func (k WriteKind) String() string {
	switch k {
	case WriteEntity:
		return "product write failed"
	case WriteLocalized:
		return "localized write failed"
	case WritePartial:
		return "partial update"
	default:
		return "write failed"
	}
}

// WriteError is a row-scoped dual-write failure. The batch continues after
// a WriteError; the row is counted as an error.
type WriteError struct {
	Kind WriteKind
	ID   int64
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("product %d: %s: %v", e.ID, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// LookupError reports that the resolver could not query the store for a
// barcode. It is distinct from "not found" and is never reinterpreted as
// eligibility for creation; the row is skipped instead.
type LookupError struct {
	Barcode string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup barcode %s: %v", e.Barcode, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// SystemicError marks a connection-scoped failure that invalidates the
// whole batch. The coordinator aborts on sight and rolls everything back,
// including rows that already succeeded in this run.
type SystemicError struct {
	Err error
}

func (e *SystemicError) Error() string {
	return fmt.Sprintf("batch failure: %v", e.Err)
}

func (e *SystemicError) Unwrap() error { return e.Err }

// isSystemic reports whether err (or anything it wraps) aborts the batch.
func isSystemic(err error) bool {
	var se *SystemicError
	return errors.As(err, &se)
}
