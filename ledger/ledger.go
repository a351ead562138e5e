// Package ledger persists the pipeline's durable state between runs as flat
// CSV tables: a video ledger, a playlist ledger, and a read-only category
// table. Every mutation reads the whole table, modifies it in memory, and
// atomically replaces the file; there is no row-level update API.
package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common ledger conditions.
var (
	// ErrLedgerMissing indicates an expected table file does not exist.
	ErrLedgerMissing = errors.New("ledger: table file missing")
	// ErrLedgerCorrupt indicates a table could not be read as CSV or its
	// header lacks a required column.
	ErrLedgerCorrupt = errors.New("ledger: table corrupt")
)

// LedgerError wraps ledger errors with operation and table context.
// Use errors.As() to extract this error type and get operation details:
//
//	var ledErr *ledger.LedgerError
//	if errors.As(err, &ledErr) {
//		fmt.Printf("failed to %s %s: %v\n", ledErr.Op, ledErr.Table, ledErr.Err)
//	}
type LedgerError struct {
	// Op is the operation that failed ("read", "write").
	Op string
	// Table is the table name ("videos", "playlists", "categories", "export").
	Table string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the ledger error.
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *LedgerError) Unwrap() error { return e.Err }

// RowError describes a single malformed ledger row. Rows that fail to parse
// are skipped and reported; they never abort a table load.
type RowError struct {
	// Table is the table the row belongs to.
	Table string
	// Line is the 1-based line number in the file, header included.
	Line int
	// Err is the underlying parse error.
	Err error
}

// Error returns a string representation of the row error.
func (e *RowError) Error() string {
	return fmt.Sprintf("ledger: %s row %d: %v", e.Table, e.Line, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *RowError) Unwrap() error { return e.Err }
