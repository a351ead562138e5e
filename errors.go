package plsync

import (
	"plsync/ledger"
	"plsync/pipeline"
	"plsync/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, plsync.ErrLedgerMissing) {
//		fmt.Println("ledger file does not exist")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var rowErr *plsync.RowError
//	if errors.As(err, &rowErr) {
//		fmt.Printf("bad row %d: %v\n", rowErr.Line, rowErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// ListError wraps errors from remote catalog listing operations.
	ListError = youtube.ListError
	// LedgerError wraps errors during ledger table operations.
	LedgerError = ledger.LedgerError
	// RowError describes a ledger row that could not be parsed.
	RowError = ledger.RowError
	// PublishError wraps errors from the terminal publish step.
	PublishError = pipeline.PublishError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the remote channel does not exist.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrPlaylistNotFound indicates the remote playlist does not exist.
	ErrPlaylistNotFound = youtube.ErrPlaylistNotFound
	// ErrQuotaExceeded indicates the API quota or rate limit was exceeded.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout

	// ErrLedgerMissing indicates an expected ledger table file does not exist.
	ErrLedgerMissing = ledger.ErrLedgerMissing
	// ErrLedgerCorrupt indicates a ledger table could not be read as CSV.
	ErrLedgerCorrupt = ledger.ErrLedgerCorrupt
)
