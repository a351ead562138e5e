// Package plsync synchronizes a local CSV catalog of YouTube playlist videos.
//
// It polls the YouTube Data API for the playlists of a channel, reconciles
// the observed video counts against a local playlist ledger, ingests the
// videos of any playlist that is new or stale, and post-processes the video
// ledger (duplicate removal, date ordering, id renumbering) before exporting
// the rows whose channel is flagged in a category table.
//
// Pipeline
//
// A full run executes the following stages in order:
//
//   1. List the channel's playlists from the remote API.
//   2. Reconcile remote video counts against the playlist ledger.
//   3. Ingest every playlist that is missing or whose count drifted.
//   4. Tidy the video ledger: drop duplicate URLs, sort newest first,
//      renumber ids from 1.
//   5. Filter the ledger down to checked channels and write the export.
//   6. Publish the export by copying it to the configured destination.
//
// Quick Start
//
// Run the whole pipeline from configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	runner, err := pipeline.NewRunner(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := runner.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// plsync loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (plsync.json in the working directory or the XDG config dir)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - PLSYNC_API_KEY: YouTube Data API key
//   - PLSYNC_CHANNEL_ID: channel whose playlists are synced
//   - PLSYNC_PLAYLISTS_CSV: playlist ledger path
//   - PLSYNC_VIDEOS_CSV: video ledger path
//   - PLSYNC_CATEGORIES_CSV: category table path (read-only)
//   - PLSYNC_FILTERED_CSV: filtered export path
//   - PLSYNC_PUBLISH_PATH: publication destination for the export
//   - PLSYNC_PAGE_INTERVAL: minimum delay between item-listing pages
//   - PLSYNC_MAX_RETRIES, PLSYNC_INITIAL_BACKOFF, PLSYNC_MAX_BACKOFF: retry tuning
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
//	if errors.Is(err, ledger.ErrLedgerMissing) {
//		fmt.Println("ledger file does not exist yet")
//	}
//
//	var listErr *youtube.ListError
//	if errors.As(err, &listErr) {
//		fmt.Printf("listing %s failed: %v\n", listErr.ID, listErr.Err)
//	}
//
// Remote API failures abort the run. A missing ledger file or a malformed
// ledger row is recovered locally: the affected stage (or row) is skipped
// and reported, and the run continues.
//
// Concurrency
//
// The pipeline is single-threaded and fully sequential. The only timing
// behavior is the deliberate blocking delay between consecutive
// playlist-item pages, which is a rate-limit throttle. Running two pipeline
// instances against the same ledger files is unsupported; every ledger
// write replaces the whole file.
package plsync
