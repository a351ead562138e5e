package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"plsync/config"
	"plsync/internal/retry"
	"plsync/ledger"
	"plsync/youtube"
)

// Runner executes the full sync pipeline against one channel. Stages run
// sequentially; remote failures abort the run, while a missing local table
// in the tidy and filter stages is reported and skipped.
type Runner struct {
	cfg     *config.Config
	catalog youtube.Catalog

	videos     *ledger.VideoTable
	playlists  *ledger.PlaylistTable
	categories *ledger.CategoryTable
}

// NewRunner builds a runner backed by the real YouTube Data API.
func NewRunner(cfg *config.Config) (*Runner, error) {
	catalog, err := youtube.NewAPICatalog(cfg.APIKey, cfg.PageInterval)
	if err != nil {
		return nil, fmt.Errorf("create catalog: %w", err)
	}
	catalog.RetryConfig = &retry.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Multiplier:     cfg.BackoffMultiplier,
	}
	return NewRunnerWithCatalog(cfg, catalog), nil
}

// NewRunnerWithCatalog builds a runner around an existing catalog.
// Tests use this to substitute a fake remote.
func NewRunnerWithCatalog(cfg *config.Config, catalog youtube.Catalog) *Runner {
	return &Runner{
		cfg:        cfg,
		catalog:    catalog,
		videos:     ledger.NewVideoTable(cfg.VideosCSV),
		playlists:  ledger.NewPlaylistTable(cfg.PlaylistsCSV),
		categories: ledger.NewCategoryTable(cfg.CategoriesCSV),
	}
}

// Run executes the pipeline end to end: list remote playlists, reconcile
// against the ledger, ingest stale playlists, tidy the video ledger,
// filter by checked channels, and publish the export.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.New().String()[:8]
	log.Printf("plsync: run %s: channel %s", runID, r.cfg.ChannelID)

	remote, err := r.catalog.ListPlaylists(ctx, r.cfg.ChannelID)
	if err != nil {
		return fmt.Errorf("list playlists: %w", err)
	}
	log.Printf("plsync: run %s: %d remote playlists", runID, len(remote))

	entries, err := r.playlists.Load()
	if err != nil {
		if !ledger.IsMissing(err) {
			return fmt.Errorf("load playlist ledger: %w", err)
		}
		log.Printf("plsync: run %s: playlist ledger missing, treating as empty", runID)
		entries = nil
	}

	stale := SelectStale(remote, entries)
	log.Printf("plsync: run %s: %d playlists need ingestion", runID, len(stale))

	ingestor := &Ingestor{Catalog: r.catalog, Videos: r.videos, Playlists: r.playlists}
	for _, info := range stale {
		appended, err := ingestor.Ingest(ctx, info)
		if err != nil {
			return err
		}
		log.Printf("plsync: run %s: ingested %q (%d videos)", runID, info.Title, appended)
	}

	if err := r.Tidy(); err != nil {
		return err
	}
	if err := r.Filter(); err != nil {
		return err
	}

	if err := r.PublishExport(); err != nil {
		log.Printf("plsync: run %s: %v", runID, err)
	}

	log.Printf("plsync: run %s: done", runID)
	return nil
}

// Tidy runs the dedupe and sort pass over the video ledger. A missing
// ledger is reported and skipped.
func (r *Runner) Tidy() error {
	before, after, err := r.videos.Normalize()
	if err != nil {
		if ledger.IsMissing(err) {
			log.Printf("plsync: tidy: video ledger missing, skipping")
			return nil
		}
		return fmt.Errorf("tidy: %w", err)
	}
	log.Printf("plsync: tidy: %d rows -> %d rows", before, after)
	return nil
}

// Filter writes the filtered export: video rows whose channel carries a
// check flag in the category table, in ledger order. A missing video
// ledger or category table is reported and skipped.
func (r *Runner) Filter() error {
	records, err := r.videos.Load()
	if err != nil {
		if ledger.IsMissing(err) {
			log.Printf("plsync: filter: video ledger missing, skipping")
			return nil
		}
		return fmt.Errorf("filter: %w", err)
	}

	checked, err := r.categories.CheckedChannels()
	if err != nil {
		if ledger.IsMissing(err) {
			log.Printf("plsync: filter: category table missing, skipping")
			return nil
		}
		return fmt.Errorf("filter: %w", err)
	}

	filtered := ledger.FilterByChannel(records, checked)
	export := ledger.NewVideoTable(r.cfg.FilteredCSV)
	if err := export.Save(filtered); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	log.Printf("plsync: filter: %d of %d rows exported", len(filtered), len(records))
	return nil
}

// PublishExport copies the filtered export to the configured destination.
// An empty publish path disables the stage.
func (r *Runner) PublishExport() error {
	if r.cfg.PublishPath == "" {
		return nil
	}
	if err := Publish(r.cfg.FilteredCSV, r.cfg.PublishPath); err != nil {
		return err
	}
	log.Printf("plsync: published %s -> %s", r.cfg.FilteredCSV, r.cfg.PublishPath)
	return nil
}

// RefreshCounts refreshes the playlist ledger's counts from the remote.
func (r *Runner) RefreshCounts(ctx context.Context) (int, error) {
	return RefreshCounts(ctx, r.catalog, r.playlists, r.cfg.ChannelID)
}

// CheckLatest checks the most recent playlist's count against the remote.
func (r *Runner) CheckLatest(ctx context.Context) (LatestReport, error) {
	return CheckLatest(ctx, r.catalog, r.playlists, r.cfg.ChannelID)
}

// Playlists lists the playlist ledger contents.
func (r *Runner) Playlists() ([]ledger.PlaylistEntry, error) {
	return r.playlists.Load()
}
