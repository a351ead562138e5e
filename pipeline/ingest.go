package pipeline

import (
	"context"
	"fmt"

	"plsync/ledger"
	"plsync/youtube"
)

// Ingestor pulls a playlist's items from the remote catalog into the video
// ledger and records the observed count in the playlist ledger.
type Ingestor struct {
	Catalog   youtube.Catalog
	Videos    *ledger.VideoTable
	Playlists *ledger.PlaylistTable
}

// Ingest fetches every item of the playlist, appends them to the video
// ledger, then upserts the playlist ledger entry with the remote count.
// It returns the number of rows appended.
//
// The video ledger is written before the playlist entry on purpose: an
// interruption between the two writes leaves the playlist looking stale,
// so the next run re-ingests it and the tidy pass drops the duplicates.
// Idempotence lives downstream, not here.
func (in *Ingestor) Ingest(ctx context.Context, info youtube.PlaylistInfo) (int, error) {
	items, err := in.Catalog.ListPlaylistItems(ctx, info.ID)
	if err != nil {
		return 0, fmt.Errorf("ingest %q: %w", info.Title, err)
	}

	records := make([]ledger.VideoRecord, 0, len(items))
	for _, item := range items {
		records = append(records, ledger.VideoRecord{
			Title:    item.Title,
			Channel:  item.Channel,
			Date:     item.Published,
			URL:      item.URL,
			Playlist: info.Title,
		})
	}

	appended, err := in.Videos.Append(records)
	if err != nil {
		return 0, fmt.Errorf("ingest %q: %w", info.Title, err)
	}

	entry := ledger.PlaylistEntry{Title: info.Title, ID: info.ID, VideoCount: info.VideoCount}
	if err := in.Playlists.Upsert(entry); err != nil {
		return appended, fmt.Errorf("ingest %q: %w", info.Title, err)
	}
	return appended, nil
}
