package ledger

import (
	"fmt"
	"log"
	"strconv"

	"plsync/youtube"
)

// playlistHeader is the persisted column order of the playlist ledger.
// The playlist_id cell holds the full playlist URL on disk; entries carry
// the bare id in memory. Normalization happens only at this boundary.
var playlistHeader = []string{"title", "playlist_id", "video_count"}

// PlaylistEntry is one row of the playlist ledger, keyed by ID.
// VideoCount reflects the count observed during the most recent ingestion
// of the playlist, not necessarily the current remote truth.
type PlaylistEntry struct {
	Title      string
	ID         string
	VideoCount int64
}

// PlaylistTable is the playlist ledger backed by a single CSV file.
type PlaylistTable struct {
	path string
}

// NewPlaylistTable opens a playlist ledger at the given path.
func NewPlaylistTable(path string) *PlaylistTable {
	return &PlaylistTable{path: path}
}

// Path returns the backing file path.
func (t *PlaylistTable) Path() string { return t.path }

// Load reads the whole table, normalizing persisted playlist URLs to bare
// ids. Malformed rows are skipped and reported; a missing file returns
// ErrLedgerMissing.
func (t *PlaylistTable) Load() ([]PlaylistEntry, error) {
	header, rows, err := readTable(t.path, "playlists")
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(header, playlistHeader...)
	if err != nil {
		return nil, &LedgerError{Op: "read", Table: "playlists", Err: err}
	}

	entries := make([]PlaylistEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parsePlaylistRow(row, idx)
		if err != nil {
			log.Printf("ledger: skipping row: %v", &RowError{Table: "playlists", Line: i + 2, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save replaces the whole table, denormalizing bare ids back to full URLs.
func (t *PlaylistTable) Save(entries []PlaylistEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Title,
			youtube.PlaylistURL(entry.ID),
			strconv.FormatInt(entry.VideoCount, 10),
		})
	}
	return writeTable(t.path, "playlists", playlistHeader, rows)
}

// Upsert updates the entry with the same id in place, or appends it when
// absent, then rewrites the table. A missing table is treated as empty.
func (t *PlaylistTable) Upsert(entry PlaylistEntry) error {
	entries, err := t.Load()
	if err != nil {
		if !IsMissing(err) {
			return err
		}
		entries = nil
	}

	updated := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, entry)
	}

	return t.Save(entries)
}

// parsePlaylistRow converts one CSV row into a PlaylistEntry.
func parsePlaylistRow(row []string, idx map[string]int) (PlaylistEntry, error) {
	title, err := field(row, idx, "title")
	if err != nil {
		return PlaylistEntry{}, err
	}

	rawID, err := field(row, idx, "playlist_id")
	if err != nil {
		return PlaylistEntry{}, err
	}
	id := youtube.NormalizePlaylistID(rawID)
	if id == "" {
		return PlaylistEntry{}, fmt.Errorf("empty playlist id")
	}

	rawCount, err := field(row, idx, "video_count")
	if err != nil {
		return PlaylistEntry{}, err
	}
	count, err := strconv.ParseInt(rawCount, 10, 64)
	if err != nil {
		return PlaylistEntry{}, fmt.Errorf("bad video_count %q", rawCount)
	}
	if count < 0 {
		return PlaylistEntry{}, fmt.Errorf("negative video_count %d", count)
	}

	return PlaylistEntry{Title: title, ID: id, VideoCount: count}, nil
}
