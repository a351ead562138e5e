package ledger

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"
)

// videoHeader is the persisted column order of the video ledger.
var videoHeader = []string{"id", "title", "channel", "date", "url", "playlist"}

// dateFormats are accepted on read, newest convention first. Dates are
// always written back as RFC3339 UTC.
var dateFormats = []string{
	time.RFC3339,
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
}

// VideoRecord is one row of the video ledger.
//
// URL is the deduplication key: two records with equal URL are the same
// video and only one survives a tidy pass. ID carries no meaning beyond
// append ordering and is fully reassigned on every tidy pass.
type VideoRecord struct {
	ID       int
	Title    string
	Channel  string
	Date     time.Time
	URL      string
	Playlist string
}

// VideoTable is the video ledger backed by a single CSV file.
// All mutations use snapshot, mutate, replace semantics.
type VideoTable struct {
	path string
}

// NewVideoTable opens a video ledger at the given path. The file is not
// touched until the first Load or write.
func NewVideoTable(path string) *VideoTable {
	return &VideoTable{path: path}
}

// Path returns the backing file path.
func (t *VideoTable) Path() string { return t.path }

// Load reads the whole table. Malformed rows are skipped and reported;
// a missing file returns ErrLedgerMissing.
func (t *VideoTable) Load() ([]VideoRecord, error) {
	header, rows, err := readTable(t.path, "videos")
	if err != nil {
		return nil, err
	}

	idx, err := columnIndex(header, videoHeader...)
	if err != nil {
		return nil, &LedgerError{Op: "read", Table: "videos", Err: err}
	}

	records := make([]VideoRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := parseVideoRow(row, idx)
		if err != nil {
			log.Printf("ledger: skipping row: %v", &RowError{Table: "videos", Line: i + 2, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the whole table with the given records.
func (t *VideoTable) Save(records []VideoRecord) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.ID),
			rec.Title,
			rec.Channel,
			rec.Date.UTC().Format(time.RFC3339),
			rec.URL,
			rec.Playlist,
		})
	}
	return writeTable(t.path, "videos", videoHeader, rows)
}

// Append assigns contiguous ids to the new records, starting after the
// highest existing id, and rewrites the table with existing rows followed
// by the new ones. A missing table is treated as empty. It returns the
// number of rows appended.
//
// Append never deduplicates; a playlist re-ingested after a partial run
// produces duplicate URLs that the next tidy pass removes.
func (t *VideoTable) Append(records []VideoRecord) (int, error) {
	existing, err := t.Load()
	if err != nil {
		if !IsMissing(err) {
			return 0, err
		}
		existing = nil
	}

	next := NextID(existing)
	for i := range records {
		records[i].ID = next + i
	}

	if err := t.Save(append(existing, records...)); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Normalize runs the tidy pass: duplicate URLs are dropped (first
// occurrence in current row order wins), remaining rows are sorted by date
// descending, and ids are reassigned 1..N. The whole table is rewritten.
// It returns the row counts before and after the pass.
func (t *VideoTable) Normalize() (before, after int, err error) {
	records, err := t.Load()
	if err != nil {
		return 0, 0, err
	}

	tidied := DedupeSort(records)
	if err := t.Save(tidied); err != nil {
		return 0, 0, err
	}
	return len(records), len(tidied), nil
}

// DedupeSort is the pure tidy transform: drop rows with duplicate URLs
// keeping the first occurrence in input order, stable-sort by date
// descending (ties keep input order), and renumber ids 1..N.
// Running it twice yields the same result as running it once.
func DedupeSort(records []VideoRecord) []VideoRecord {
	seen := make(map[string]bool, len(records))
	out := make([]VideoRecord, 0, len(records))
	for _, rec := range records {
		if seen[rec.URL] {
			continue
		}
		seen[rec.URL] = true
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// NextID returns the id the next appended record should receive:
// one past the highest id present, and 1 for an empty ledger.
func NextID(records []VideoRecord) int {
	max := 0
	for _, rec := range records {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}

// FilterByChannel projects the records down to those whose channel is in
// the checked set, preserving input order. Ids are left untouched; they
// were assigned by the preceding tidy pass.
func FilterByChannel(records []VideoRecord, checked map[string]bool) []VideoRecord {
	out := make([]VideoRecord, 0, len(records))
	for _, rec := range records {
		if checked[rec.Channel] {
			out = append(out, rec)
		}
	}
	return out
}

// parseVideoRow converts one CSV row into a VideoRecord.
func parseVideoRow(row []string, idx map[string]int) (VideoRecord, error) {
	var rec VideoRecord

	for _, name := range videoHeader {
		value, err := field(row, idx, name)
		if err != nil {
			return VideoRecord{}, err
		}

		switch name {
		case "id":
			id, err := strconv.Atoi(value)
			if err != nil {
				return VideoRecord{}, fmt.Errorf("bad id %q", value)
			}
			rec.ID = id
		case "title":
			rec.Title = value
		case "channel":
			rec.Channel = value
		case "date":
			date, err := ParseDate(value)
			if err != nil {
				return VideoRecord{}, err
			}
			rec.Date = date
		case "url":
			if value == "" {
				return VideoRecord{}, fmt.Errorf("empty url")
			}
			rec.URL = value
		case "playlist":
			rec.Playlist = value
		}
	}
	return rec, nil
}

// ParseDate parses a ledger date in any of the accepted formats.
func ParseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

// IsMissing reports whether err means the table file does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, ErrLedgerMissing)
}
