package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"plsync/ledger"
	"plsync/youtube"
)

// trailingNumber matches an integer at the very end of a playlist title,
// e.g. "Weekly Mix 42".
var trailingNumber = regexp.MustCompile(`(\d+)$`)

// TitleNumber extracts the trailing integer of a playlist title, or -1
// when the title does not end in digits.
func TitleNumber(title string) int {
	m := trailingNumber.FindStringSubmatch(title)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// RefreshCounts overwrites each playlist ledger entry's video count with
// the count currently reported by the remote catalog. Entries for
// playlists no longer known remotely keep their stored count. It returns
// the number of entries updated.
func RefreshCounts(ctx context.Context, catalog youtube.Catalog, playlists *ledger.PlaylistTable, channelID string) (int, error) {
	remote, err := catalog.ListPlaylists(ctx, channelID)
	if err != nil {
		return 0, fmt.Errorf("refresh counts: %w", err)
	}
	counts := make(map[string]int64, len(remote))
	for _, info := range remote {
		counts[info.ID] = info.VideoCount
	}

	entries, err := playlists.Load()
	if err != nil {
		return 0, fmt.Errorf("refresh counts: %w", err)
	}

	updated := 0
	for i := range entries {
		count, ok := counts[entries[i].ID]
		if !ok || entries[i].VideoCount == count {
			continue
		}
		entries[i].VideoCount = count
		updated++
	}

	if updated > 0 {
		if err := playlists.Save(entries); err != nil {
			return 0, fmt.Errorf("refresh counts: %w", err)
		}
	}
	return updated, nil
}

// LatestReport is the outcome of a latest-playlist check.
type LatestReport struct {
	Title       string
	Number      int
	LedgerCount int64
	RemoteCount int64
	// Found reports whether a same-titled playlist exists remotely.
	// RemoteCount is meaningful only when Found is true.
	Found bool
}

// InSync reports whether the ledger count matches the remote count.
func (r LatestReport) InSync() bool {
	return r.Found && r.LedgerCount == r.RemoteCount
}

// CheckLatest finds the ledger entry whose title carries the largest
// trailing number and compares its stored count against the remote count
// of the same-titled playlist. The video ledger is never touched.
func CheckLatest(ctx context.Context, catalog youtube.Catalog, playlists *ledger.PlaylistTable, channelID string) (LatestReport, error) {
	entries, err := playlists.Load()
	if err != nil {
		return LatestReport{}, fmt.Errorf("check latest: %w", err)
	}
	if len(entries) == 0 {
		return LatestReport{}, fmt.Errorf("check latest: playlist ledger is empty")
	}

	latest := entries[0]
	best := TitleNumber(latest.Title)
	for _, entry := range entries[1:] {
		if n := TitleNumber(entry.Title); n > best {
			best = n
			latest = entry
		}
	}

	report := LatestReport{
		Title:       latest.Title,
		Number:      best,
		LedgerCount: latest.VideoCount,
	}

	remote, err := catalog.ListPlaylists(ctx, channelID)
	if err != nil {
		return LatestReport{}, fmt.Errorf("check latest: %w", err)
	}
	for _, info := range remote {
		if info.Title == latest.Title {
			report.Found = true
			report.RemoteCount = info.VideoCount
			break
		}
	}
	return report, nil
}
