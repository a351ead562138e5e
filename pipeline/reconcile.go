// Package pipeline orchestrates the sync run: list remote playlists,
// reconcile them against the local ledger, ingest what drifted, tidy the
// video ledger, filter by channel, and publish the export.
package pipeline

import (
	"plsync/ledger"
	"plsync/youtube"
)

// SelectStale returns the remote playlists that need re-ingestion: those
// absent from the ledger, and those whose ledger video count differs from
// the remote count.
//
// Selection is by count equality only. A playlist whose count is unchanged
// but whose contents swapped (one video removed, one added) is not
// detected; this is a known limitation of count-based reconciliation.
func SelectStale(remote []youtube.PlaylistInfo, entries []ledger.PlaylistEntry) []youtube.PlaylistInfo {
	counts := make(map[string]int64, len(entries))
	for _, entry := range entries {
		counts[entry.ID] = entry.VideoCount
	}

	stale := make([]youtube.PlaylistInfo, 0, len(remote))
	for _, info := range remote {
		count, ok := counts[info.ID]
		if !ok || count != info.VideoCount {
			stale = append(stale, info)
		}
	}
	return stale
}
