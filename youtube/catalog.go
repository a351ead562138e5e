// Package youtube provides read access to the remote playlist catalog of a
// channel via the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for remote catalog operations.
var (
	ErrChannelNotFound  = errors.New("youtube: channel not found")
	ErrPlaylistNotFound = errors.New("youtube: playlist not found")
	ErrQuotaExceeded    = errors.New("youtube: quota or rate limit exceeded")
	ErrNetworkTimeout   = errors.New("youtube: network timeout")
)

// Catalog enumerates the playlists of a channel and the videos inside a
// playlist. Both listings page through the remote API until exhausted and
// return fully collected slices; a failed call is not resumable mid-page.
type Catalog interface {
	// ListPlaylists fetches all playlists owned by the channel.
	ListPlaylists(ctx context.Context, channelID string) ([]PlaylistInfo, error)

	// ListPlaylistItems fetches all videos contained in the playlist, in
	// playlist order.
	ListPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error)
}

// PlaylistInfo describes a playlist as observed remotely. It is never
// persisted verbatim; the ledger keeps its own representation.
type PlaylistInfo struct {
	// Title is the playlist title.
	Title string
	// ID is the bare playlist identifier.
	ID string
	// VideoCount is the number of videos currently in the playlist.
	VideoCount int64
}

// PlaylistItem describes one video inside a playlist.
type PlaylistItem struct {
	// VideoID is the video identifier.
	VideoID string
	// Title is the video title.
	Title string
	// Channel is the owning channel's display title. For playlists that
	// aggregate videos from several channels this is the video owner's
	// title, not the playlist owner's.
	Channel string
	// Published is the item's published timestamp.
	Published time.Time
	// URL is the canonical watch URL for the video.
	URL string
}

// ListError wraps remote listing errors with context about what failed.
// Use errors.As() to extract this error type and get operation details:
//
//	var listErr *youtube.ListError
//	if errors.As(err, &listErr) {
//		fmt.Printf("listing %s %s failed: %v\n", listErr.Op, listErr.ID, listErr.Err)
//	}
type ListError struct {
	// Op is the listing operation ("playlists", "playlist_items").
	Op string
	// ID is the channel or playlist id that was being listed.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the listing error.
func (e *ListError) Error() string {
	return "youtube: list " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ListError) Unwrap() error { return e.Err }
