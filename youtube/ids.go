package youtube

import "strings"

const listMarker = "list="

// NormalizePlaylistID converts a playlist URL or bare playlist id into the
// bare id form. Input containing a "list=" query marker yields the substring
// after the marker (up to the next query parameter); anything else is
// returned unchanged. The function is idempotent.
func NormalizePlaylistID(idOrURL string) string {
	idx := strings.Index(idOrURL, listMarker)
	if idx == -1 {
		return idOrURL
	}

	id := idOrURL[idx+len(listMarker):]
	if amp := strings.IndexByte(id, '&'); amp != -1 {
		id = id[:amp]
	}
	return id
}

// PlaylistURL formats the canonical playlist URL for a bare playlist id.
// No validation is performed on the id.
func PlaylistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}

// WatchURL formats the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
