package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"plsync/internal/retry"
)

// pageSize is the remote API page size for both listing operations.
const pageSize = 50

// APICatalog implements Catalog using YouTube Data API v3.
// Item listing enforces a blocking minimum interval between pages to
// respect rate limits; playlist listing is not throttled beyond the
// shared retry policy.
type APICatalog struct {
	service *youtube.Service
	limiter *rate.Limiter

	// RetryConfig controls per-page retry behavior. Nil uses defaults.
	RetryConfig *retry.Config
}

// NewAPICatalog creates a Data API-backed catalog reader.
// pageInterval is the minimum delay between consecutive item-listing pages;
// zero disables the throttle.
func NewAPICatalog(apiKey string, pageInterval time.Duration) (*APICatalog, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	cfg := retry.DefaultConfig()
	c := &APICatalog{
		service:     service,
		RetryConfig: &cfg,
	}
	if pageInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(pageInterval), 1)
	}
	return c, nil
}

// ListPlaylists fetches all playlists owned by the channel, paging through
// the API until the continuation token is exhausted.
func (c *APICatalog) ListPlaylists(ctx context.Context, channelID string) ([]PlaylistInfo, error) {
	var playlists []PlaylistInfo

	pageToken := ""
	for {
		err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
			call := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
				ChannelId(channelID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				return classifyAPIError(ctx, err)
			}

			for _, item := range resp.Items {
				info := PlaylistInfo{ID: item.Id}
				if item.Snippet != nil {
					info.Title = item.Snippet.Title
				}
				if item.ContentDetails != nil {
					info.VideoCount = item.ContentDetails.ItemCount
				}
				playlists = append(playlists, info)
			}

			pageToken = resp.NextPageToken
			return nil
		})
		if err != nil {
			return nil, &ListError{Op: "playlists", ID: channelID, Err: err}
		}

		if pageToken == "" {
			break
		}
	}

	return playlists, nil
}

// ListPlaylistItems fetches all videos in the playlist, in playlist order.
// A blocking delay is enforced before every page request after the first.
func (c *APICatalog) ListPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	var items []PlaylistItem

	pageToken := ""
	first := true
	for {
		if !first {
			if err := c.throttle(ctx); err != nil {
				return nil, &ListError{Op: "playlist_items", ID: playlistID, Err: err}
			}
		}
		first = false

		err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
			call := c.service.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				return classifyAPIError(ctx, err)
			}

			for _, apiItem := range resp.Items {
				if item, ok := itemFromAPI(apiItem); ok {
					items = append(items, item)
				}
			}

			pageToken = resp.NextPageToken
			return nil
		})
		if err != nil {
			return nil, &ListError{Op: "playlist_items", ID: playlistID, Err: err}
		}

		if pageToken == "" {
			break
		}
	}

	return items, nil
}

// throttle blocks until the inter-page interval has elapsed.
func (c *APICatalog) throttle(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *APICatalog) retryConfig() retry.Config {
	if c.RetryConfig != nil {
		return *c.RetryConfig
	}
	return retry.DefaultConfig()
}

// itemFromAPI converts an API playlist item into a PlaylistItem.
// Items without a snippet or video id are dropped.
func itemFromAPI(item *youtube.PlaylistItem) (PlaylistItem, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil {
		return PlaylistItem{}, false
	}

	snippet := item.Snippet
	videoID := snippet.ResourceId.VideoId
	if videoID == "" {
		return PlaylistItem{}, false
	}

	// Playlists can aggregate videos from multiple channels; the owner
	// channel title identifies the video's channel, not the playlist's.
	channel := snippet.VideoOwnerChannelTitle
	if channel == "" {
		channel = snippet.ChannelTitle
	}

	out := PlaylistItem{
		VideoID: videoID,
		Title:   snippet.Title,
		Channel: channel,
		URL:     WatchURL(videoID),
	}
	if t, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
		out.Published = t
	}
	return out, true
}

// classifyAPIError maps an API transport error onto the package sentinels
// where possible, preserving the original error otherwise.
func classifyAPIError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrNetworkTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404:
			for _, e := range apiErr.Errors {
				if e.Reason == "channelNotFound" {
					return ErrChannelNotFound
				}
			}
			return ErrPlaylistNotFound
		case 403:
			for _, e := range apiErr.Errors {
				if e.Reason == "quotaExceeded" || e.Reason == "rateLimitExceeded" {
					return ErrQuotaExceeded
				}
			}
		case 400:
			for _, e := range apiErr.Errors {
				if e.Reason == "invalidChannelId" {
					return ErrChannelNotFound
				}
			}
		}
	}
	return err
}

// apiErrorClassifier determines if an API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry specific sentinel errors
	if errors.Is(err, ErrChannelNotFound) || errors.Is(err, ErrPlaylistNotFound) {
		return false
	}

	// Quota and rate limit errors are retryable; the backoff gives the
	// bucket time to refill.
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}

	// Timeout errors are retryable
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrNetworkTimeout) {
		log.Printf("youtube: transient timeout, will retry: %v", err)
		return true
	}

	// Default to retryable for unknown errors
	return true
}
