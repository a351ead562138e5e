// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all application configuration for a pipeline run.
// It is constructed once at startup and passed by reference into each
// component; no component reads ambient process state.
type Config struct {
	// APIKey is the YouTube Data API key.
	APIKey string `json:"api_key"`
	// ChannelID is the channel whose playlists are synchronized.
	ChannelID string `json:"channel_id"`

	// PlaylistsCSV is the playlist ledger path.
	PlaylistsCSV string `json:"playlists_csv"`
	// VideosCSV is the video ledger path.
	VideosCSV string `json:"videos_csv"`
	// CategoriesCSV is the read-only category table path.
	CategoriesCSV string `json:"categories_csv"`
	// FilteredCSV is the filtered export path.
	FilteredCSV string `json:"filtered_csv"`
	// PublishPath is the publication destination for the export.
	// Empty disables the publish stage.
	PublishPath string `json:"publish_path"`

	// PageInterval is the minimum delay between consecutive item-listing
	// pages. This is a rate-limit throttle, not an error-recovery knob.
	PageInterval time.Duration `json:"page_interval"`

	// MaxRetries is the maximum number of retries for failed API calls.
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries.
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries.
	MaxBackoff time.Duration `json:"max_backoff"`
	// BackoffMultiplier is the multiplier for exponential backoff (must be > 1).
	BackoffMultiplier float64 `json:"backoff_multiplier"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		PlaylistsCSV:      "playlists.csv",
		VideosCSV:         "videos.csv",
		CategoriesCSV:     "categories.csv",
		FilteredCSV:       "filtered.csv",
		PageInterval:      1 * time.Second,
		MaxRetries:        5,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from plsync.json in the current
// directory or the XDG config directory.
func (c *Config) loadFromFile() error {
	paths := []string{"plsync.json"}
	if p, err := xdg.SearchConfigFile("plsync/plsync.json"); err == nil {
		paths = append(paths, p)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("PLSYNC_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PLSYNC_CHANNEL_ID"); v != "" {
		c.ChannelID = v
	}
	if v := os.Getenv("PLSYNC_PLAYLISTS_CSV"); v != "" {
		c.PlaylistsCSV = v
	}
	if v := os.Getenv("PLSYNC_VIDEOS_CSV"); v != "" {
		c.VideosCSV = v
	}
	if v := os.Getenv("PLSYNC_CATEGORIES_CSV"); v != "" {
		c.CategoriesCSV = v
	}
	if v := os.Getenv("PLSYNC_FILTERED_CSV"); v != "" {
		c.FilteredCSV = v
	}
	if v := os.Getenv("PLSYNC_PUBLISH_PATH"); v != "" {
		c.PublishPath = v
	}
	if v := os.Getenv("PLSYNC_PAGE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PageInterval = d
		}
	}
	if v := os.Getenv("PLSYNC_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("PLSYNC_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("PLSYNC_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.PlaylistsCSV == "" {
		return fmt.Errorf("playlists_csv must not be empty")
	}
	if c.VideosCSV == "" {
		return fmt.Errorf("videos_csv must not be empty")
	}
	if c.CategoriesCSV == "" {
		return fmt.Errorf("categories_csv must not be empty")
	}
	if c.FilteredCSV == "" {
		return fmt.Errorf("filtered_csv must not be empty")
	}
	if c.PageInterval < 0 {
		return fmt.Errorf("page_interval must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	return nil
}
