package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plsync/config"
	"plsync/pipeline"
)

var rootCmd = &cobra.Command{
	Use:     "plsync",
	Short:   "plsync - sync YouTube playlists into CSV ledgers",
	Long:    "plsync polls the YouTube Data API for a channel's playlists and reconciles them against local CSV ledgers.",
	Version: version,
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPlaylistsCmd())
	rootCmd.AddCommand(newTidyCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newRefreshCountsCmd())
	rootCmd.AddCommand(newCheckLatestCmd())
}

// newRunner loads configuration and builds an API-backed runner.
// Commands that reach the remote API require an API key and channel id.
func newRunner(remote bool) (*pipeline.Runner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if remote {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("api key not set (PLSYNC_API_KEY or plsync.json)")
		}
		if cfg.ChannelID == "" {
			return nil, fmt.Errorf("channel id not set (PLSYNC_CHANNEL_ID or plsync.json)")
		}
		return pipeline.NewRunner(cfg)
	}
	// Local-only commands never touch the catalog.
	return pipeline.NewRunnerWithCatalog(cfg, nil), nil
}
