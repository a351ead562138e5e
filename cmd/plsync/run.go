package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full sync pipeline",
		Long:  "Lists the channel's playlists, ingests the ones that drifted, tidies the video ledger, writes the filtered export, and publishes it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRunner(true)
			if err != nil {
				return err
			}
			return r.Run(cmd.Context())
		},
	}
}

func newTidyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tidy",
		Short: "Dedupe and sort the video ledger",
		Long:  "Drops duplicate URLs (first occurrence wins), sorts by publish date descending, and renumbers ids.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := newRunner(false)
			if err != nil {
				return err
			}
			return r.Tidy()
		},
	}
}

func newFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Write the filtered export",
		Long:  "Projects the video ledger down to channels flagged in the category table and writes the export file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := newRunner(false)
			if err != nil {
				return err
			}
			return r.Filter()
		},
	}
}

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Copy the filtered export to the publish destination",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := newRunner(false)
			if err != nil {
				return err
			}
			return r.PublishExport()
		},
	}
}
