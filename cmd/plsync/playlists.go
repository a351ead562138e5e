package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"plsync/youtube"
)

func newPlaylistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "playlists",
		Short: "List the playlist ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRunner(false)
			if err != nil {
				return err
			}

			entries, err := r.Playlists()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Title", "Playlist", "Videos"})
			for _, entry := range entries {
				t.AppendRow(table.Row{entry.Title, youtube.PlaylistURL(entry.ID), entry.VideoCount})
			}
			t.Render()
			return nil
		},
	}
}
