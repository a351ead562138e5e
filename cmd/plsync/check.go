package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRefreshCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-counts",
		Short: "Refresh playlist ledger counts from the remote catalog",
		Long:  "Overwrites each playlist ledger entry's video count with the count currently reported remotely. The video ledger is not touched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRunner(true)
			if err != nil {
				return err
			}

			updated, err := r.RefreshCounts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d playlist entries\n", updated)
			return nil
		},
	}
}

func newCheckLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-latest",
		Short: "Check the newest playlist's count against the remote catalog",
		Long:  "Picks the ledger entry whose title carries the largest trailing number and compares its stored count with the remote count.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRunner(true)
			if err != nil {
				return err
			}

			report, err := r.CheckLatest(cmd.Context())
			if err != nil {
				return err
			}

			status := "missing remotely"
			if report.Found {
				if report.InSync() {
					status = "in sync"
				} else {
					status = "out of sync"
				}
			}

			remote := "-"
			if report.Found {
				remote = fmt.Sprintf("%d", report.RemoteCount)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Title", "Ledger", "Remote", "Status"})
			t.AppendRow(table.Row{report.Title, report.LedgerCount, remote, status})
			t.Render()
			return nil
		},
	}
}
