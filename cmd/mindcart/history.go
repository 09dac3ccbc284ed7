package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindcart/mindcart/internal/cli"
	"github.com/mindcart/mindcart/internal/config"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recorded shopping sessions and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := initLedger(config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = ledger.Close() }()

			ctx := cmd.Context()
			records, err := ledger.ListSessions(ctx)
			if err != nil {
				return err
			}
			stats, err := ledger.ProgressStats(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderHistory(records, stats))
			return nil
		},
	}
}
