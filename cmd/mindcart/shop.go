package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mindcart/mindcart/internal/tui"
)

func shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Start an interactive shopping session",
		Long: `Start the full interactive flow: choose a goal, build a cart,
analyze it, justify flagged items, and confirm the order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, cleanup, err := newSession(slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(cmd.Context(), sess)
		},
	}
}
