package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindcart/mindcart/internal/cli"
	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/model"
	"github.com/mindcart/mindcart/internal/session"
)

func analyzeCmd() *cobra.Command {
	var (
		goal    string
		items   []string
		reflect bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a cart non-interactively",
		Long: `Analyze a cart given on the command line and print the verdict
report. Items are catalog ids, optionally with a reason after a colon:

  mindcart analyze --goal "Balanced Shopping" \
    --item teddy-bear:"looked cute" --item milk`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(items) == 0 {
				return fmt.Errorf("at least one --item is required")
			}

			sess, cleanup, err := newSession(slog.Default())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sess.SetGoal(model.ShoppingGoal(goal)); err != nil {
				return common.NewUserError(
					fmt.Sprintf("unknown goal %q, valid goals: %s", goal, goalNames()), err)
			}

			for _, spec := range items {
				itemID, reason, _ := strings.Cut(spec, ":")
				if err := sess.AddItem(itemID, reason); err != nil {
					return common.NewUserError("item "+itemID+" is not in the catalog", err)
				}
			}

			if err := sess.Navigate(session.PageCartBuilding); err != nil {
				return err
			}

			result, err := sess.RunAnalysis(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderAnalysis(result, nil))

			if reflect && result.Summary.FlaggedItems > 0 {
				return cli.ReflectionPause(cmd.Context(), os.Stdout, cli.DefaultReflectionSeconds)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", string(model.GoalBalancedShopping), "shopping goal")
	cmd.Flags().StringArrayVar(&items, "item", nil, "catalog item id, optionally id:reason (repeatable)")
	cmd.Flags().BoolVar(&reflect, "reflect", false, "pause for reflection when items are flagged")

	return cmd
}

func goalNames() string {
	goals := model.AllGoals()
	names := make([]string, len(goals))
	for i, g := range goals {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
