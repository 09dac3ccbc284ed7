package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindcart/mindcart/internal/cli"
	"github.com/mindcart/mindcart/internal/config"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the available catalog items",
		RunE: func(_ *cobra.Command, _ []string) error {
			cat, err := initCatalog(config.Load())
			if err != nil {
				return err
			}

			var b strings.Builder
			b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%-18s %-10s %10s", "Item", "Category", "Price")))
			b.WriteString("\n")
			for _, item := range cat.Items() {
				b.WriteString(cli.TableCellStyle.Render(fmt.Sprintf("%-18s %-10s %10.0f",
					item.ID, string(item.Category), item.UnitPrice)))
				b.WriteString("\n")
			}

			fmt.Println(b.String())
			return nil
		},
	}
}
