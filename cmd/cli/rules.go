package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/radiol/optiroster/pkg/core/engine"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the known scheduling rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Summary"})
			for _, rule := range engine.Registry(engine.DefaultOptions()) {
				table.Append([]string{rule.Name(), rule.Summary()})
			}
			table.Render()
			return nil
		},
	}
}
