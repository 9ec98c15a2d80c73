package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/radiol/optiroster/pkg/core/engine"
	"github.com/radiol/optiroster/pkg/core/services"
)

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve the configured month and print the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := app.cfg.ToInputs()
			if err != nil {
				return fmt.Errorf("failed to prepare inputs: %w", err)
			}

			result, err := services.GenerateRoster(app.ctx, app.store, app.logger, inputs)
			if err != nil {
				return err
			}

			printStatus(result.Result)
			printAssignments(result.Result)
			printReport(result.Report)

			if result.RosterID != "" {
				fmt.Printf("\nSaved as roster %s (run %s)\n", result.RosterID, app.runID)
			}
			return nil
		},
	}
}

func printStatus(result *engine.SolveResult) {
	statusColor := color.New(color.FgGreen, color.Bold)
	if result.Status != engine.StatusOptimal {
		statusColor = color.New(color.FgYellow, color.Bold)
	}
	fmt.Printf("Status: %s  Objective: %.2f  Solve time: %.3fs\n\n",
		statusColor.Sprint(string(result.Status)),
		result.ObjectiveValue,
		result.SolveTime.Seconds())
}

func printAssignments(result *engine.SolveResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Hospital", "Shift", "Worker"})
	for _, key := range result.Assignments() {
		table.Append([]string{key.Date.String(), key.Hospital, string(key.Shift), key.Worker})
	}
	table.Render()
}

func printReport(report engine.Report) {
	fmt.Printf("\nTotal penalty: %.2f\n", report.TotalPenalty)
	if len(report.PerRule) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rule", "Penalty", "Items"})
	for _, total := range report.PerRule {
		table.Append([]string{total.Source, fmt.Sprintf("%.2f", total.Total), strconv.Itoa(total.Count)})
	}
	table.Render()

	if len(report.TopItems) == 0 {
		return
	}
	fmt.Println("\nLargest penalty items:")
	items := tablewriter.NewWriter(os.Stdout)
	items.SetHeader([]string{"Rule", "Cost", "Details"})
	for _, item := range report.TopItems {
		items.Append([]string{item.Source, fmt.Sprintf("%.2f", item.Cost()), formatMeta(item.Meta)})
	}
	items.Render()
}

func formatMeta(meta map[string]string) string {
	out := ""
	for _, key := range []string{"worker", "hospital", "date", "shift", "first", "second", "gap", "night", "next", "weekday", "target"} {
		if value, ok := meta[key]; ok {
			if out != "" {
				out += " "
			}
			out += key + "=" + value
		}
	}
	return out
}
