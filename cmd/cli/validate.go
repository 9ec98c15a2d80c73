package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/radiol/optiroster/pkg/core/services"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the scenario without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := app.cfg.ToInputs()
			if err != nil {
				return fmt.Errorf("failed to prepare inputs: %w", err)
			}

			result, err := services.ValidateScenario(app.logger, inputs)
			if err != nil {
				return err
			}

			fmt.Printf("Days: %d  Variables: %d  Coverage points: %d\n",
				result.Days, result.Variables, len(result.CoveragePoints))

			if len(result.UncoverablePoints) == 0 {
				color.Green("All coverage points have candidate workers")
				return nil
			}

			color.Red("Coverage points without candidate workers:")
			for _, point := range result.UncoverablePoints {
				fmt.Printf("  %s\n", point)
			}
			return nil
		},
	}
}
