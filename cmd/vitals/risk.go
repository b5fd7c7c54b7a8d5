// ABOUTME: CLI command for condition risk trajectories.
// ABOUTME: Shows current and projected risk for the five modeled conditions.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var riskCondition string

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show condition risk trajectories",
	Long: `Show projected risk trajectories for five long-horizon conditions:
dementia, cardiovascular, heartFailure, cognitiveDecline, metabolic.

Each trajectory projects current risk out to six months, one, five, and
ten years from your age, diagnosed conditions, and trailing 30-day HRV
and deep sleep averages. These are directional wellness signals, not a
diagnosis.

Examples:
  vitals risk                           # All five conditions
  vitals risk --condition dementia      # One condition`,
	RunE: func(cmd *cobra.Command, args []string) error {
		trajectories, err := pipeline.RiskTrajectories(time.Now())
		if err != nil {
			if errors.Is(err, engine.ErrMissingIntake) {
				return fmt.Errorf("no intake profile: run 'vitals profile set --age ... --sex ...' first")
			}
			if errors.Is(err, engine.ErrNoSamples) {
				fmt.Println("No samples in the last 30 days to assess.")
				return nil
			}
			return fmt.Errorf("failed to compute risk: %w", err)
		}

		if riskCondition != "" {
			filtered := trajectories[:0]
			for _, tr := range trajectories {
				if tr.Condition == models.Condition(riskCondition) {
					filtered = append(filtered, tr)
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("unknown condition %q (dementia, cardiovascular, heartFailure, cognitiveDecline, metabolic)", riskCondition)
			}
			trajectories = filtered
		}

		faint := color.New(color.Faint)
		for _, tr := range trajectories {
			fmt.Printf("%s %s  now %.1f%%  6mo %.1f%%  1y %.1f%%  5y %.1f%%  10y %.1f%%  %s\n",
				padRight(string(tr.Condition), 18),
				levelString(tr.RiskLevel),
				tr.Current, tr.SixMonths, tr.OneYear, tr.FiveYears, tr.TenYears,
				faint.Sprint(tr.Trend))
			for _, driver := range tr.PrimaryDrivers {
				fmt.Printf("    %s\n", faint.Sprint(driver))
			}
		}

		concerns := engine.TopConcerns(trajectories)
		if riskCondition == "" && len(concerns) > 0 {
			names := make([]string, len(concerns))
			for i, c := range concerns {
				names[i] = string(c)
			}
			fmt.Printf("\nTop concerns: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

func levelString(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return color.GreenString("%-8s", level)
	case models.RiskModerate:
		return color.YellowString("%-8s", level)
	default:
		return color.RedString("%-8s", level)
	}
}

func init() {
	riskCmd.Flags().StringVar(&riskCondition, "condition", "", "show a single condition")
	rootCmd.AddCommand(riskCmd)
}
