// ABOUTME: CLI command for age-adjusted physiological classification.
// ABOUTME: Shows HRV and deep sleep tiers with percentile standing.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify HRV and deep sleep against age-banded targets",
	Long: `Classify your trailing 30-day HRV and deep sleep averages against
age-banded reference targets.

HRV tiers: low, moderate, favorable.
Deep sleep tiers: inadequate, borderline, adequate.

The percentile is your standing relative to the age-adjusted target:
50 means you sit exactly at the target for your age band.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pipeline.Classification(time.Now())
		if err != nil {
			if errors.Is(err, engine.ErrMissingIntake) {
				return fmt.Errorf("no intake profile: run 'vitals profile set --age ... --sex ...' first")
			}
			if errors.Is(err, engine.ErrNoSamples) {
				fmt.Println("No samples in the last 30 days to classify.")
				return nil
			}
			return fmt.Errorf("failed to classify: %w", err)
		}

		printReading("hrv (ms)", c.HRV, map[string]func(format string, a ...interface{}) string{
			models.HRVLow:       color.RedString,
			models.HRVModerate:  color.YellowString,
			models.HRVFavorable: color.GreenString,
		})
		printReading("deep sleep (min)", c.DeepSleep, map[string]func(format string, a ...interface{}) string{
			models.SleepInadequate: color.RedString,
			models.SleepBorderline: color.YellowString,
			models.SleepAdequate:   color.GreenString,
		})
		return nil
	},
}

func printReading(label string, r models.MetricReading, colors map[string]func(format string, a ...interface{}) string) {
	tier := r.Classification
	if paint, ok := colors[tier]; ok {
		tier = paint("%s", tier)
	}
	fmt.Printf("%s %.1f  %s  (%.0fth percentile, age-adjusted)\n",
		padRight(label, 18), r.Value, tier, r.Percentile)
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
