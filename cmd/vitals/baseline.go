// ABOUTME: CLI commands for personal baselines.
// ABOUTME: List stored baselines and force recalculation.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var baselineCmd = &cobra.Command{
	Use:     "baseline",
	Aliases: []string{"baselines", "b"},
	Short:   "Show personal baselines",
	Long: `Show the rolling per-metric baselines (mean and standard deviation).

Baselines are computed from the trailing 14 days of samples once at least
7 samples exist, and refresh automatically every 30 days. Anomaly detection
compares new readings against these values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baselines, err := repo.ListBaselines()
		if err != nil {
			return fmt.Errorf("failed to list baselines: %w", err)
		}
		if len(baselines) == 0 {
			fmt.Println("No baselines yet. Log at least 7 days of readings, then run 'vitals baseline recalc'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, b := range baselines {
			fmt.Printf("%s mean %.2f sd %.2f (%d samples) %s\n",
				padRight(string(b.MetricType), 20),
				b.Mean, b.StdDeviation, b.SampleCount,
				faint.Sprintf("next recalc %s", b.NextRecalcAt.Format("2006-01-02")))
		}
		return nil
	},
}

var baselineRecalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate baselines now",
	Long: `Recalculate all baselines from the trailing window immediately,
instead of waiting for the 30-day refresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baselines, err := pipeline.RecalcBaselines(time.Now())
		if err != nil {
			return fmt.Errorf("failed to recalculate: %w", err)
		}
		if len(baselines) == 0 {
			fmt.Println("Not enough samples in the window yet (need 7).")
			return nil
		}
		color.Green("✓ Recalculated %d baselines", len(baselines))
		return nil
	},
}

func init() {
	baselineCmd.AddCommand(baselineRecalcCmd)
	rootCmd.AddCommand(baselineCmd)
}
