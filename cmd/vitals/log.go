// ABOUTME: CLI command for logging a day's wearable readings.
// ABOUTME: Runs the record and anomaly passes and prints what they triggered.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var (
	logDate     string
	logSource   string
	logHRV      float64
	logRHR      float64
	logDeep     float64
	logSleepEff float64
	logRecovery float64
	logSteps    float64
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Log a day's wearable readings",
	Long: `Log one day's readings from a wearable source.

A second log for the same date and source overwrites the previous one;
readings from different sources for the same day are kept separately.

Logging triggers the derivation passes: new personal records are claimed,
and readings are checked against your baselines for anomalies.

Examples:
  vitals log --source oura --hrv 52 --deep-sleep 75 --steps 8200
  vitals log --source whoop --date 2026-03-14 --recovery 81
  vitals log --source manual --rhr 58`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if logSource == "" {
			return fmt.Errorf("--source is required (oura, whoop, apple_health, manual, ...)")
		}
		date := logDate
		if date == "" {
			date = time.Now().Format(models.DateFormat)
		}
		if _, err := time.Parse(models.DateFormat, date); err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
		}

		sample := models.NewDailySample(date, logSource)
		addIfSet := func(flag string, mt models.MetricType, value float64) {
			if cmd.Flags().Changed(flag) {
				sample.WithValue(mt, value)
			}
		}
		addIfSet("hrv", models.MetricHRV, logHRV)
		addIfSet("rhr", models.MetricRestingHR, logRHR)
		addIfSet("deep-sleep", models.MetricDeepSleep, logDeep)
		addIfSet("sleep-efficiency", models.MetricSleepEfficiency, logSleepEff)
		addIfSet("recovery", models.MetricRecoveryScore, logRecovery)
		addIfSet("steps", models.MetricSteps, logSteps)

		if len(sample.Values) == 0 {
			return fmt.Errorf("no readings given: set at least one of --hrv, --rhr, --deep-sleep, --sleep-efficiency, --recovery, --steps")
		}

		result, err := pipeline.ProcessSample(sample, time.Now())
		if err != nil {
			return fmt.Errorf("failed to process sample: %w", err)
		}

		color.Green("✓ Logged %d readings for %s (%s)", len(sample.Values), date, logSource)

		for _, r := range result.NewRecords {
			color.Yellow("  ★ New record: %s %.1f %s", r.MetricType, r.RecordValue, models.MetricUnits[r.MetricType])
			if r.PreviousRecord != nil {
				fmt.Printf("    previous best %.1f\n", *r.PreviousRecord)
			}
		}
		for _, a := range result.Alerts {
			printer := color.New(color.FgYellow)
			if a.Severity == models.SeverityCritical {
				printer = color.New(color.FgRed)
			}
			printer.Printf("  ! %s anomaly: %s %.1f vs baseline %.1f (%+.1f SD)\n",
				a.Severity, a.MetricType, a.DetectedValue, a.BaselineValue, a.DeviationAmount)
		}
		if result.BaselineErr != nil {
			color.Yellow("  ⚠ baseline recalculation failed: %v (will retry)", result.BaselineErr)
		}

		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "sample date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVarP(&logSource, "source", "s", "", "upload source (oura, whoop, apple_health, manual)")
	logCmd.Flags().Float64Var(&logHRV, "hrv", 0, "heart rate variability (ms)")
	logCmd.Flags().Float64Var(&logRHR, "rhr", 0, "resting heart rate (bpm)")
	logCmd.Flags().Float64Var(&logDeep, "deep-sleep", 0, "deep sleep (minutes)")
	logCmd.Flags().Float64Var(&logSleepEff, "sleep-efficiency", 0, "sleep efficiency (%)")
	logCmd.Flags().Float64Var(&logRecovery, "recovery", 0, "recovery score (%)")
	logCmd.Flags().Float64Var(&logSteps, "steps", 0, "step count")
	rootCmd.AddCommand(logCmd)
}
