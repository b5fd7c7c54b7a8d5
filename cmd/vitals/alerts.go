// ABOUTME: CLI commands for anomaly alerts.
// ABOUTME: List alerts and mark them reviewed by ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var (
	alertsUnseen bool
	alertsLimit  int
)

var alertsCmd = &cobra.Command{
	Use:     "alerts",
	Aliases: []string{"anomalies"},
	Short:   "List anomaly alerts",
	Long: `List anomaly alerts raised when readings strayed from your baselines.

Warning alerts are 2+ standard deviations from baseline; critical alerts
are 3+. Alerts stay until you mark them reviewed with 'vitals alerts seen'.

Examples:
  vitals alerts                # Last 20 alerts
  vitals alerts --unseen       # Only unreviewed alerts
  vitals alerts seen 3fa8      # Mark reviewed by ID prefix`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alerts, err := repo.ListAlerts(alertsUnseen, alertsLimit)
		if err != nil {
			return fmt.Errorf("failed to list alerts: %w", err)
		}
		if len(alerts) == 0 {
			fmt.Println("No alerts.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, a := range alerts {
			marker := color.YellowString("warn")
			if a.Severity == models.SeverityCritical {
				marker = color.RedString("crit")
			}
			seen := ""
			if a.Seen {
				seen = faint.Sprint(" (seen)")
			}
			fmt.Printf("%s %s %s %s %.1f vs baseline %.1f (%+.1f SD)%s\n",
				faint.Sprint(a.ID.String()[:8]),
				faint.Sprint(a.DetectedAt.Format("2006-01-02")),
				marker,
				padRight(string(a.MetricType), 20),
				a.DetectedValue, a.BaselineValue, a.DeviationAmount,
				seen)
		}
		return nil
	},
}

var alertsSeenCmd = &cobra.Command{
	Use:   "seen <id>",
	Short: "Mark an alert as reviewed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.MarkAlertSeen(args[0]); err != nil {
			return fmt.Errorf("failed to mark alert: %w", err)
		}
		color.Green("✓ Marked %s as seen", args[0])
		return nil
	},
}

func init() {
	alertsCmd.Flags().BoolVarP(&alertsUnseen, "unseen", "u", false, "only unreviewed alerts")
	alertsCmd.Flags().IntVarP(&alertsLimit, "limit", "n", 20, "max number of results")
	alertsCmd.AddCommand(alertsSeenCmd)
	rootCmd.AddCommand(alertsCmd)
}
