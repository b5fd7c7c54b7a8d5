// ABOUTME: CLI command for listing personal records.
// ABOUTME: Shows best-ever value per metric with the previous best.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"r"},
	Short:   "List personal records",
	Long: `List the best-ever value for each tracked metric.

Records follow each metric's improvement direction: lower is better for
resting heart rate, higher is better for everything else. Ties never
replace a record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.ListRecords()
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No personal records yet. Log some readings first.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			prev := ""
			if r.PreviousRecord != nil {
				prev = faint.Sprintf(" (previous %.1f)", *r.PreviousRecord)
			}
			fmt.Printf("%s %.1f %s achieved %s%s\n",
				padRight(string(r.MetricType), 20),
				r.RecordValue, models.MetricUnits[r.MetricType],
				r.AchievedDate, prev)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
