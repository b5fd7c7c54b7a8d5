// ABOUTME: CLI command for listing logged samples.
// ABOUTME: Shows recent daily sample sets, newest first.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logged samples",
	Long: `List recent daily sample sets, newest first.

Each line shows the date, source, and the readings in that set.

Examples:
  vitals list          # Show last 20 sample sets
  vitals list -n 50    # Show last 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := repo.ListSamples(listLimit)
		if err != nil {
			return fmt.Errorf("failed to list samples: %w", err)
		}
		if len(samples) == 0 {
			fmt.Println("No samples logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range samples {
			var parts []string
			for _, mt := range models.AllMetricTypes {
				if v, ok := s.Value(mt); ok {
					parts = append(parts, fmt.Sprintf("%s %.1f", mt, v))
				}
			}
			fmt.Printf("%s %s %s\n",
				s.Date,
				padRight(s.Source, 14),
				faint.Sprint(strings.Join(parts, "  ")))
		}
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
