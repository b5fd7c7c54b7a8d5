// ABOUTME: CLI commands for the composite daily health score.
// ABOUTME: Compose a score from four weighted components and show stored scores.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var (
	scoreDate      string
	scoreHRV       []float64
	scoreSleep     []float64
	scoreRecovery  []float64
	scoreActivity  []float64
	scoreReasoning string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the daily health score",
	Long: `Show the composite daily health score for a date (default today).

The score is a weighted sum of four components (HRV, sleep, recovery,
activity). Component weights are chosen by the scoring collaborator and
must sum to 1; the reasoning explains the weighting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := scoreDate
		if date == "" {
			date = time.Now().Format(models.DateFormat)
		}
		s, err := repo.GetScore(date)
		if err != nil {
			return fmt.Errorf("failed to read score: %w", err)
		}
		if s == nil {
			fmt.Printf("No health score for %s.\n", date)
			return nil
		}

		printScore(s)
		return nil
	},
}

var scoreSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Compose and store a health score",
	Long: `Compose a health score from four score,weight pairs and store it.

Each component takes two values: the score (0-100) and its weight (0-1).
Weights must sum to 1.

Example:
  vitals score set --hrv 80,0.3 --sleep 60,0.3 --recovery 75,0.2 \
    --activity 70,0.2 --reasoning "poor sleep weighted up"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := scoreDate
		if date == "" {
			date = time.Now().Format(models.DateFormat)
		}
		if _, err := time.Parse(models.DateFormat, date); err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
		}

		component := func(name string, pair []float64) (models.ScoreComponent, error) {
			if len(pair) != 2 {
				return models.ScoreComponent{}, fmt.Errorf("--%s needs two values: score and weight", name)
			}
			return models.ScoreComponent{Score: pair[0], Weight: pair[1]}, nil
		}
		hrv, err := component("hrv", scoreHRV)
		if err != nil {
			return err
		}
		sleep, err := component("sleep", scoreSleep)
		if err != nil {
			return err
		}
		recovery, err := component("recovery", scoreRecovery)
		if err != nil {
			return err
		}
		activity, err := component("activity", scoreActivity)
		if err != nil {
			return err
		}

		s, err := engine.ComposeScore(date, hrv, sleep, recovery, activity, scoreReasoning)
		if err != nil {
			return fmt.Errorf("invalid components: %w", err)
		}
		if err := repo.UpsertScore(s); err != nil {
			return fmt.Errorf("failed to store score: %w", err)
		}

		color.Green("✓ Health score for %s: %.1f", s.Date, s.Overall)
		return nil
	},
}

func printScore(s *models.HealthScore) {
	fmt.Printf("%s overall %.1f\n", s.Date, s.Overall)
	labels := []string{"hrv", "sleep", "recovery", "activity"}
	for i, c := range s.Components() {
		fmt.Printf("  %s %.1f × %.2f\n", padRight(labels[i], 10), c.Score, c.Weight)
	}
	if s.Reasoning != "" {
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(s.Reasoning))
	}
}

func init() {
	scoreCmd.Flags().StringVar(&scoreDate, "date", "", "score date (YYYY-MM-DD, default today)")
	scoreSetCmd.Flags().StringVar(&scoreDate, "date", "", "score date (YYYY-MM-DD, default today)")
	scoreSetCmd.Flags().Float64SliceVar(&scoreHRV, "hrv", nil, "hrv component: score,weight")
	scoreSetCmd.Flags().Float64SliceVar(&scoreSleep, "sleep", nil, "sleep component: score,weight")
	scoreSetCmd.Flags().Float64SliceVar(&scoreRecovery, "recovery", nil, "recovery component: score,weight")
	scoreSetCmd.Flags().Float64SliceVar(&scoreActivity, "activity", nil, "activity component: score,weight")
	scoreSetCmd.Flags().StringVar(&scoreReasoning, "reasoning", "", "why the weights were chosen")
	scoreCmd.AddCommand(scoreSetCmd)
	rootCmd.AddCommand(scoreCmd)
}
