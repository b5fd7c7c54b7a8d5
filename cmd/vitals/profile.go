// ABOUTME: CLI commands for the intake profile.
// ABOUTME: Set and show age, sex, and diagnosed conditions.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/vitals/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileAge          int
	profileSex          string
	profileHeartFailure bool
	profileDiabetes     bool
	profileCKD          bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the intake profile",
	Long: `Manage the intake profile used for age-adjusted analysis.

Classification, risk trajectories, and the age-banded reference targets all
need your age; diagnosed conditions shift the risk baselines for the
affected condition models.`,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the intake profile",
	Long: `Set the intake profile. Age and sex are required.

Examples:
  vitals profile set --age 47 --sex male
  vitals profile set --age 62 --sex female --diabetes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &models.IntakeProfile{
			Age:                     profileAge,
			Sex:                     models.Sex(profileSex),
			HasHeartFailure:         profileHeartFailure,
			HasDiabetes:             profileDiabetes,
			HasChronicKidneyDisease: profileCKD,
			UpdatedAt:               time.Now(),
		}
		if err := repo.PutProfile(p); err != nil {
			return fmt.Errorf("failed to store profile: %w", err)
		}

		color.Green("✓ Intake profile saved")
		fmt.Printf("  age %d, sex %s\n", p.Age, p.Sex)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the intake profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to read profile: %w", err)
		}
		if p == nil {
			fmt.Println("No intake profile set. Run 'vitals profile set --age ... --sex ...'.")
			return nil
		}

		fmt.Printf("Age: %d\n", p.Age)
		fmt.Printf("Sex: %s\n", p.Sex)
		fmt.Printf("Heart failure: %v\n", p.HasHeartFailure)
		fmt.Printf("Diabetes: %v\n", p.HasDiabetes)
		fmt.Printf("Chronic kidney disease: %v\n", p.HasChronicKidneyDisease)
		fmt.Printf("Updated: %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileSetCmd.Flags().StringVar(&profileSex, "sex", "", "sex (male, female, other)")
	profileSetCmd.Flags().BoolVar(&profileHeartFailure, "heart-failure", false, "diagnosed heart failure")
	profileSetCmd.Flags().BoolVar(&profileDiabetes, "diabetes", false, "diagnosed diabetes")
	profileSetCmd.Flags().BoolVar(&profileCKD, "ckd", false, "diagnosed chronic kidney disease")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
