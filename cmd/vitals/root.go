// ABOUTME: Root Cobra command for vitals CLI.
// ABOUTME: Opens the configured storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/vitals/internal/config"
	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	repo     storage.Repository
	pipeline *engine.Pipeline
)

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Derived health signals from wearable data",
	Long: `Vitals turns raw wearable readings into derived health signals.

WHAT IT DERIVES:

  Baselines    Rolling mean and standard deviation per metric (14-day window)
  Anomalies    Readings that stray 2+ standard deviations from your baseline
  Records      Best-ever value per metric, in each metric's direction
  Classify     Age-adjusted HRV and deep sleep tiers with percentiles
  Risk         Projected trajectories for five long-horizon conditions
  Score        Composite daily health score from four weighted components

TRACKED METRICS:

  hrv, resting_heart_rate, deep_sleep_minutes, sleep_efficiency,
  recovery_score, steps

QUICK START:

  $ vitals profile set --age 47 --sex male       # One-time intake
  $ vitals log --source oura --hrv 52 --steps 8200
  $ vitals records                               # Personal records
  $ vitals alerts --unseen                       # Anomaly alerts
  $ vitals classify                              # Age-adjusted tiers
  $ vitals risk                                  # Condition trajectories

BACKENDS:

  sqlite (default)  Local database at ~/.local/share/vitals/vitals.db
  charm             E2E-encrypted sync across devices via Charm Cloud

  Select with VITALS_BACKEND or "backend" in
  ~/.config/vitals/config.json.

MCP INTEGRATION:

  Run 'vitals mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		pipeline = engine.NewPipeline(repo, cfg.Thresholds())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
