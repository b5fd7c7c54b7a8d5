// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/vitals/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your vitals data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "vitals": {
        "command": "vitals",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  record_sample           Record a day's readings, run record/anomaly passes
  set_intake_profile      Set age, sex, and diagnosed conditions
  get_intake_profile      Get the stored intake profile
  recalc_baselines        Force baseline recalculation
  list_baselines          List per-metric baselines
  list_anomalies          List anomaly alerts
  mark_anomaly_seen       Mark an alert reviewed
  list_records            List personal records
  get_classification      Age-adjusted HRV and sleep tiers
  get_risk_trajectories   Five-condition risk projections
  record_health_score     Compose and store a daily score
  get_health_score        Get a stored daily score

AVAILABLE RESOURCES:

  vitals://recent     Recent samples and open alerts
  vitals://records    Current personal records
  vitals://summary    Baselines, records, alerts, latest score`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, cfg.Thresholds())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
