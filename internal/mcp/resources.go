// ABOUTME: MCP resource implementations for derived health signals.
// ABOUTME: Provides vitals://recent, vitals://records, and vitals://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// vitals://recent - Last 10 sample sets plus unreviewed alerts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "vitals://recent",
		Name:        "Recent Samples",
		Description: "Last 10 daily sample sets and unreviewed anomaly alerts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// vitals://records - Current personal records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "vitals://records",
		Name:        "Personal Records",
		Description: "Best-ever value for each tracked metric",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// vitals://summary - Dashboard with baselines, records, alerts, and latest score
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "vitals://summary",
		Name:        "Vitals Summary Dashboard",
		Description: "Baselines, personal records, open alerts, and the latest health score",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func marshalResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	samples, err := s.repo.ListSamples(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}

	alerts, err := s.repo.ListAlerts(true, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return marshalResource("vitals://recent", map[string]any{
		"samples":        samples,
		"unseen_alerts":  alerts,
		"sample_count":   len(samples),
		"alert_count":    len(alerts),
	})
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return marshalResource("vitals://records", map[string]any{
		"records": records,
		"count":   len(records),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	baselines, err := s.repo.ListBaselines()
	if err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}

	records, err := s.repo.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	alerts, err := s.repo.ListAlerts(true, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	scores, err := s.repo.ListScores(1)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	var latestScore *models.HealthScore
	if len(scores) > 0 {
		latestScore = scores[0]
	}

	profile, err := s.repo.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	result := map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"baselines":    baselines,
		"records":      records,
		"latest_score": latestScore,
		"has_profile":  profile != nil,
		"summary": map[string]int{
			"baseline_count":   len(baselines),
			"record_count":     len(records),
			"open_alert_count": len(alerts),
		},
	}

	return marshalResource("vitals://summary", result)
}
