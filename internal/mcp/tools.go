// ABOUTME: MCP tool implementations for the vitals derivation engine.
// ABOUTME: Exposes sample ingestion, baselines, records, classification, and risk.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// record_sample
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_sample",
		Description: "Record one day's wearable readings and run record and anomaly detection",
	}, s.handleRecordSample)

	// set_intake_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_intake_profile",
		Description: "Set the intake profile (age, sex, diagnosed conditions) used for age-adjusted analysis",
	}, s.handleSetProfile)

	// get_intake_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_intake_profile",
		Description: "Get the stored intake profile",
	}, s.handleGetProfile)

	// recalc_baselines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recalc_baselines",
		Description: "Force recalculation of personal baselines from the trailing sample window",
	}, s.handleRecalcBaselines)

	// list_baselines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_baselines",
		Description: "List stored personal baselines (mean and standard deviation per metric)",
	}, s.handleListBaselines)

	// list_anomalies
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_anomalies",
		Description: "List anomaly alerts, optionally only unreviewed ones",
	}, s.handleListAnomalies)

	// mark_anomaly_seen
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "mark_anomaly_seen",
		Description: "Mark an anomaly alert as reviewed by ID or ID prefix",
	}, s.handleMarkAnomalySeen)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List current personal records (best-ever value per metric)",
	}, s.handleListRecords)

	// get_classification
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_classification",
		Description: "Get the age-adjusted HRV and deep sleep classification over the trailing 30 days",
	}, s.handleGetClassification)

	// get_risk_trajectories
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_risk_trajectories",
		Description: "Get projected risk trajectories for the five modeled conditions",
	}, s.handleGetRiskTrajectories)

	// record_health_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_health_score",
		Description: "Compose and store a daily health score from four weighted components",
	}, s.handleRecordHealthScore)

	// get_health_score
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_health_score",
		Description: "Get the stored health score for a date",
	}, s.handleGetHealthScore)
}

// Tool input/output types

type recordSampleInput struct {
	Date     string             `json:"date" jsonschema:"description=Sample date (YYYY-MM-DD),required"`
	Source   string             `json:"source" jsonschema:"description=Upload source (oura, whoop, apple_health, manual),required"`
	Readings map[string]float64 `json:"readings" jsonschema:"description=Metric readings keyed by type (hrv, resting_heart_rate, deep_sleep_minutes, sleep_efficiency, recovery_score, steps),required"`
}

type recordSampleOutput struct {
	NewRecords []string `json:"new_records,omitempty"`
	Alerts     []string `json:"alerts,omitempty"`
	Message    string   `json:"message"`
}

type setProfileInput struct {
	Age                     int    `json:"age" jsonschema:"description=Age in years,required"`
	Sex                     string `json:"sex" jsonschema:"description=Sex (male, female, other),required"`
	HasHeartFailure         bool   `json:"has_heart_failure,omitempty" jsonschema:"description=Diagnosed heart failure"`
	HasDiabetes             bool   `json:"has_diabetes,omitempty" jsonschema:"description=Diagnosed diabetes"`
	HasChronicKidneyDisease bool   `json:"has_chronic_kidney_disease,omitempty" jsonschema:"description=Diagnosed chronic kidney disease"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type listAnomaliesInput struct {
	UnseenOnly bool `json:"unseen_only,omitempty" jsonschema:"description=Only alerts not yet reviewed"`
	Limit      int  `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type markAnomalySeenInput struct {
	ID string `json:"id" jsonschema:"description=Alert ID or prefix,required"`
}

type scoreComponentInput struct {
	Score  float64 `json:"score" jsonschema:"description=Component score 0-100,required"`
	Weight float64 `json:"weight" jsonschema:"description=Component weight 0-1,required"`
}

type recordHealthScoreInput struct {
	Date      string              `json:"date" jsonschema:"description=Score date (YYYY-MM-DD),required"`
	HRV       scoreComponentInput `json:"hrv" jsonschema:"description=HRV component,required"`
	Sleep     scoreComponentInput `json:"sleep" jsonschema:"description=Sleep component,required"`
	Recovery  scoreComponentInput `json:"recovery" jsonschema:"description=Recovery component,required"`
	Activity  scoreComponentInput `json:"activity" jsonschema:"description=Activity component,required"`
	Reasoning string              `json:"reasoning,omitempty" jsonschema:"description=Why the weights were chosen"`
}

type getHealthScoreInput struct {
	Date string `json:"date,omitempty" jsonschema:"description=Score date (YYYY-MM-DD), defaults to today"`
}

// Tool handlers

func (s *Server) handleRecordSample(ctx context.Context, req *mcp.CallToolRequest, input recordSampleInput) (*mcp.CallToolResult, recordSampleOutput, error) {
	if _, err := time.Parse(models.DateFormat, input.Date); err != nil {
		return nil, recordSampleOutput{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", input.Date)
	}
	if input.Source == "" {
		return nil, recordSampleOutput{}, fmt.Errorf("source is required")
	}
	if len(input.Readings) == 0 {
		return nil, recordSampleOutput{}, fmt.Errorf("at least one reading is required")
	}

	sample := models.NewDailySample(input.Date, input.Source)
	for name, value := range input.Readings {
		if !models.IsValidMetricType(name) {
			return nil, recordSampleOutput{}, fmt.Errorf("unknown metric type: %s", name)
		}
		sample.WithValue(models.MetricType(name), value)
	}

	result, err := s.pipeline.ProcessSample(sample, time.Now())
	if err != nil {
		return nil, recordSampleOutput{}, fmt.Errorf("failed to process sample: %w", err)
	}

	out := recordSampleOutput{}
	for _, r := range result.NewRecords {
		out.NewRecords = append(out.NewRecords,
			fmt.Sprintf("%s: %.1f %s", r.MetricType, r.RecordValue, models.MetricUnits[r.MetricType]))
	}
	for _, a := range result.Alerts {
		out.Alerts = append(out.Alerts,
			fmt.Sprintf("%s %s: %.1f vs baseline %.1f (%.1f SD)",
				a.Severity, a.MetricType, a.DetectedValue, a.BaselineValue, a.DeviationAmount))
	}
	out.Message = fmt.Sprintf("Recorded %d readings for %s (%s): %d new records, %d alerts",
		len(input.Readings), input.Date, input.Source, len(out.NewRecords), len(out.Alerts))
	return nil, out, nil
}

func (s *Server) handleSetProfile(ctx context.Context, req *mcp.CallToolRequest, input setProfileInput) (*mcp.CallToolResult, simpleOutput, error) {
	p := &models.IntakeProfile{
		Age:                     input.Age,
		Sex:                     models.Sex(input.Sex),
		HasHeartFailure:         input.HasHeartFailure,
		HasDiabetes:             input.HasDiabetes,
		HasChronicKidneyDisease: input.HasChronicKidneyDisease,
		UpdatedAt:               time.Now(),
	}
	if err := s.repo.PutProfile(p); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to store profile: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Intake profile set: age %d, sex %s", p.Age, p.Sex),
	}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetProfile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if p == nil {
		return nil, map[string]any{"message": "No intake profile set."}, nil
	}
	return nil, p, nil
}

func (s *Server) handleRecalcBaselines(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	baselines, err := s.pipeline.RecalcBaselines(time.Now())
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to recalc baselines: %w", err)
	}
	if len(baselines) == 0 {
		return nil, simpleOutput{
			Message: "Not enough samples yet to establish baselines.",
		}, nil
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recalculated %d baselines", len(baselines)),
	}, nil
}

func (s *Server) handleListBaselines(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	baselines, err := s.repo.ListBaselines()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list baselines: %w", err)
	}
	if len(baselines) == 0 {
		return nil, map[string]any{"message": "No baselines established yet."}, nil
	}
	return nil, baselines, nil
}

func (s *Server) handleListAnomalies(ctx context.Context, req *mcp.CallToolRequest, input listAnomaliesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	alerts, err := s.repo.ListAlerts(input.UnseenOnly, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil, map[string]any{"message": "No anomalies found."}, nil
	}
	return nil, alerts, nil
}

func (s *Server) handleMarkAnomalySeen(ctx context.Context, req *mcp.CallToolRequest, input markAnomalySeenInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.MarkAlertSeen(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to mark alert seen: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Marked alert seen: %s", input.ID),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	records, err := s.repo.ListRecords()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}
	if len(records) == 0 {
		return nil, map[string]any{"message": "No personal records yet."}, nil
	}
	return nil, records, nil
}

func (s *Server) handleGetClassification(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	c, err := s.pipeline.Classification(time.Now())
	if err != nil {
		if errors.Is(err, engine.ErrMissingIntake) {
			return nil, nil, fmt.Errorf("set an intake profile first (set_intake_profile)")
		}
		if errors.Is(err, engine.ErrNoSamples) {
			return nil, map[string]any{"message": "No samples in the analysis window yet."}, nil
		}
		return nil, nil, fmt.Errorf("failed to classify: %w", err)
	}
	return nil, c, nil
}

func (s *Server) handleGetRiskTrajectories(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	trajectories, err := s.pipeline.RiskTrajectories(time.Now())
	if err != nil {
		if errors.Is(err, engine.ErrMissingIntake) {
			return nil, nil, fmt.Errorf("set an intake profile first (set_intake_profile)")
		}
		if errors.Is(err, engine.ErrNoSamples) {
			return nil, map[string]any{"message": "No samples in the analysis window yet."}, nil
		}
		return nil, nil, fmt.Errorf("failed to compute risk: %w", err)
	}

	return nil, map[string]any{
		"trajectories": trajectories,
		"top_concerns": engine.TopConcerns(trajectories),
	}, nil
}

func (s *Server) handleRecordHealthScore(ctx context.Context, req *mcp.CallToolRequest, input recordHealthScoreInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := time.Parse(models.DateFormat, input.Date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", input.Date)
	}

	component := func(in scoreComponentInput) models.ScoreComponent {
		return models.ScoreComponent{Score: in.Score, Weight: in.Weight}
	}
	score, err := engine.ComposeScore(input.Date,
		component(input.HRV), component(input.Sleep),
		component(input.Recovery), component(input.Activity),
		input.Reasoning)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid score components: %w", err)
	}

	if err := s.repo.UpsertScore(score); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to store score: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Health score for %s: %.1f", score.Date, score.Overall),
	}, nil
}

func (s *Server) handleGetHealthScore(ctx context.Context, req *mcp.CallToolRequest, input getHealthScoreInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}
	score, err := s.repo.GetScore(date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read score: %w", err)
	}
	if score == nil {
		return nil, map[string]any{"message": fmt.Sprintf("No health score for %s.", date)}, nil
	}
	return nil, score, nil
}
