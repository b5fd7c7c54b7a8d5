// ABOUTME: Export and import functionality for derived health data.
// ABOUTME: Supports JSON and YAML backup formats plus a Markdown summary.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for vitals data.
type ExportData struct {
	Version    string                   `json:"version" yaml:"version"`
	ExportedAt time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool       string                   `json:"tool" yaml:"tool"`
	Profile    *models.IntakeProfile    `json:"profile,omitempty" yaml:"profile,omitempty"`
	Samples    []*models.DailySample    `json:"samples" yaml:"samples"`
	Baselines  []*models.UserBaseline   `json:"baselines" yaml:"baselines"`
	Alerts     []*models.AnomalyAlert   `json:"alerts" yaml:"alerts"`
	Records    []*models.PersonalRecord `json:"records" yaml:"records"`
	Scores     []*models.HealthScore    `json:"scores" yaml:"scores"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	profile, err := d.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	samples, err := d.ListSamples(0)
	if err != nil {
		return nil, fmt.Errorf("export samples: %w", err)
	}
	baselines, err := d.ListBaselines()
	if err != nil {
		return nil, fmt.Errorf("export baselines: %w", err)
	}
	alerts, err := d.ListAlerts(false, 0)
	if err != nil {
		return nil, fmt.Errorf("export alerts: %w", err)
	}
	records, err := d.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	scores, err := d.ListScores(0)
	if err != nil {
		return nil, fmt.Errorf("export scores: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "vitals",
		Profile:    profile,
		Samples:    samples,
		Baselines:  baselines,
		Alerts:     alerts,
		Records:    records,
		Scores:     scores,
	}, nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	if data.Profile != nil {
		if err := d.PutProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	for _, s := range data.Samples {
		if err := d.UpsertSample(s); err != nil {
			return fmt.Errorf("import sample %s: %w", s.Date, err)
		}
	}
	for _, b := range data.Baselines {
		if err := d.UpsertBaseline(b); err != nil {
			return fmt.Errorf("import baseline %s: %w", b.MetricType, err)
		}
	}
	for _, a := range data.Alerts {
		if err := d.CreateAlert(a); err != nil {
			return fmt.Errorf("import alert %s: %w", a.ID, err)
		}
	}
	for _, r := range data.Records {
		if _, err := d.CompareAndSetRecord(r); err != nil {
			return fmt.Errorf("import record %s: %w", r.MetricType, err)
		}
	}
	for _, s := range data.Scores {
		if err := d.UpsertScore(s); err != nil {
			return fmt.Errorf("import score %s: %w", s.Date, err)
		}
	}
	return nil
}

// MarshalExportJSON renders an export as indented JSON.
func MarshalExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// MarshalExportYAML renders an export as YAML.
func MarshalExportYAML(data *ExportData) ([]byte, error) {
	return yaml.Marshal(data)
}

// ParseExportJSON parses JSON bytes into an export.
func ParseExportJSON(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return &data, nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return MarshalExportJSON(data)
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML() ([]byte, error) {
	data, err := d.GetAllData()
	if err != nil {
		return nil, err
	}
	return MarshalExportYAML(data)
}

// ExportMarkdown exports a human-readable summary as Markdown tables.
func (d *DB) ExportMarkdown() (string, error) {
	data, err := d.GetAllData()
	if err != nil {
		return "", err
	}
	return RenderExportMarkdown(data), nil
}

// RenderExportMarkdown renders an export as Markdown tables.
func RenderExportMarkdown(data *ExportData) string {
	var sb strings.Builder
	now := time.Now()
	sb.WriteString(fmt.Sprintf("# Vitals Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(data.Records) > 0 {
		sb.WriteString("## Personal Records\n\n")
		sb.WriteString("| Metric | Record | Previous | Achieved |\n")
		sb.WriteString("|--------|--------|----------|----------|\n")
		for _, r := range data.Records {
			prev := "-"
			if r.PreviousRecord != nil {
				prev = fmt.Sprintf("%.1f", *r.PreviousRecord)
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f %s | %s | %s |\n",
				r.MetricType, r.RecordValue, models.MetricUnits[r.MetricType],
				prev, r.AchievedDate))
		}
		sb.WriteString("\n")
	}

	if len(data.Baselines) > 0 {
		sb.WriteString("## Baselines\n\n")
		sb.WriteString("| Metric | Mean | Std Dev | Samples | Next Recalc |\n")
		sb.WriteString("|--------|------|---------|---------|-------------|\n")
		for _, b := range data.Baselines {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %d | %s |\n",
				b.MetricType, b.Mean, b.StdDeviation, b.SampleCount,
				b.NextRecalcAt.Format("2006-01-02")))
		}
		sb.WriteString("\n")
	}

	if len(data.Samples) > 0 {
		sb.WriteString("## Samples\n\n")
		sb.WriteString("| Date | Source | Readings |\n")
		sb.WriteString("|------|--------|----------|\n")
		for _, s := range data.Samples {
			var parts []string
			for _, mt := range models.AllMetricTypes {
				if v, ok := s.Value(mt); ok {
					parts = append(parts, fmt.Sprintf("%s %.1f", mt, v))
				}
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				s.Date, s.Source, strings.Join(parts, ", ")))
		}
	}

	return sb.String()
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(data []byte) error {
	exportData, err := ParseExportJSON(data)
	if err != nil {
		return err
	}
	return d.ImportData(exportData)
}
