// ABOUTME: Personal baseline and anomaly alert models.
// ABOUTME: Baselines are rolling mean/stddev snapshots; alerts record deviations.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserBaseline is the rolling mean and population standard deviation for one
// metric type, recomputed from a trailing sample window. It is overwritten
// wholesale on recalculation, never merged incrementally.
type UserBaseline struct {
	MetricType   MetricType
	Mean         float64
	StdDeviation float64
	SampleCount  int
	CalculatedAt time.Time
	NextRecalcAt time.Time
}

// Due reports whether the baseline is due for recalculation.
func (b *UserBaseline) Due(now time.Time) bool {
	return !now.Before(b.NextRecalcAt)
}

// AlertSeverity classifies how far a reading strayed from baseline.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AnomalyAlert records a reading that deviated from the personal baseline.
// Only the Seen flag ever mutates after creation.
type AnomalyAlert struct {
	ID              uuid.UUID
	MetricType      MetricType
	DetectedValue   float64
	BaselineValue   float64
	DeviationAmount float64
	Severity        AlertSeverity
	Seen            bool
	DetectedAt      time.Time
}

// NewAnomalyAlert creates an unseen alert with a generated UUID.
func NewAnomalyAlert(mt MetricType, detected, baseline, deviation float64, severity AlertSeverity, at time.Time) *AnomalyAlert {
	return &AnomalyAlert{
		ID:              uuid.New(),
		MetricType:      mt,
		DetectedValue:   detected,
		BaselineValue:   baseline,
		DeviationAmount: deviation,
		Severity:        severity,
		Seen:            false,
		DetectedAt:      at,
	}
}
