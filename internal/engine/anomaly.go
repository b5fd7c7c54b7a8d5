// ABOUTME: Anomaly detector comparing new readings to the personal baseline.
// ABOUTME: Classifies severity by z-score magnitude with configurable bands.
package engine

import (
	"math"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// Thresholds holds the z-score bands used to classify anomaly severity.
// These are testable defaults, not hard clinical fact; they are surfaced
// through config rather than baked in.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// DefaultThresholds returns the standard severity bands: |z| >= 3 critical,
// 2 <= |z| < 3 warning.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 2, Critical: 3}
}

// DetectAnomaly compares one new reading against its baseline and returns an
// alert when the deviation crosses a threshold, or nil when the reading is
// unremarkable. A zero-variance baseline cannot produce a meaningful anomaly,
// so stddev == 0 means "cannot evaluate" and also returns nil.
func DetectAnomaly(mt models.MetricType, value float64, baseline *models.UserBaseline, th Thresholds, at time.Time) *models.AnomalyAlert {
	if baseline == nil || baseline.StdDeviation == 0 {
		return nil
	}

	z := (value - baseline.Mean) / baseline.StdDeviation

	var severity models.AlertSeverity
	switch {
	case math.Abs(z) >= th.Critical:
		severity = models.SeverityCritical
	case math.Abs(z) >= th.Warning:
		severity = models.SeverityWarning
	default:
		return nil
	}

	return models.NewAnomalyAlert(mt, value, baseline.Mean, z, severity, at)
}
