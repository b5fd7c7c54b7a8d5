// ABOUTME: Baseline estimator computing rolling mean/stddev per metric type.
// ABOUTME: Population formula over a trailing 14-day window with minimum counts.
package engine

import (
	"math"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

const (
	// BaselineWindowDays is the trailing window baselines are computed over.
	BaselineWindowDays = 14

	// MinWindowSamples is the total number of readings (across all metric
	// types) required in the window before computation is attempted at all.
	MinWindowSamples = 7

	// MinMetricSamples is the per-type count required to emit a baseline
	// for that type. Types with fewer are skipped, not errored.
	MinMetricSamples = 5

	// RecalcInterval is how long a computed baseline stays fresh.
	RecalcInterval = 30 * 24 * time.Hour
)

// ComputeBaselines derives a baseline per metric type from the given trailing
// window of samples. It returns nil when the window holds fewer than
// MinWindowSamples readings in total; that is the defined no-op, not an error.
// Metric types with fewer than MinMetricSamples readings are skipped.
func ComputeBaselines(samples []*models.DailySample, now time.Time) []*models.UserBaseline {
	byType := make(map[models.MetricType][]float64)
	total := 0
	for _, s := range samples {
		for mt, v := range s.Values {
			byType[mt] = append(byType[mt], v)
			total++
		}
	}

	if total < MinWindowSamples {
		return nil
	}

	var baselines []*models.UserBaseline
	for _, mt := range models.AllMetricTypes {
		values := byType[mt]
		if len(values) < MinMetricSamples {
			continue
		}
		mean, stddev := meanStdDev(values)
		baselines = append(baselines, &models.UserBaseline{
			MetricType:   mt,
			Mean:         mean,
			StdDeviation: stddev,
			SampleCount:  len(values),
			CalculatedAt: now,
			NextRecalcAt: now.Add(RecalcInterval),
		})
	}
	return baselines
}

// WindowStart returns the first day (inclusive) of the trailing baseline
// window ending at now.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -BaselineWindowDays)
}

// meanStdDev computes the arithmetic mean and population standard deviation
// (divide by n, not n-1) of a non-empty value set.
func meanStdDev(values []float64) (float64, float64) {
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / n)
}
