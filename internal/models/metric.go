// ABOUTME: Metric type enum and daily sample model for wearable data.
// ABOUTME: Defines the six tracked biometrics, their units, and record direction.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MetricType represents the type of wearable biometric being tracked.
type MetricType string

const (
	MetricHRV             MetricType = "hrv"
	MetricRestingHR       MetricType = "resting_heart_rate"
	MetricDeepSleep       MetricType = "deep_sleep_minutes"
	MetricSleepEfficiency MetricType = "sleep_efficiency"
	MetricRecoveryScore   MetricType = "recovery_score"
	MetricSteps           MetricType = "steps"
)

// MetricUnits maps metric types to their display units.
var MetricUnits = map[MetricType]string{
	MetricHRV:             "ms",
	MetricRestingHR:       "bpm",
	MetricDeepSleep:       "min",
	MetricSleepEfficiency: "%",
	MetricRecoveryScore:   "%",
	MetricSteps:           "steps",
}

// AllMetricTypes returns all valid metric types.
var AllMetricTypes = []MetricType{
	MetricHRV, MetricRestingHR, MetricDeepSleep,
	MetricSleepEfficiency, MetricRecoveryScore, MetricSteps,
}

// higherIsBetter is the fixed improvement direction per metric type.
// Resting heart rate is the only inverse metric: lower readings win.
var higherIsBetter = map[MetricType]bool{
	MetricHRV:             true,
	MetricRestingHR:       false,
	MetricDeepSleep:       true,
	MetricSleepEfficiency: true,
	MetricRecoveryScore:   true,
	MetricSteps:           true,
}

// HigherIsBetter reports the improvement direction for a metric type.
func HigherIsBetter(mt MetricType) bool {
	return higherIsBetter[mt]
}

// IsValidMetricType checks if a string is a valid metric type.
func IsValidMetricType(s string) bool {
	for _, mt := range AllMetricTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// DateFormat is the canonical layout for sample dates.
const DateFormat = "2006-01-02"

// DailySample is one day's worth of readings from a single source.
// Later uploads for the same (date, source) overwrite the whole set.
type DailySample struct {
	ID        uuid.UUID
	Date      string
	Source    string
	Values    map[MetricType]float64
	CreatedAt time.Time
}

// NewDailySample creates a sample set for a date and source with no values.
func NewDailySample(date, source string) *DailySample {
	return &DailySample{
		ID:        uuid.New(),
		Date:      date,
		Source:    source,
		Values:    make(map[MetricType]float64),
		CreatedAt: time.Now(),
	}
}

// WithValue records a reading on the sample.
func (s *DailySample) WithValue(mt MetricType, value float64) *DailySample {
	s.Values[mt] = value
	return s
}

// Value returns the reading for a metric type, if present.
func (s *DailySample) Value(mt MetricType) (float64, bool) {
	v, ok := s.Values[mt]
	return v, ok
}

// Day parses the sample date. A zero time means the date is malformed.
func (s *DailySample) Day() time.Time {
	t, err := time.Parse(DateFormat, s.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
