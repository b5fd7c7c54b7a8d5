// ABOUTME: Personal record model for best-ever metric values.
// ABOUTME: One current record per (metric type, scope); monthly scope is reserved.
package models

import (
	"github.com/google/uuid"
)

// RecordScope distinguishes all-time from monthly records.
// Only all-time records are computed today; monthly is a reserved
// extension point for a future rollup pass.
type RecordScope string

const (
	ScopeAllTime RecordScope = "all_time"
	ScopeMonthly RecordScope = "monthly"
)

// PersonalRecord is the best value ever observed for a metric, in that
// metric's improvement direction. PreviousRecord is nil for a first record.
type PersonalRecord struct {
	ID             uuid.UUID
	MetricType     MetricType
	RecordValue    float64
	PreviousRecord *float64
	AchievedDate   string
	Scope          RecordScope
}

// NewPersonalRecord creates an all-time record for a metric value.
func NewPersonalRecord(mt MetricType, value float64, achievedDate string) *PersonalRecord {
	return &PersonalRecord{
		ID:           uuid.New(),
		MetricType:   mt,
		RecordValue:  value,
		AchievedDate: achievedDate,
		Scope:        ScopeAllTime,
	}
}

// Beats reports whether value strictly improves on the record in the
// metric's direction.
func (r *PersonalRecord) Beats(value float64) bool {
	if HigherIsBetter(r.MetricType) {
		return value > r.RecordValue
	}
	return value < r.RecordValue
}
