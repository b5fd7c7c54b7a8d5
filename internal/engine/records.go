// ABOUTME: Personal record tracker comparing fresh readings to stored bests.
// ABOUTME: Strict improvement in the metric's direction replaces the record.
package engine

import (
	"github.com/harperreed/vitals/internal/models"
)

// RecordMetrics is the set of metric types tracked for personal records.
// All are higher-is-better except resting heart rate.
var RecordMetrics = []models.MetricType{
	models.MetricHRV,
	models.MetricDeepSleep,
	models.MetricSleepEfficiency,
	models.MetricRecoveryScore,
	models.MetricSteps,
	models.MetricRestingHR,
}

// EvaluateRecord decides whether a fresh reading sets a new all-time record.
// It returns the replacement record, or nil when the existing record stands.
// A missing existing record always yields a new one with a nil previous value.
func EvaluateRecord(existing *models.PersonalRecord, mt models.MetricType, value float64, date string) *models.PersonalRecord {
	if existing != nil && !existing.Beats(value) {
		return nil
	}

	r := models.NewPersonalRecord(mt, value, date)
	if existing != nil {
		prev := existing.RecordValue
		r.PreviousRecord = &prev
	}
	return r
}

// UpdateRecords runs the record check for every tracked metric present in a
// day's sample, against the caller's current record snapshot. It returns the
// records that were set this cycle, in RecordMetrics order. Persisting them
// (with a compare-and-set upsert, since concurrent uploads can race) is the
// storage layer's job.
func UpdateRecords(current map[models.MetricType]*models.PersonalRecord, sample *models.DailySample) []*models.PersonalRecord {
	var set []*models.PersonalRecord
	for _, mt := range RecordMetrics {
		value, ok := sample.Value(mt)
		if !ok {
			continue
		}
		if r := EvaluateRecord(current[mt], mt, value, sample.Date); r != nil {
			set = append(set, r)
		}
	}
	return set
}
