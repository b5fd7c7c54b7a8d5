// ABOUTME: Physiological classifier bucketing HRV and deep-sleep averages.
// ABOUTME: Tiers and percentiles are age-adjusted and monotonic in value.
package engine

import (
	"github.com/harperreed/vitals/internal/models"
)

// Tier boundaries relative to the age-band target. Meeting the target is the
// favorable/adequate tier; 70% of target is the floor of the middle tier.
const moderateFraction = 0.7

// ClassifyHRV buckets an average HRV against the age-adjusted target.
func ClassifyHRV(avgHRV float64, age int) models.MetricReading {
	target := HRVTargetForAge(age)
	tier := models.HRVLow
	switch {
	case avgHRV >= target:
		tier = models.HRVFavorable
	case avgHRV >= target*moderateFraction:
		tier = models.HRVModerate
	}
	return models.MetricReading{
		Value:          avgHRV,
		Classification: tier,
		Percentile:     percentileAgainstTarget(avgHRV, target),
		AgeAdjusted:    true,
	}
}

// ClassifyDeepSleep buckets an average nightly deep-sleep duration against
// the age-adjusted target.
func ClassifyDeepSleep(avgMinutes float64, age int) models.MetricReading {
	target := DeepSleepTargetForAge(age)
	tier := models.SleepInadequate
	switch {
	case avgMinutes >= target:
		tier = models.SleepAdequate
	case avgMinutes >= target*moderateFraction:
		tier = models.SleepBorderline
	}
	return models.MetricReading{
		Value:          avgMinutes,
		Classification: tier,
		Percentile:     percentileAgainstTarget(avgMinutes, target),
		AgeAdjusted:    true,
	}
}

// Classify produces the full physiological classification for a user's
// windowed averages. It fails with ErrMissingIntake rather than defaulting
// the age.
func Classify(avgHRV, avgDeepSleep float64, profile *models.IntakeProfile) (*models.PhysiologicalClassification, error) {
	if profile == nil || profile.Age <= 0 {
		return nil, ErrMissingIntake
	}
	return &models.PhysiologicalClassification{
		HRV:       ClassifyHRV(avgHRV, profile.Age),
		DeepSleep: ClassifyDeepSleep(avgDeepSleep, profile.Age),
	}, nil
}

// percentileAgainstTarget estimates relative standing against the age-banded
// reference population. The target value sits at the 50th percentile; standing
// rises piecewise-linearly to the 90th at 1.5x target and falls to the floor
// below 70% of target. Monotonic in value by construction, clamped to [1,99].
func percentileAgainstTarget(value, target float64) float64 {
	var p float64
	switch {
	case value >= target*1.5:
		p = 90 + (value-target*1.5)/(target*0.5)*9
	case value >= target:
		p = 50 + (value-target)/(target*0.5)*40
	case value >= target*moderateFraction:
		p = 25 + (value-target*moderateFraction)/(target*(1-moderateFraction))*25
	default:
		p = 1 + value/(target*moderateFraction)*24
	}
	if p < 1 {
		p = 1
	}
	if p > 99 {
		p = 99
	}
	return p
}
