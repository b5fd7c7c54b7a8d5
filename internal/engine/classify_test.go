// ABOUTME: Tests for the physiological classifier.
// ABOUTME: Verifies tier boundaries, percentile monotonicity, and intake guard.
package engine

import (
	"errors"
	"testing"

	"github.com/harperreed/vitals/internal/models"
)

func TestClassifyHRVTiers(t *testing.T) {
	// Age 50 target is 30ms; moderate floor is 70% of target.
	tests := []struct {
		name string
		hrv  float64
		want string
	}{
		{"well below target", 15, models.HRVLow},
		{"just under moderate floor", 20.9, models.HRVLow},
		{"at moderate floor", 21, models.HRVModerate},
		{"just under target", 29.9, models.HRVModerate},
		{"at target", 30, models.HRVFavorable},
		{"above target", 55, models.HRVFavorable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHRV(tt.hrv, 50)
			if got.Classification != tt.want {
				t.Errorf("ClassifyHRV(%v, 50) = %s, want %s", tt.hrv, got.Classification, tt.want)
			}
			if !got.AgeAdjusted {
				t.Error("expected AgeAdjusted to be set")
			}
		})
	}
}

func TestClassifyDeepSleepTiers(t *testing.T) {
	// Age 35 target is 75 minutes.
	tests := []struct {
		minutes float64
		want    string
	}{
		{40, models.SleepInadequate},
		{52.4, models.SleepInadequate},
		{52.5, models.SleepBorderline},
		{74, models.SleepBorderline},
		{75, models.SleepAdequate},
		{110, models.SleepAdequate},
	}

	for _, tt := range tests {
		got := ClassifyDeepSleep(tt.minutes, 35)
		if got.Classification != tt.want {
			t.Errorf("ClassifyDeepSleep(%v, 35) = %s, want %s", tt.minutes, got.Classification, tt.want)
		}
	}
}

func TestPercentileMonotonicInValue(t *testing.T) {
	// Holding age fixed, increasing HRV must never decrease percentile
	// or demote the classification tier.
	tierRank := map[string]int{
		models.HRVLow:       0,
		models.HRVModerate:  1,
		models.HRVFavorable: 2,
	}

	for _, age := range []int{25, 35, 45, 55, 70} {
		lastPercentile := -1.0
		lastTier := -1
		for hrv := 0.0; hrv <= 120; hrv += 0.5 {
			r := ClassifyHRV(hrv, age)
			if r.Percentile < lastPercentile {
				t.Fatalf("age %d: percentile decreased from %v to %v at hrv=%v",
					age, lastPercentile, r.Percentile, hrv)
			}
			if tierRank[r.Classification] < lastTier {
				t.Fatalf("age %d: tier demoted at hrv=%v", age, hrv)
			}
			lastPercentile = r.Percentile
			lastTier = tierRank[r.Classification]
		}
	}
}

func TestPercentileBounds(t *testing.T) {
	for _, hrv := range []float64{0, 1, 30, 60, 500, 10000} {
		r := ClassifyHRV(hrv, 40)
		if r.Percentile < 1 || r.Percentile > 99 {
			t.Errorf("percentile %v for hrv=%v outside [1,99]", r.Percentile, hrv)
		}
	}
}

func TestPercentileAtTarget(t *testing.T) {
	// The age-band target sits at the 50th percentile by definition.
	r := ClassifyHRV(HRVTargetForAge(45), 45)
	if r.Percentile != 50 {
		t.Errorf("percentile at target = %v, want 50", r.Percentile)
	}
}

func TestClassifyRequiresIntake(t *testing.T) {
	_, err := Classify(50, 70, nil)
	if !errors.Is(err, ErrMissingIntake) {
		t.Errorf("expected ErrMissingIntake for nil profile, got %v", err)
	}

	_, err = Classify(50, 70, &models.IntakeProfile{Age: 0, Sex: models.SexOther})
	if !errors.Is(err, ErrMissingIntake) {
		t.Errorf("expected ErrMissingIntake for zero age, got %v", err)
	}
}

func TestClassifierAndRiskShareTargets(t *testing.T) {
	// The classifier and the risk models must read the identical age-band
	// function: a favorable HRV classification implies a zero HRV deficit
	// contribution at every age.
	for age := 18; age <= 90; age++ {
		target := HRVTargetForAge(age)
		r := ClassifyHRV(target, age)
		if r.Classification != models.HRVFavorable {
			t.Fatalf("age %d: value at target classified %s", age, r.Classification)
		}
		if c := deficitContribution(target, target, 25); c != 0 {
			t.Fatalf("age %d: deficit contribution %v at target, want 0", age, c)
		}
	}
}
