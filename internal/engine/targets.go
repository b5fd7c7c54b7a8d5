// ABOUTME: Age-banded physiological reference targets.
// ABOUTME: Single lookup shared by the classifier and the risk models.
package engine

// HRVTargetForAge returns the reference HRV target in milliseconds for an
// age. Both the classifier and every risk model read this table; keeping it
// in one place is what guarantees the two never drift apart.
func HRVTargetForAge(age int) float64 {
	switch {
	case age < 30:
		return 60
	case age < 40:
		return 48
	case age < 50:
		return 38
	case age < 60:
		return 30
	default:
		return 24
	}
}

// DeepSleepTargetForAge returns the reference deep-sleep target in minutes
// for an age.
func DeepSleepTargetForAge(age int) float64 {
	switch {
	case age < 30:
		return 90
	case age < 45:
		return 75
	case age < 60:
		return 60
	default:
		return 50
	}
}
