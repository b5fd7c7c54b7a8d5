// ABOUTME: Derived risk trajectory and physiological classification models.
// ABOUTME: Recomputed on demand from samples and intake; never persisted incrementally.
package models

// Condition names one of the five modeled disease categories.
type Condition string

const (
	ConditionDementia         Condition = "dementia"
	ConditionCardiovascular   Condition = "cardiovascular"
	ConditionHeartFailure     Condition = "heartFailure"
	ConditionCognitiveDecline Condition = "cognitiveDecline"
	ConditionMetabolic        Condition = "metabolic"
)

// ConditionOrder is the canonical, stable ordering of the five conditions.
var ConditionOrder = []Condition{
	ConditionDementia,
	ConditionCardiovascular,
	ConditionHeartFailure,
	ConditionCognitiveDecline,
	ConditionMetabolic,
}

// RiskLevel is a coarse banding of projected risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskElevated RiskLevel = "elevated"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskTrend describes how the trajectory is expected to move.
// A single snapshot never reports "improving"; that only falls out of
// comparing two runs over time, which is a reporting concern.
type RiskTrend string

const (
	TrendImproving RiskTrend = "improving"
	TrendStable    RiskTrend = "stable"
	TrendWorsening RiskTrend = "worsening"
)

// RiskTrajectory is the current and projected risk for one condition.
// All percentages live in [0,100] and the horizons are monotonically
// non-decreasing by construction.
type RiskTrajectory struct {
	Condition      Condition
	Current        float64
	SixMonths      float64
	OneYear        float64
	FiveYears      float64
	TenYears       float64
	RiskLevel      RiskLevel
	PrimaryDrivers []string
	Trend          RiskTrend
}

// HRV classification tiers.
const (
	HRVLow       = "low"
	HRVModerate  = "moderate"
	HRVFavorable = "favorable"
)

// Deep sleep classification tiers.
const (
	SleepInadequate = "inadequate"
	SleepBorderline = "borderline"
	SleepAdequate   = "adequate"
)

// MetricReading is one classified average within a physiological
// classification: raw value, qualitative tier, and relative standing
// against the age-banded reference.
type MetricReading struct {
	Value          float64
	Classification string
	Percentile     float64
	AgeAdjusted    bool
}

// PhysiologicalClassification buckets HRV and deep-sleep averages into
// qualitative tiers using age-adjusted reference targets. Derived only.
type PhysiologicalClassification struct {
	HRV       MetricReading
	DeepSleep MetricReading
}
