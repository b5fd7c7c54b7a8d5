// ABOUTME: Risk trajectory engine: five parameterized condition models.
// ABOUTME: One shared algorithm driven by a per-condition configuration table.
package engine

import (
	"math"
	"sort"

	"github.com/harperreed/vitals/internal/models"
)

// horizonCeiling caps every projected horizon regardless of condition.
const horizonCeiling = 95

// Horizon multipliers applied to the annual progression rate.
const (
	sixMonthFactor = 0.5
	oneYearFactor  = 1.0
	fiveYearFactor = 4.2
	tenYearFactor  = 7.5
)

// RiskInput bundles everything a risk model reads: the intake profile, the
// physiological classification, and the raw windowed averages.
type RiskInput struct {
	Profile        *models.IntakeProfile
	Classification *models.PhysiologicalClassification
	AvgHRV         float64
	AvgDeepSleep   float64
}

// protectiveFactor selects which metric's standing against target scales a
// condition's progression rate.
type protectiveFactor int

const (
	protectHRV protectiveFactor = iota
	protectSleep
	protectAverage
)

// driverRule is one data-driven contribution: when the predicate fires, the
// bump is added to current risk and the message joins the driver list.
type driverRule struct {
	when    func(in RiskInput) bool
	bump    float64
	message string
}

// conditionConfig parameterizes the shared risk model for one condition.
// The five conditions share ~90% of their structure; everything that differs
// lives here so the constants cannot drift between copies.
type conditionConfig struct {
	condition models.Condition

	baseRisk     float64
	comorbidBase float64
	comorbid     func(p *models.IntakeProfile) bool

	hrvDeficitWeight   float64
	sleepDeficitWeight float64

	referenceAge float64
	agePerYear   float64

	ceiling float64

	baseProgression     float64
	comorbidProgression float64
	progressionFloor    float64
	protective          protectiveFactor

	// nearTermLevel switches the risk-level band input from the five-year
	// to the one-year horizon when the comorbidity flag is set, since
	// progression is faster and nearer-term risk drives decisions.
	nearTermLevel bool

	drivers []driverRule
}

func lowHRV(in RiskInput) bool {
	return in.Classification.HRV.Classification == models.HRVLow
}

func inadequateSleep(in RiskInput) bool {
	return in.Classification.DeepSleep.Classification == models.SleepInadequate
}

func veryLowDeepSleep(in RiskInput) bool {
	return in.AvgDeepSleep < 45
}

// conditionConfigs is the five-entry model table, in canonical order.
var conditionConfigs = []conditionConfig{
	{
		condition:          models.ConditionDementia,
		baseRisk:           3,
		sleepDeficitWeight: 20,
		hrvDeficitWeight:   10,
		referenceAge:       45,
		agePerYear:         0.8,
		ceiling:            88,
		baseProgression:    2.0,
		progressionFloor:   0.5,
		protective:         protectSleep,
		drivers: []driverRule{
			{when: veryLowDeepSleep, bump: 6, message: "Deep sleep below 45 minutes impairs glymphatic clearance"},
			{when: inadequateSleep, bump: 4, message: "Deep sleep consistently under the age-adjusted target"},
			{when: lowHRV, bump: 3, message: "Low HRV indicates reduced autonomic resilience"},
		},
	},
	{
		condition:        models.ConditionCardiovascular,
		baseRisk:         6,
		comorbidBase:     30,
		comorbid:         func(p *models.IntakeProfile) bool { return p.HasHeartFailure },
		hrvDeficitWeight: 25,
		referenceAge:     40,
		agePerYear:       0.7,
		ceiling:          92,
		baseProgression:  2.5,
		comorbidProgression: 4.0,
		progressionFloor: 0.45,
		protective:       protectHRV,
		drivers: []driverRule{
			{when: lowHRV, bump: 8, message: "Low HRV is an established cardiovascular risk marker"},
			{when: func(in RiskInput) bool { return in.Profile.HasDiabetes }, bump: 6, message: "Diabetes accelerates vascular aging"},
			{when: func(in RiskInput) bool { return in.Profile.HasChronicKidneyDisease }, bump: 5, message: "Chronic kidney disease compounds cardiovascular load"},
			{when: veryLowDeepSleep, bump: 3, message: "Deep sleep below 45 minutes raises blood pressure burden"},
		},
	},
	{
		condition:        models.ConditionHeartFailure,
		baseRisk:         4,
		comorbidBase:     45,
		comorbid:         func(p *models.IntakeProfile) bool { return p.HasHeartFailure },
		hrvDeficitWeight: 20,
		referenceAge:     50,
		agePerYear:       0.6,
		ceiling:          90,
		baseProgression:  1.8,
		comorbidProgression: 5.0,
		progressionFloor: 0.45,
		protective:       protectHRV,
		nearTermLevel:    true,
		drivers: []driverRule{
			{when: func(in RiskInput) bool { return in.Profile.HasHeartFailure }, bump: 0, message: "Existing heart failure diagnosis dominates the projection"},
			{when: lowHRV, bump: 7, message: "Low HRV reflects strained cardiac autonomic control"},
			{when: func(in RiskInput) bool { return in.Profile.HasChronicKidneyDisease }, bump: 6, message: "Chronic kidney disease drives fluid and pressure overload"},
			{when: func(in RiskInput) bool { return in.Profile.HasDiabetes }, bump: 4, message: "Diabetes independently raises heart failure incidence"},
		},
	},
	{
		condition:          models.ConditionCognitiveDecline,
		baseRisk:           5,
		sleepDeficitWeight: 18,
		hrvDeficitWeight:   8,
		referenceAge:       45,
		agePerYear:         0.65,
		ceiling:            85,
		baseProgression:    1.6,
		progressionFloor:   0.5,
		protective:         protectSleep,
		drivers: []driverRule{
			{when: inadequateSleep, bump: 5, message: "Inadequate deep sleep limits overnight memory consolidation"},
			{when: veryLowDeepSleep, bump: 4, message: "Deep sleep below 45 minutes accelerates cognitive aging"},
			{when: lowHRV, bump: 3, message: "Low HRV correlates with reduced cerebral perfusion"},
		},
	},
	{
		condition:          models.ConditionMetabolic,
		baseRisk:           5,
		comorbidBase:       40,
		comorbid:           func(p *models.IntakeProfile) bool { return p.HasDiabetes },
		hrvDeficitWeight:   12,
		sleepDeficitWeight: 12,
		referenceAge:       40,
		agePerYear:         0.5,
		ceiling:            90,
		baseProgression:    2.0,
		comorbidProgression: 4.5,
		progressionFloor:   0.4,
		protective:         protectAverage,
		nearTermLevel:      true,
		drivers: []driverRule{
			{when: func(in RiskInput) bool { return in.Profile.HasDiabetes }, bump: 0, message: "Existing diabetes diagnosis dominates the projection"},
			{when: inadequateSleep, bump: 5, message: "Short deep sleep degrades insulin sensitivity"},
			{when: lowHRV, bump: 4, message: "Low HRV tracks with metabolic syndrome markers"},
			{when: func(in RiskInput) bool { return in.Profile.HasChronicKidneyDisease }, bump: 4, message: "Chronic kidney disease worsens metabolic control"},
		},
	},
}

// ComputeTrajectories runs all five condition models over one input snapshot.
// Results come back in canonical condition order. It fails with
// ErrMissingIntake when the profile or classification is absent.
func ComputeTrajectories(in RiskInput) ([]*models.RiskTrajectory, error) {
	if in.Profile == nil {
		return nil, ErrMissingIntake
	}
	if in.Classification == nil {
		c, err := Classify(in.AvgHRV, in.AvgDeepSleep, in.Profile)
		if err != nil {
			return nil, err
		}
		in.Classification = c
	}

	trajectories := make([]*models.RiskTrajectory, 0, len(conditionConfigs))
	for i := range conditionConfigs {
		trajectories = append(trajectories, computeTrajectory(&conditionConfigs[i], in))
	}
	return trajectories, nil
}

// computeTrajectory runs the shared model shape for one condition.
func computeTrajectory(cfg *conditionConfig, in RiskInput) *models.RiskTrajectory {
	comorbid := cfg.comorbid != nil && cfg.comorbid(in.Profile)

	// 1. Condition-specific base, much higher if the comorbidity exists.
	risk := cfg.baseRisk
	if comorbid {
		risk = cfg.comorbidBase
	}

	// 2. Deficit-proportional contributions, clamped at zero when the
	// actual average meets or exceeds the age-adjusted target.
	hrvTarget := HRVTargetForAge(in.Profile.Age)
	sleepTarget := DeepSleepTargetForAge(in.Profile.Age)
	risk += deficitContribution(in.AvgHRV, hrvTarget, cfg.hrvDeficitWeight)
	risk += deficitContribution(in.AvgDeepSleep, sleepTarget, cfg.sleepDeficitWeight)

	// 3. Fixed step increments with driver messages, insertion order,
	// capped at the three most significant.
	var drivers []string
	for _, rule := range cfg.drivers {
		if rule.when(in) {
			risk += rule.bump
			drivers = append(drivers, rule.message)
		}
	}
	if len(drivers) > 3 {
		drivers = drivers[:3]
	}

	// 4. Age-linear term.
	risk += math.Max(0, (float64(in.Profile.Age)-cfg.referenceAge)*cfg.agePerYear)

	// 5. Clamp current risk to the condition ceiling.
	current := clamp(risk, 0, cfg.ceiling)

	// 6. Annual progression, scaled inversely by how far the protective
	// factor sits below target. The floor prevents runaway scaling.
	progression := cfg.baseProgression
	if comorbid && cfg.comorbidProgression > 0 {
		progression = cfg.comorbidProgression
	}
	standing := protectiveStanding(cfg.protective, in, hrvTarget, sleepTarget)
	progression *= 1 / math.Max(cfg.progressionFloor, standing)

	// 7. Fixed-multiplier horizons, each independently clamped.
	project := func(factor float64) float64 {
		return clamp(current+progression*factor, 0, horizonCeiling)
	}
	t := &models.RiskTrajectory{
		Condition:      cfg.condition,
		Current:        current,
		SixMonths:      project(sixMonthFactor),
		OneYear:        project(oneYearFactor),
		FiveYears:      project(fiveYearFactor),
		TenYears:       project(tenYearFactor),
		PrimaryDrivers: drivers,
	}

	// 8. Risk level from the five-year value, or one-year for the
	// comorbidity-gated conditions when the flag is already set.
	levelInput := t.FiveYears
	if cfg.nearTermLevel && comorbid {
		levelInput = t.OneYear
	}
	t.RiskLevel = riskLevelFor(levelInput)

	// 9. Trend: worsening when the protective classification is in its
	// worst or middle tier, or the comorbidity already exists. A single
	// snapshot never reports improvement.
	t.Trend = models.TrendStable
	if comorbid || protectiveWorsening(cfg.protective, in.Classification) {
		t.Trend = models.TrendWorsening
	}

	return t
}

// deficitContribution is (target-actual)/target * weight, clamped at zero
// when the actual meets or exceeds target.
func deficitContribution(actual, target, weight float64) float64 {
	if weight == 0 || actual >= target {
		return 0
	}
	return (target - actual) / target * weight
}

// protectiveStanding is the protective factor's actual/target ratio.
func protectiveStanding(p protectiveFactor, in RiskInput, hrvTarget, sleepTarget float64) float64 {
	switch p {
	case protectHRV:
		return in.AvgHRV / hrvTarget
	case protectSleep:
		return in.AvgDeepSleep / sleepTarget
	default:
		return (in.AvgHRV/hrvTarget + in.AvgDeepSleep/sleepTarget) / 2
	}
}

// protectiveWorsening reports whether the classification tier backing the
// protective factor is below its favorable/adequate tier.
func protectiveWorsening(p protectiveFactor, c *models.PhysiologicalClassification) bool {
	hrvBad := c.HRV.Classification != models.HRVFavorable
	sleepBad := c.DeepSleep.Classification != models.SleepAdequate
	switch p {
	case protectHRV:
		return hrvBad
	case protectSleep:
		return sleepBad
	default:
		return hrvBad || sleepBad
	}
}

// riskLevelFor maps a projected risk percentage onto the fixed bands.
func riskLevelFor(value float64) models.RiskLevel {
	switch {
	case value < 15:
		return models.RiskLow
	case value < 30:
		return models.RiskModerate
	case value < 50:
		return models.RiskElevated
	case value < 70:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

// TopConcerns ranks trajectories by five-year risk descending and returns the
// top two condition names. Ties keep the input order (the sort is stable).
func TopConcerns(trajectories []*models.RiskTrajectory) []models.Condition {
	ranked := make([]*models.RiskTrajectory, len(trajectories))
	copy(ranked, trajectories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FiveYears > ranked[j].FiveYears
	})

	n := 2
	if len(ranked) < n {
		n = len(ranked)
	}
	concerns := make([]models.Condition, 0, n)
	for _, t := range ranked[:n] {
		concerns = append(concerns, t.Condition)
	}
	return concerns
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
