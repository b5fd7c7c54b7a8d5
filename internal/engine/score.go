// ABOUTME: Health score composer implementing the weighted-sum contract.
// ABOUTME: Weight allocation itself lives server-side; this validates and composes.
package engine

import (
	"fmt"
	"math"

	"github.com/harperreed/vitals/internal/models"
)

// weightTolerance is the slack allowed when checking weights sum to 1.
const weightTolerance = 0.01

// ComposeScore validates the four component weights, clamps component scores
// to [0,100], and composes the overall score as the weighted sum. The
// reasoning text comes from the weighting collaborator and passes through
// untouched.
func ComposeScore(date string, hrv, sleep, recovery, activity models.ScoreComponent, reasoning string) (*models.HealthScore, error) {
	components := []models.ScoreComponent{hrv, sleep, recovery, activity}

	sum := 0.0
	for i, c := range components {
		if c.Weight < 0 || c.Weight > 1 {
			return nil, fmt.Errorf("component %d weight %.3f outside [0,1]", i, c.Weight)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return nil, fmt.Errorf("component weights sum to %.3f, want 1", sum)
	}

	clampComponent := func(c models.ScoreComponent) models.ScoreComponent {
		c.Score = clamp(c.Score, 0, 100)
		return c
	}
	hrv = clampComponent(hrv)
	sleep = clampComponent(sleep)
	recovery = clampComponent(recovery)
	activity = clampComponent(activity)

	overall := hrv.Score*hrv.Weight +
		sleep.Score*sleep.Weight +
		recovery.Score*recovery.Weight +
		activity.Score*activity.Weight

	return &models.HealthScore{
		Date:      date,
		Overall:   clamp(overall, 0, 100),
		HRV:       hrv,
		Sleep:     sleep,
		Recovery:  recovery,
		Activity:  activity,
		Reasoning: reasoning,
	}, nil
}
