// ABOUTME: Tests for the health score composer contract.
// ABOUTME: Verifies the weighted sum, weight validation, and clamping.
package engine

import (
	"math"
	"testing"

	"github.com/harperreed/vitals/internal/models"
)

func TestComposeScoreWeightedSum(t *testing.T) {
	score, err := ComposeScore("2026-03-15",
		models.ScoreComponent{Score: 80, Weight: 0.3},
		models.ScoreComponent{Score: 60, Weight: 0.3},
		models.ScoreComponent{Score: 90, Weight: 0.2},
		models.ScoreComponent{Score: 50, Weight: 0.2},
		"recovery weighted up after poor sleep week")
	if err != nil {
		t.Fatalf("ComposeScore failed: %v", err)
	}

	want := 80*0.3 + 60*0.3 + 90*0.2 + 50*0.2
	if math.Abs(score.Overall-want) > 1e-9 {
		t.Errorf("Overall = %v, want %v", score.Overall, want)
	}
	if score.Reasoning != "recovery weighted up after poor sleep week" {
		t.Errorf("Reasoning not passed through: %q", score.Reasoning)
	}
	if score.Date != "2026-03-15" {
		t.Errorf("Date = %s, want 2026-03-15", score.Date)
	}
}

func TestComposeScoreRejectsBadWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights [4]float64
	}{
		{"sum below one", [4]float64{0.2, 0.2, 0.2, 0.2}},
		{"sum above one", [4]float64{0.5, 0.5, 0.5, 0.5}},
		{"negative weight", [4]float64{-0.2, 0.4, 0.4, 0.4}},
		{"weight above one", [4]float64{1.2, 0, 0, -0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComposeScore("2026-03-15",
				models.ScoreComponent{Score: 50, Weight: tt.weights[0]},
				models.ScoreComponent{Score: 50, Weight: tt.weights[1]},
				models.ScoreComponent{Score: 50, Weight: tt.weights[2]},
				models.ScoreComponent{Score: 50, Weight: tt.weights[3]},
				"")
			if err == nil {
				t.Errorf("expected error for weights %v", tt.weights)
			}
		})
	}
}

func TestComposeScoreClampsComponents(t *testing.T) {
	score, err := ComposeScore("2026-03-15",
		models.ScoreComponent{Score: 250, Weight: 0.25},
		models.ScoreComponent{Score: -40, Weight: 0.25},
		models.ScoreComponent{Score: 70, Weight: 0.25},
		models.ScoreComponent{Score: 70, Weight: 0.25},
		"")
	if err != nil {
		t.Fatalf("ComposeScore failed: %v", err)
	}
	if score.HRV.Score != 100 {
		t.Errorf("HRV score = %v, want clamped to 100", score.HRV.Score)
	}
	if score.Sleep.Score != 0 {
		t.Errorf("Sleep score = %v, want clamped to 0", score.Sleep.Score)
	}
	if score.Overall < 0 || score.Overall > 100 {
		t.Errorf("Overall = %v, outside [0,100]", score.Overall)
	}
}
