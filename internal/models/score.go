// ABOUTME: Composite daily health score model.
// ABOUTME: Four weighted components rolled into one overall score with reasoning.
package models

// ScoreComponent is one weighted input to the daily health score.
type ScoreComponent struct {
	Score  float64
	Weight float64
}

// HealthScore is the composite daily score. The weighting logic lives in an
// external collaborator; this side only validates, composes, and persists.
type HealthScore struct {
	Date      string
	Overall   float64
	HRV       ScoreComponent
	Sleep     ScoreComponent
	Recovery  ScoreComponent
	Activity  ScoreComponent
	Reasoning string
}

// Components returns the four components in fixed display order.
func (h *HealthScore) Components() []ScoreComponent {
	return []ScoreComponent{h.HRV, h.Sleep, h.Recovery, h.Activity}
}
