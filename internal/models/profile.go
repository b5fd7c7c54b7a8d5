// ABOUTME: Intake profile model with age, sex, and comorbidity flags.
// ABOUTME: Supplied once at onboarding and read by all age-adjusted analysis.
package models

import (
	"fmt"
	"time"
)

// Sex is the biological sex recorded at intake.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// IsValidSex checks if a string is a valid sex value.
func IsValidSex(s string) bool {
	switch Sex(s) {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// IntakeProfile holds the onboarding answers that drive age-adjusted
// classification and risk projection. There is exactly one per user;
// it is mutated only by explicit update.
type IntakeProfile struct {
	Age                     int
	Sex                     Sex
	HasHeartFailure         bool
	HasDiabetes             bool
	HasChronicKidneyDisease bool
	UpdatedAt               time.Time
}

// Validate checks the profile fields for basic sanity.
func (p *IntakeProfile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.Age)
	}
	if !IsValidSex(string(p.Sex)) {
		return fmt.Errorf("invalid sex: %q", p.Sex)
	}
	return nil
}
