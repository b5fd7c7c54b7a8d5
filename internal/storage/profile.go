// ABOUTME: Intake profile operations for SQLite storage.
// ABOUTME: Singleton row mutated only by explicit user update.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// GetProfile retrieves the intake profile, or nil without error when
// onboarding has not happened yet.
func (d *DB) GetProfile() (*models.IntakeProfile, error) {
	row := d.db.QueryRow(`
		SELECT age, sex, has_heart_failure, has_diabetes, has_chronic_kidney_disease, updated_at
		FROM profile WHERE id = 1`)

	var p models.IntakeProfile
	var sexStr, updatedStr string
	var hf, dm, ckd int
	err := row.Scan(&p.Age, &sexStr, &hf, &dm, &ckd, &updatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.Sex = models.Sex(sexStr)
	p.HasHeartFailure = hf != 0
	p.HasDiabetes = dm != 0
	p.HasChronicKidneyDisease = ckd != 0
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}

// PutProfile creates or replaces the intake profile.
func (d *DB) PutProfile(p *models.IntakeProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	boolToInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err := d.db.Exec(`
		INSERT INTO profile (id, age, sex, has_heart_failure, has_diabetes, has_chronic_kidney_disease, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			age = excluded.age,
			sex = excluded.sex,
			has_heart_failure = excluded.has_heart_failure,
			has_diabetes = excluded.has_diabetes,
			has_chronic_kidney_disease = excluded.has_chronic_kidney_disease,
			updated_at = excluded.updated_at`,
		p.Age, string(p.Sex),
		boolToInt(p.HasHeartFailure), boolToInt(p.HasDiabetes), boolToInt(p.HasChronicKidneyDisease),
		p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}
