// ABOUTME: Health score operations for SQLite storage.
// ABOUTME: One composite score row per day, upserted by date.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/vitals/internal/models"
)

// UpsertScore writes a day's composite health score, replacing any prior row.
func (d *DB) UpsertScore(s *models.HealthScore) error {
	_, err := d.db.Exec(`
		INSERT INTO scores (score_date, overall,
			hrv_score, hrv_weight, sleep_score, sleep_weight,
			recovery_score, recovery_weight, activity_score, activity_weight,
			reasoning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(score_date) DO UPDATE SET
			overall = excluded.overall,
			hrv_score = excluded.hrv_score, hrv_weight = excluded.hrv_weight,
			sleep_score = excluded.sleep_score, sleep_weight = excluded.sleep_weight,
			recovery_score = excluded.recovery_score, recovery_weight = excluded.recovery_weight,
			activity_score = excluded.activity_score, activity_weight = excluded.activity_weight,
			reasoning = excluded.reasoning`,
		s.Date, s.Overall,
		s.HRV.Score, s.HRV.Weight, s.Sleep.Score, s.Sleep.Weight,
		s.Recovery.Score, s.Recovery.Weight, s.Activity.Score, s.Activity.Weight,
		s.Reasoning)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// GetScore retrieves the score for a date, or nil without error when none
// exists.
func (d *DB) GetScore(date string) (*models.HealthScore, error) {
	row := d.db.QueryRow(scoreSelect+` WHERE score_date = ?`, date)
	s, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListScores retrieves recent scores, most recent first.
func (d *DB) ListScores(limit int) ([]*models.HealthScore, error) {
	query := scoreSelect + ` ORDER BY score_date DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.HealthScore
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

const scoreSelect = `
	SELECT score_date, overall,
		hrv_score, hrv_weight, sleep_score, sleep_weight,
		recovery_score, recovery_weight, activity_score, activity_weight,
		reasoning
	FROM scores`

func scanScore(row scannable) (*models.HealthScore, error) {
	var s models.HealthScore
	err := row.Scan(&s.Date, &s.Overall,
		&s.HRV.Score, &s.HRV.Weight, &s.Sleep.Score, &s.Sleep.Weight,
		&s.Recovery.Score, &s.Recovery.Weight, &s.Activity.Score, &s.Activity.Weight,
		&s.Reasoning)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan score: %w", err)
	}
	return &s, nil
}
