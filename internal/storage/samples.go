// ABOUTME: Daily sample operations for SQLite storage.
// ABOUTME: Stores one row per (date, source, metric); upserts replace the set.
package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
)

// UpsertSample stores a day's sample set, replacing any prior set for the
// same (date, source) key. Later uploads overwrite, not append.
func (d *DB) UpsertSample(s *models.DailySample) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin upsert sample: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`DELETE FROM samples WHERE sample_date = ? AND source = ?`,
		s.Date, s.Source,
	); err != nil {
		return fmt.Errorf("clear prior sample set: %w", err)
	}

	for _, mt := range models.AllMetricTypes {
		value, ok := s.Values[mt]
		if !ok {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO samples (id, sample_date, source, metric_type, value, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID.String(), s.Date, s.Source, string(mt), value,
			s.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert sample value %s: %w", mt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sample upsert: %w", err)
	}
	return nil
}

// GetSample retrieves one day's sample set for a (date, source) key.
// Returns nil without error when no readings exist for the key.
func (d *DB) GetSample(date, source string) (*models.DailySample, error) {
	rows, err := d.db.Query(`
		SELECT id, metric_type, value, created_at
		FROM samples
		WHERE sample_date = ? AND source = ?`,
		date, source)
	if err != nil {
		return nil, fmt.Errorf("get sample: %w", err)
	}
	defer rows.Close()

	var sample *models.DailySample
	for rows.Next() {
		var idStr, mtStr, createdStr string
		var value float64
		if err := rows.Scan(&idStr, &mtStr, &value, &createdStr); err != nil {
			return nil, fmt.Errorf("scan sample row: %w", err)
		}
		if sample == nil {
			sample = &models.DailySample{
				Date:   date,
				Source: source,
				Values: make(map[models.MetricType]float64),
			}
			sample.ID, _ = uuid.Parse(idStr)
			sample.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		}
		sample.Values[models.MetricType(mtStr)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample rows: %w", err)
	}
	return sample, nil
}

// ListSamplesSince retrieves all sample sets with a date on or after since,
// oldest first.
func (d *DB) ListSamplesSince(since time.Time) ([]*models.DailySample, error) {
	return d.querySamples(`
		SELECT id, sample_date, source, metric_type, value, created_at
		FROM samples
		WHERE sample_date >= ?
		ORDER BY sample_date ASC`,
		since.Format(models.DateFormat))
}

// ListSamples retrieves recent sample sets, most recent first.
func (d *DB) ListSamples(limit int) ([]*models.DailySample, error) {
	samples, err := d.querySamples(`
		SELECT id, sample_date, source, metric_type, value, created_at
		FROM samples
		ORDER BY sample_date ASC`)
	if err != nil {
		return nil, err
	}

	// Reverse to most-recent-first for display.
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Date > samples[j].Date
	})
	if limit > 0 && len(samples) > limit {
		samples = samples[:limit]
	}
	return samples, nil
}

// querySamples runs a sample query and folds the per-metric rows back into
// daily sample sets.
func (d *DB) querySamples(query string, args ...interface{}) ([]*models.DailySample, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	byKey := make(map[string]*models.DailySample)
	var order []string
	for rows.Next() {
		var idStr, date, source, mtStr, createdStr string
		var value float64
		if err := rows.Scan(&idStr, &date, &source, &mtStr, &value, &createdStr); err != nil {
			return nil, fmt.Errorf("scan sample row: %w", err)
		}
		key := date + "|" + source
		s, ok := byKey[key]
		if !ok {
			s = &models.DailySample{
				Date:   date,
				Source: source,
				Values: make(map[models.MetricType]float64),
			}
			s.ID, _ = uuid.Parse(idStr)
			s.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
			byKey[key] = s
			order = append(order, key)
		}
		s.Values[models.MetricType(mtStr)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample rows: %w", err)
	}

	samples := make([]*models.DailySample, 0, len(order))
	for _, key := range order {
		samples = append(samples, byKey[key])
	}
	return samples, nil
}
