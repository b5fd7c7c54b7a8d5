// ABOUTME: Baseline row operations for SQLite storage.
// ABOUTME: One row per metric type, overwritten wholesale on recalculation.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// UpsertBaseline writes a baseline, replacing any prior row for the metric.
func (d *DB) UpsertBaseline(b *models.UserBaseline) error {
	_, err := d.db.Exec(`
		INSERT INTO baselines (metric_type, mean, std_deviation, sample_count, calculated_at, next_recalc_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(metric_type) DO UPDATE SET
			mean = excluded.mean,
			std_deviation = excluded.std_deviation,
			sample_count = excluded.sample_count,
			calculated_at = excluded.calculated_at,
			next_recalc_at = excluded.next_recalc_at`,
		string(b.MetricType), b.Mean, b.StdDeviation, b.SampleCount,
		b.CalculatedAt.Format(time.RFC3339), b.NextRecalcAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert baseline: %w", err)
	}
	return nil
}

// GetBaseline retrieves the baseline for a metric type, or nil without error
// when none has been computed yet.
func (d *DB) GetBaseline(mt models.MetricType) (*models.UserBaseline, error) {
	row := d.db.QueryRow(`
		SELECT metric_type, mean, std_deviation, sample_count, calculated_at, next_recalc_at
		FROM baselines WHERE metric_type = ?`, string(mt))

	b, err := scanBaseline(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// ListBaselines retrieves all computed baselines.
func (d *DB) ListBaselines() ([]*models.UserBaseline, error) {
	rows, err := d.db.Query(`
		SELECT metric_type, mean, std_deviation, sample_count, calculated_at, next_recalc_at
		FROM baselines ORDER BY metric_type`)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	defer rows.Close()

	var baselines []*models.UserBaseline
	for rows.Next() {
		b, err := scanBaseline(rows)
		if err != nil {
			return nil, err
		}
		baselines = append(baselines, b)
	}
	return baselines, rows.Err()
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanBaseline(row scannable) (*models.UserBaseline, error) {
	var b models.UserBaseline
	var mtStr, calcStr, nextStr string
	if err := row.Scan(&mtStr, &b.Mean, &b.StdDeviation, &b.SampleCount, &calcStr, &nextStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan baseline: %w", err)
	}
	b.MetricType = models.MetricType(mtStr)

	var err error
	if b.CalculatedAt, err = time.Parse(time.RFC3339, calcStr); err != nil {
		return nil, fmt.Errorf("parse calculated_at: %w", err)
	}
	if b.NextRecalcAt, err = time.Parse(time.RFC3339, nextStr); err != nil {
		return nil, fmt.Errorf("parse next_recalc_at: %w", err)
	}
	return &b, nil
}
