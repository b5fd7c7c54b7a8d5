// ABOUTME: Anomaly alert operations for SQLite storage.
// ABOUTME: Alerts are append-only; only the seen flag ever changes.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
)

// CreateAlert stores a new anomaly alert.
func (d *DB) CreateAlert(a *models.AnomalyAlert) error {
	seen := 0
	if a.Seen {
		seen = 1
	}
	_, err := d.db.Exec(`
		INSERT INTO alerts (id, metric_type, detected_value, baseline_value, deviation_amount, severity, seen, detected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), string(a.MetricType), a.DetectedValue, a.BaselineValue,
		a.DeviationAmount, string(a.Severity), seen,
		a.DetectedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// ListAlerts retrieves alerts, most recent first, optionally only unseen.
func (d *DB) ListAlerts(unseenOnly bool, limit int) ([]*models.AnomalyAlert, error) {
	query := `
		SELECT id, metric_type, detected_value, baseline_value, deviation_amount, severity, seen, detected_at
		FROM alerts`
	if unseenOnly {
		query += " WHERE seen = 0"
	}
	query += " ORDER BY detected_at DESC"

	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.AnomalyAlert
	for rows.Next() {
		var a models.AnomalyAlert
		var idStr, mtStr, sevStr, detStr string
		var seen int
		if err := rows.Scan(&idStr, &mtStr, &a.DetectedValue, &a.BaselineValue,
			&a.DeviationAmount, &sevStr, &seen, &detStr); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		if a.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse alert id: %w", err)
		}
		a.MetricType = models.MetricType(mtStr)
		a.Severity = models.AlertSeverity(sevStr)
		a.Seen = seen != 0
		if a.DetectedAt, err = time.Parse(time.RFC3339, detStr); err != nil {
			return nil, fmt.Errorf("parse detected_at: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}

// MarkAlertSeen sets the seen flag on an alert by ID or ID prefix.
func (d *DB) MarkAlertSeen(idOrPrefix string) error {
	id, err := d.resolveAlertID(idOrPrefix)
	if err != nil {
		return err
	}
	if _, err := d.db.Exec(`UPDATE alerts SET seen = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark alert seen: %w", err)
	}
	return nil
}

// resolveAlertID expands an ID prefix to a full alert ID.
func (d *DB) resolveAlertID(idOrPrefix string) (string, error) {
	if len(idOrPrefix) >= 36 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM alerts WHERE id LIKE ?`, idOrPrefix+"%")
	if err != nil {
		return "", fmt.Errorf("resolve alert id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan alert id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no alert found with ID prefix: %s", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous ID prefix %s matches %d alerts", idOrPrefix, len(matches))
	}
}
