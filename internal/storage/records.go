// ABOUTME: Personal record operations for SQLite storage.
// ABOUTME: Compare-and-set upsert keyed by (metric_type, scope) to survive races.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/vitals/internal/models"
)

// GetRecord retrieves the current record for a metric and scope, or nil
// without error when none exists.
func (d *DB) GetRecord(mt models.MetricType, scope models.RecordScope) (*models.PersonalRecord, error) {
	row := d.db.QueryRow(`
		SELECT id, metric_type, scope, record_value, previous_record, achieved_date
		FROM records WHERE metric_type = ? AND scope = ?`,
		string(mt), string(scope))

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// ListRecords retrieves all current records.
func (d *DB) ListRecords() ([]*models.PersonalRecord, error) {
	rows, err := d.db.Query(`
		SELECT id, metric_type, scope, record_value, previous_record, achieved_date
		FROM records ORDER BY metric_type, scope`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*models.PersonalRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CompareAndSetRecord writes the candidate record only if it still beats the
// current row, re-read inside an immediate transaction. Two near-simultaneous
// uploads racing on the same record cannot both win: the loser's candidate no
// longer beats the winner's value and is dropped. Returns whether the write
// happened.
func (d *DB) CompareAndSetRecord(r *models.PersonalRecord) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin record upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(`
		SELECT id, metric_type, scope, record_value, previous_record, achieved_date
		FROM records WHERE metric_type = ? AND scope = ?`,
		string(r.MetricType), string(r.Scope))

	current, err := scanRecord(row)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	if current != nil {
		if !current.Beats(r.RecordValue) {
			return false, nil
		}
		// The stored row is authoritative for the previous value; the
		// candidate may have been built from a stale snapshot.
		prev := current.RecordValue
		r.PreviousRecord = &prev
	}

	var prevValue interface{}
	if r.PreviousRecord != nil {
		prevValue = *r.PreviousRecord
	}
	if _, err := tx.Exec(`
		INSERT INTO records (metric_type, scope, id, record_value, previous_record, achieved_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(metric_type, scope) DO UPDATE SET
			id = excluded.id,
			record_value = excluded.record_value,
			previous_record = excluded.previous_record,
			achieved_date = excluded.achieved_date`,
		string(r.MetricType), string(r.Scope), r.ID.String(),
		r.RecordValue, prevValue, r.AchievedDate,
	); err != nil {
		return false, fmt.Errorf("write record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit record upsert: %w", err)
	}
	return true, nil
}

func scanRecord(row scannable) (*models.PersonalRecord, error) {
	var r models.PersonalRecord
	var idStr, mtStr, scopeStr string
	var prev sql.NullFloat64
	if err := row.Scan(&idStr, &mtStr, &scopeStr, &r.RecordValue, &prev, &r.AchievedDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	var err error
	if r.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse record id: %w", err)
	}
	r.MetricType = models.MetricType(mtStr)
	r.Scope = models.RecordScope(scopeStr)
	if prev.Valid {
		r.PreviousRecord = &prev.Float64
	}
	return &r, nil
}
