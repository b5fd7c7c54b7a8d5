// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for samples, baselines, alerts, records, profile, scores.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id TEXT NOT NULL,
		sample_date TEXT NOT NULL,
		source TEXT NOT NULL,
		metric_type TEXT NOT NULL,
		value REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (sample_date, source, metric_type)
	);

	CREATE TABLE IF NOT EXISTS baselines (
		metric_type TEXT PRIMARY KEY,
		mean REAL NOT NULL,
		std_deviation REAL NOT NULL,
		sample_count INTEGER NOT NULL,
		calculated_at DATETIME NOT NULL,
		next_recalc_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		metric_type TEXT NOT NULL,
		detected_value REAL NOT NULL,
		baseline_value REAL NOT NULL,
		deviation_amount REAL NOT NULL,
		severity TEXT NOT NULL,
		seen INTEGER NOT NULL DEFAULT 0,
		detected_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		metric_type TEXT NOT NULL,
		scope TEXT NOT NULL,
		id TEXT NOT NULL,
		record_value REAL NOT NULL,
		previous_record REAL,
		achieved_date TEXT NOT NULL,
		PRIMARY KEY (metric_type, scope)
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		age INTEGER NOT NULL,
		sex TEXT NOT NULL,
		has_heart_failure INTEGER NOT NULL DEFAULT 0,
		has_diabetes INTEGER NOT NULL DEFAULT 0,
		has_chronic_kidney_disease INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scores (
		score_date TEXT PRIMARY KEY,
		overall REAL NOT NULL,
		hrv_score REAL NOT NULL, hrv_weight REAL NOT NULL,
		sleep_score REAL NOT NULL, sleep_weight REAL NOT NULL,
		recovery_score REAL NOT NULL, recovery_weight REAL NOT NULL,
		activity_score REAL NOT NULL, activity_weight REAL NOT NULL,
		reasoning TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_samples_date ON samples(sample_date DESC);
	CREATE INDEX IF NOT EXISTS idx_samples_type_date ON samples(metric_type, sample_date DESC);
	CREATE INDEX IF NOT EXISTS idx_alerts_detected ON alerts(detected_at DESC);
	CREATE INDEX IF NOT EXISTS idx_alerts_seen ON alerts(seen, detected_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
