// ABOUTME: Repository interface for derived health signal storage.
// ABOUTME: Defines upsert-by-key contracts for samples, baselines, alerts, records.
package storage

import (
	"github.com/harperreed/vitals/internal/models"
	"time"
)

// Repository defines the storage interface for the derivation engine.
// All rows are keyed uniquely per (metric_type[, scope]) or (date, source),
// and writes are idempotent upserts on that composite key. This interface
// allows swapping implementations (SQLite, Charm KV, fakes for testing).
type Repository interface {
	// Sample operations. Upsert overwrites the whole set for (date, source).
	UpsertSample(s *models.DailySample) error
	GetSample(date, source string) (*models.DailySample, error)
	ListSamplesSince(since time.Time) ([]*models.DailySample, error)
	ListSamples(limit int) ([]*models.DailySample, error)

	// Baseline operations. One row per metric type, overwritten wholesale.
	UpsertBaseline(b *models.UserBaseline) error
	GetBaseline(mt models.MetricType) (*models.UserBaseline, error)
	ListBaselines() ([]*models.UserBaseline, error)

	// Alert operations. Alerts are append-only except for the seen flag.
	CreateAlert(a *models.AnomalyAlert) error
	ListAlerts(unseenOnly bool, limit int) ([]*models.AnomalyAlert, error)
	MarkAlertSeen(idOrPrefix string) error

	// Record operations. CompareAndSetRecord re-reads the current row in a
	// transaction and writes only if the candidate still beats it, so two
	// racing uploads cannot lose the true best value.
	GetRecord(mt models.MetricType, scope models.RecordScope) (*models.PersonalRecord, error)
	ListRecords() ([]*models.PersonalRecord, error)
	CompareAndSetRecord(r *models.PersonalRecord) (bool, error)

	// Intake profile. Singleton row; nil without error when not yet set.
	GetProfile() (*models.IntakeProfile, error)
	PutProfile(p *models.IntakeProfile) error

	// Health scores. One per day.
	UpsertScore(s *models.HealthScore) error
	GetScore(date string) (*models.HealthScore, error)
	ListScores(limit int) ([]*models.HealthScore, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
