// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies upsert-by-key semantics for samples, baselines, and profile.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func TestUpsertAndGetSample(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := models.NewDailySample("2026-03-15", "oura").
		WithValue(models.MetricHRV, 52).
		WithValue(models.MetricSteps, 8200)

	if err := db.UpsertSample(s); err != nil {
		t.Fatalf("UpsertSample failed: %v", err)
	}

	got, err := db.GetSample("2026-03-15", "oura")
	if err != nil {
		t.Fatalf("GetSample failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetSample returned nil for stored sample")
	}
	if v, ok := got.Value(models.MetricHRV); !ok || v != 52 {
		t.Errorf("hrv = %v (%v), want 52", v, ok)
	}
	if v, ok := got.Value(models.MetricSteps); !ok || v != 8200 {
		t.Errorf("steps = %v (%v), want 8200", v, ok)
	}
}

func TestUpsertSampleOverwritesNotAppends(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first := models.NewDailySample("2026-03-15", "oura").
		WithValue(models.MetricHRV, 52).
		WithValue(models.MetricSteps, 8200)
	if err := db.UpsertSample(first); err != nil {
		t.Fatalf("UpsertSample failed: %v", err)
	}

	// A later upload for the same (date, source) replaces the whole set:
	// the steps reading from the first upload must be gone.
	second := models.NewDailySample("2026-03-15", "oura").
		WithValue(models.MetricHRV, 55)
	if err := db.UpsertSample(second); err != nil {
		t.Fatalf("UpsertSample overwrite failed: %v", err)
	}

	got, err := db.GetSample("2026-03-15", "oura")
	if err != nil {
		t.Fatalf("GetSample failed: %v", err)
	}
	if v, _ := got.Value(models.MetricHRV); v != 55 {
		t.Errorf("hrv = %v, want overwritten value 55", v)
	}
	if _, ok := got.Value(models.MetricSteps); ok {
		t.Error("steps reading survived an overwrite upload")
	}
}

func TestSamplesKeyedBySource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	oura := models.NewDailySample("2026-03-15", "oura").WithValue(models.MetricHRV, 52)
	whoop := models.NewDailySample("2026-03-15", "whoop").WithValue(models.MetricHRV, 49)
	if err := db.UpsertSample(oura); err != nil {
		t.Fatalf("UpsertSample failed: %v", err)
	}
	if err := db.UpsertSample(whoop); err != nil {
		t.Fatalf("UpsertSample failed: %v", err)
	}

	samples, err := db.ListSamples(0)
	if err != nil {
		t.Fatalf("ListSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("got %d sample sets, want 2 (one per source)", len(samples))
	}
}

func TestListSamplesSince(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	dates := []string{"2026-03-01", "2026-03-08", "2026-03-15"}
	for _, date := range dates {
		s := models.NewDailySample(date, "oura").WithValue(models.MetricHRV, 50)
		if err := db.UpsertSample(s); err != nil {
			t.Fatalf("UpsertSample failed: %v", err)
		}
	}

	since := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	samples, err := db.ListSamplesSince(since)
	if err != nil {
		t.Fatalf("ListSamplesSince failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples since %s, want 2", len(samples), since.Format(models.DateFormat))
	}
	if samples[0].Date != "2026-03-08" || samples[1].Date != "2026-03-15" {
		t.Errorf("samples not ordered oldest first: %s, %s", samples[0].Date, samples[1].Date)
	}
}

func TestUpsertBaselineOverwritesWholesale(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	first := &models.UserBaseline{
		MetricType:   models.MetricHRV,
		Mean:         48,
		StdDeviation: 4,
		SampleCount:  10,
		CalculatedAt: now,
		NextRecalcAt: now.AddDate(0, 0, 30),
	}
	if err := db.UpsertBaseline(first); err != nil {
		t.Fatalf("UpsertBaseline failed: %v", err)
	}

	second := &models.UserBaseline{
		MetricType:   models.MetricHRV,
		Mean:         51,
		StdDeviation: 3,
		SampleCount:  14,
		CalculatedAt: now.AddDate(0, 1, 0),
		NextRecalcAt: now.AddDate(0, 2, 0),
	}
	if err := db.UpsertBaseline(second); err != nil {
		t.Fatalf("UpsertBaseline overwrite failed: %v", err)
	}

	got, err := db.GetBaseline(models.MetricHRV)
	if err != nil {
		t.Fatalf("GetBaseline failed: %v", err)
	}
	if got.Mean != 51 || got.SampleCount != 14 {
		t.Errorf("baseline = %+v, want overwritten values", got)
	}

	all, err := db.ListBaselines()
	if err != nil {
		t.Fatalf("ListBaselines failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d baseline rows, want 1 per metric type", len(all))
	}
}

func TestGetBaselineMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetBaseline(models.MetricSteps)
	if err != nil {
		t.Fatalf("GetBaseline failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil baseline when none computed, got %+v", got)
	}
}

func TestAlertsLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	a := models.NewAnomalyAlert(models.MetricHRV, 85, 50, 3.5, models.SeverityCritical, time.Now())
	if err := db.CreateAlert(a); err != nil {
		t.Fatalf("CreateAlert failed: %v", err)
	}

	unseen, err := db.ListAlerts(true, 0)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(unseen) != 1 {
		t.Fatalf("got %d unseen alerts, want 1", len(unseen))
	}
	if unseen[0].DeviationAmount != 3.5 {
		t.Errorf("DeviationAmount = %v, want 3.5", unseen[0].DeviationAmount)
	}

	// Mark seen via 8-char prefix, like the CLI does.
	if err := db.MarkAlertSeen(a.ID.String()[:8]); err != nil {
		t.Fatalf("MarkAlertSeen failed: %v", err)
	}

	unseen, err = db.ListAlerts(true, 0)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(unseen) != 0 {
		t.Errorf("got %d unseen alerts after marking, want 0", len(unseen))
	}

	all, err := db.ListAlerts(false, 0)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(all) != 1 || !all[0].Seen {
		t.Errorf("alert not retained with seen flag set: %+v", all)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil profile before onboarding")
	}

	p := &models.IntakeProfile{
		Age:         52,
		Sex:         models.SexFemale,
		HasDiabetes: true,
		UpdatedAt:   time.Now(),
	}
	if err := db.PutProfile(p); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}

	got, err = db.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.Age != 52 || got.Sex != models.SexFemale || !got.HasDiabetes || got.HasHeartFailure {
		t.Errorf("profile = %+v, want round-tripped values", got)
	}

	// Explicit update replaces the singleton.
	p.Age = 53
	if err := db.PutProfile(p); err != nil {
		t.Fatalf("PutProfile update failed: %v", err)
	}
	got, _ = db.GetProfile()
	if got.Age != 53 {
		t.Errorf("age = %d after update, want 53", got.Age)
	}
}

func TestPutProfileRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	bad := &models.IntakeProfile{Age: 0, Sex: models.SexMale, UpdatedAt: time.Now()}
	if err := db.PutProfile(bad); err == nil {
		t.Error("expected error for non-positive age")
	}
}

func TestScoreUpsertByDate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := &models.HealthScore{
		Date:      "2026-03-15",
		Overall:   72,
		HRV:       models.ScoreComponent{Score: 80, Weight: 0.3},
		Sleep:     models.ScoreComponent{Score: 60, Weight: 0.3},
		Recovery:  models.ScoreComponent{Score: 75, Weight: 0.2},
		Activity:  models.ScoreComponent{Score: 70, Weight: 0.2},
		Reasoning: "sleep weighted up",
	}
	if err := db.UpsertScore(s); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}

	s.Overall = 75
	if err := db.UpsertScore(s); err != nil {
		t.Fatalf("UpsertScore overwrite failed: %v", err)
	}

	got, err := db.GetScore("2026-03-15")
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if got.Overall != 75 {
		t.Errorf("Overall = %v, want upserted 75", got.Overall)
	}
	if got.Reasoning != "sleep weighted up" {
		t.Errorf("Reasoning = %q, not round-tripped", got.Reasoning)
	}

	scores, err := db.ListScores(0)
	if err != nil {
		t.Fatalf("ListScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("got %d score rows, want 1 per day", len(scores))
	}
}
