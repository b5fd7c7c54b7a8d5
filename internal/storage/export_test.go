// ABOUTME: Tests for export and import of the full data set.
// ABOUTME: Round-trips data through JSON into a fresh database.
package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

func seedExportData(t *testing.T, db *DB) {
	t.Helper()

	s := models.NewDailySample("2026-03-15", "oura").
		WithValue(models.MetricHRV, 52).
		WithValue(models.MetricDeepSleep, 70)
	if err := db.UpsertSample(s); err != nil {
		t.Fatalf("UpsertSample failed: %v", err)
	}

	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	b := &models.UserBaseline{
		MetricType:   models.MetricHRV,
		Mean:         48,
		StdDeviation: 4,
		SampleCount:  12,
		CalculatedAt: now,
		NextRecalcAt: now.AddDate(0, 0, 30),
	}
	if err := db.UpsertBaseline(b); err != nil {
		t.Fatalf("UpsertBaseline failed: %v", err)
	}

	a := models.NewAnomalyAlert(models.MetricHRV, 85, 48, 3.2, models.SeverityCritical, now)
	if err := db.CreateAlert(a); err != nil {
		t.Fatalf("CreateAlert failed: %v", err)
	}

	r := models.NewPersonalRecord(models.MetricHRV, 60, "2026-03-10")
	if _, err := db.CompareAndSetRecord(r); err != nil {
		t.Fatalf("CompareAndSetRecord failed: %v", err)
	}

	p := &models.IntakeProfile{Age: 47, Sex: models.SexMale, UpdatedAt: now}
	if err := db.PutProfile(p); err != nil {
		t.Fatalf("PutProfile failed: %v", err)
	}
}

func TestGetAllData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExportData(t, db)

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if data.Tool != "vitals" {
		t.Errorf("Tool = %q, want vitals", data.Tool)
	}
	if len(data.Samples) != 1 || len(data.Baselines) != 1 || len(data.Alerts) != 1 || len(data.Records) != 1 {
		t.Errorf("export counts = %d/%d/%d/%d, want 1 each",
			len(data.Samples), len(data.Baselines), len(data.Alerts), len(data.Records))
	}
	if data.Profile == nil || data.Profile.Age != 47 {
		t.Errorf("profile missing from export: %+v", data.Profile)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	defer src.Close()
	seedExportData(t, src)

	out, err := src.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestDB(t)
	defer dst.Close()
	if err := dst.ImportJSON(out); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	sample, err := dst.GetSample("2026-03-15", "oura")
	if err != nil || sample == nil {
		t.Fatalf("sample missing after import: %v", err)
	}
	if v, _ := sample.Value(models.MetricHRV); v != 52 {
		t.Errorf("imported hrv = %v, want 52", v)
	}

	baseline, err := dst.GetBaseline(models.MetricHRV)
	if err != nil || baseline == nil {
		t.Fatalf("baseline missing after import: %v", err)
	}
	if baseline.Mean != 48 || baseline.SampleCount != 12 {
		t.Errorf("imported baseline = %+v", baseline)
	}

	record, err := dst.GetRecord(models.MetricHRV, models.ScopeAllTime)
	if err != nil || record == nil {
		t.Fatalf("record missing after import: %v", err)
	}
	if record.RecordValue != 60 {
		t.Errorf("imported record = %v, want 60", record.RecordValue)
	}

	profile, err := dst.GetProfile()
	if err != nil || profile == nil {
		t.Fatalf("profile missing after import: %v", err)
	}
	if profile.Age != 47 {
		t.Errorf("imported age = %d, want 47", profile.Age)
	}

	alerts, err := dst.ListAlerts(false, 0)
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Errorf("got %d alerts after import, want 1", len(alerts))
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExportData(t, db)

	out, err := db.ExportYAML()
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "tool: vitals") {
		t.Errorf("yaml export missing tool marker:\n%s", text)
	}
	if !strings.Contains(text, "hrv") {
		t.Error("yaml export missing metric data")
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	seedExportData(t, db)

	out, err := db.ExportMarkdown()
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	text := string(out)
	for _, want := range []string{"# Vitals Export", "Personal Records", "Baselines"} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown export missing %q section", want)
		}
	}
}
