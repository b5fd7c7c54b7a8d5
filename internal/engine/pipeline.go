// ABOUTME: Pipeline orchestrating the derivation passes over a storage snapshot.
// ABOUTME: Explicit read-then-write at the boundary; all computation stays pure.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/vitals/internal/models"
)

// RiskWindowDays is the trailing window used for classification and risk
// averages. Longer than the baseline window because risk is a long-horizon
// signal and should not chase a bad week.
const RiskWindowDays = 30

// ErrNoSamples is the no-result signal when an analysis window holds no
// usable readings. Callers surface it as "not enough data", not a failure.
var ErrNoSamples = errors.New("no samples in analysis window")

// Store is the slice of the storage contract the pipeline needs. The
// concrete Repository implementations satisfy it.
type Store interface {
	UpsertSample(s *models.DailySample) error
	ListSamplesSince(since time.Time) ([]*models.DailySample, error)

	GetBaseline(mt models.MetricType) (*models.UserBaseline, error)
	UpsertBaseline(b *models.UserBaseline) error
	ListBaselines() ([]*models.UserBaseline, error)

	CreateAlert(a *models.AnomalyAlert) error

	GetRecord(mt models.MetricType, scope models.RecordScope) (*models.PersonalRecord, error)
	CompareAndSetRecord(r *models.PersonalRecord) (bool, error)

	GetProfile() (*models.IntakeProfile, error)
}

// Pipeline wires the pure derivation passes to a store.
type Pipeline struct {
	store      Store
	thresholds Thresholds
}

// NewPipeline creates a pipeline over a store with the given anomaly
// thresholds.
func NewPipeline(store Store, th Thresholds) *Pipeline {
	return &Pipeline{store: store, thresholds: th}
}

// SampleResult reports what a sample ingestion triggered.
type SampleResult struct {
	NewRecords []*models.PersonalRecord
	Alerts     []*models.AnomalyAlert

	// BaselineErr carries a non-fatal baseline recalculation failure.
	// Recalc failures are retried next cycle and never block the
	// record or anomaly passes.
	BaselineErr error
}

// ProcessSample persists one day's sample set and synchronously runs the
// record and anomaly passes against it. Anomaly detection is skipped per
// metric when no baseline exists yet; that is the defined ordering rule,
// not an error.
func (p *Pipeline) ProcessSample(s *models.DailySample, now time.Time) (*SampleResult, error) {
	if err := p.store.UpsertSample(s); err != nil {
		return nil, fmt.Errorf("store sample: %w", err)
	}

	result := &SampleResult{}

	// Refresh baselines first so today's detection can use them, but never
	// let a recalc failure block the passes below.
	if _, err := p.RecalcBaselinesIfDue(now); err != nil {
		result.BaselineErr = err
	}

	// Record pass. The compare-and-set upsert resolves races between
	// near-simultaneous uploads claiming the same record.
	for _, mt := range RecordMetrics {
		value, ok := s.Value(mt)
		if !ok {
			continue
		}
		current, err := p.store.GetRecord(mt, models.ScopeAllTime)
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", mt, err)
		}
		candidate := EvaluateRecord(current, mt, value, s.Date)
		if candidate == nil {
			continue
		}
		written, err := p.store.CompareAndSetRecord(candidate)
		if err != nil {
			return nil, fmt.Errorf("write record %s: %w", mt, err)
		}
		if written {
			result.NewRecords = append(result.NewRecords, candidate)
		}
	}

	// Anomaly pass.
	for mt, value := range s.Values {
		baseline, err := p.store.GetBaseline(mt)
		if err != nil {
			return nil, fmt.Errorf("read baseline %s: %w", mt, err)
		}
		alert := DetectAnomaly(mt, value, baseline, p.thresholds, now)
		if alert == nil {
			continue
		}
		if err := p.store.CreateAlert(alert); err != nil {
			return nil, fmt.Errorf("store alert %s: %w", mt, err)
		}
		result.Alerts = append(result.Alerts, alert)
	}

	return result, nil
}

// RecalcBaselines recomputes and upserts baselines from the trailing window,
// unconditionally. It returns the baselines written; none when the window is
// too thin.
func (p *Pipeline) RecalcBaselines(now time.Time) ([]*models.UserBaseline, error) {
	samples, err := p.store.ListSamplesSince(WindowStart(now))
	if err != nil {
		return nil, fmt.Errorf("list window samples: %w", err)
	}

	baselines := ComputeBaselines(samples, now)
	for _, b := range baselines {
		if err := p.store.UpsertBaseline(b); err != nil {
			return nil, fmt.Errorf("store baseline %s: %w", b.MetricType, err)
		}
	}
	return baselines, nil
}

// RecalcBaselinesIfDue recomputes baselines only when none exist yet or the
// oldest is past its recalc date.
func (p *Pipeline) RecalcBaselinesIfDue(now time.Time) ([]*models.UserBaseline, error) {
	existing, err := p.store.ListBaselines()
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	due := len(existing) == 0
	for _, b := range existing {
		if b.Due(now) {
			due = true
			break
		}
	}
	if !due {
		return nil, nil
	}
	return p.RecalcBaselines(now)
}

// WindowAverages computes the mean HRV and deep-sleep minutes over the
// trailing risk window. It returns ErrNoSamples when neither metric has a
// single reading.
func (p *Pipeline) WindowAverages(now time.Time) (avgHRV, avgDeepSleep float64, err error) {
	samples, err := p.store.ListSamplesSince(now.AddDate(0, 0, -RiskWindowDays))
	if err != nil {
		return 0, 0, fmt.Errorf("list window samples: %w", err)
	}

	var hrvSum, sleepSum float64
	var hrvN, sleepN int
	for _, s := range samples {
		if v, ok := s.Value(models.MetricHRV); ok {
			hrvSum += v
			hrvN++
		}
		if v, ok := s.Value(models.MetricDeepSleep); ok {
			sleepSum += v
			sleepN++
		}
	}
	if hrvN == 0 && sleepN == 0 {
		return 0, 0, ErrNoSamples
	}
	if hrvN > 0 {
		avgHRV = hrvSum / float64(hrvN)
	}
	if sleepN > 0 {
		avgDeepSleep = sleepSum / float64(sleepN)
	}
	return avgHRV, avgDeepSleep, nil
}

// Classification derives the physiological classification from the trailing
// window averages and the stored intake profile.
func (p *Pipeline) Classification(now time.Time) (*models.PhysiologicalClassification, error) {
	profile, err := p.store.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if profile == nil {
		return nil, ErrMissingIntake
	}

	avgHRV, avgDeepSleep, err := p.WindowAverages(now)
	if err != nil {
		return nil, err
	}
	return Classify(avgHRV, avgDeepSleep, profile)
}

// RiskTrajectories runs the five condition models over the current snapshot.
func (p *Pipeline) RiskTrajectories(now time.Time) ([]*models.RiskTrajectory, error) {
	profile, err := p.store.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if profile == nil {
		return nil, ErrMissingIntake
	}

	avgHRV, avgDeepSleep, err := p.WindowAverages(now)
	if err != nil {
		return nil, err
	}

	return ComputeTrajectories(RiskInput{
		Profile:      profile,
		AvgHRV:       avgHRV,
		AvgDeepSleep: avgDeepSleep,
	})
}
