// ABOUTME: Repository implementation over Charm KV with type-prefixed keys.
// ABOUTME: Mirrors the SQLite backend's upsert-by-key and CAS record semantics.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/storage"
)

// sampleKey builds the key for one (date, source) sample set. Dates sort
// lexically because they use the YYYY-MM-DD layout.
func sampleKey(date, source string) string {
	return SamplePrefix + date + ":" + source
}

// UpsertSample overwrites the whole reading set for (date, source).
func (c *Client) UpsertSample(s *models.DailySample) error {
	data, err := marshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	return c.set(sampleKey(s.Date, s.Source), data)
}

// GetSample retrieves a sample set, or nil when none is stored.
func (c *Client) GetSample(date, source string) (*models.DailySample, error) {
	data, err := c.get(sampleKey(date, source))
	if err != nil {
		return nil, fmt.Errorf("get sample: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalJSON[models.DailySample](data)
}

func (c *Client) allSamples() ([]*models.DailySample, error) {
	allData, err := c.listByPrefix(SamplePrefix)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	var samples []*models.DailySample
	for _, data := range allData {
		s, err := unmarshalJSON[models.DailySample](data)
		if err != nil {
			continue // Skip invalid entries
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ListSamplesSince returns samples on or after the given day, oldest first.
func (c *Client) ListSamplesSince(since time.Time) ([]*models.DailySample, error) {
	all, err := c.allSamples()
	if err != nil {
		return nil, err
	}

	cutoff := since.Format(models.DateFormat)
	var samples []*models.DailySample
	for _, s := range all {
		if s.Date >= cutoff {
			samples = append(samples, s)
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Date != samples[j].Date {
			return samples[i].Date < samples[j].Date
		}
		return samples[i].Source < samples[j].Source
	})
	return samples, nil
}

// ListSamples returns samples newest first, optionally limited.
func (c *Client) ListSamples(limit int) ([]*models.DailySample, error) {
	samples, err := c.allSamples()
	if err != nil {
		return nil, err
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Date != samples[j].Date {
			return samples[i].Date > samples[j].Date
		}
		return samples[i].Source < samples[j].Source
	})

	if limit > 0 && len(samples) > limit {
		samples = samples[:limit]
	}
	return samples, nil
}

// UpsertBaseline overwrites the baseline for its metric type.
func (c *Client) UpsertBaseline(b *models.UserBaseline) error {
	data, err := marshalJSON(b)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	return c.set(BaselinePrefix+string(b.MetricType), data)
}

// GetBaseline retrieves the baseline for a metric type, or nil when none
// has been computed yet.
func (c *Client) GetBaseline(mt models.MetricType) (*models.UserBaseline, error) {
	data, err := c.get(BaselinePrefix + string(mt))
	if err != nil {
		return nil, fmt.Errorf("get baseline: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalJSON[models.UserBaseline](data)
}

// ListBaselines returns all stored baselines in metric type order.
func (c *Client) ListBaselines() ([]*models.UserBaseline, error) {
	allData, err := c.listByPrefix(BaselinePrefix)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}

	var baselines []*models.UserBaseline
	for _, data := range allData {
		b, err := unmarshalJSON[models.UserBaseline](data)
		if err != nil {
			continue
		}
		baselines = append(baselines, b)
	}

	sort.Slice(baselines, func(i, j int) bool {
		return baselines[i].MetricType < baselines[j].MetricType
	})
	return baselines, nil
}

// CreateAlert stores a new anomaly alert.
func (c *Client) CreateAlert(a *models.AnomalyAlert) error {
	data, err := marshalJSON(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	return c.set(AlertPrefix+a.ID.String(), data)
}

// ListAlerts returns alerts newest first, optionally only unseen ones.
func (c *Client) ListAlerts(unseenOnly bool, limit int) ([]*models.AnomalyAlert, error) {
	allData, err := c.listByPrefix(AlertPrefix)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	var alerts []*models.AnomalyAlert
	for _, data := range allData {
		a, err := unmarshalJSON[models.AnomalyAlert](data)
		if err != nil {
			continue
		}
		if unseenOnly && a.Seen {
			continue
		}
		alerts = append(alerts, a)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DetectedAt.After(alerts[j].DetectedAt)
	})

	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

// MarkAlertSeen flags an alert as reviewed, matching by ID or ID prefix.
func (c *Client) MarkAlertSeen(idOrPrefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := c.resolveKeyLocked(AlertPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("mark alert seen: %w", err)
	}
	data, err := c.kv.Get(key)
	if err != nil {
		return fmt.Errorf("mark alert seen: %w", err)
	}

	a, err := unmarshalJSON[models.AnomalyAlert](data)
	if err != nil {
		return fmt.Errorf("unmarshal alert: %w", err)
	}
	a.Seen = true

	updated, err := marshalJSON(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	return c.setLocked(string(key), updated)
}

func recordKey(mt models.MetricType, scope models.RecordScope) string {
	return RecordPrefix + string(mt) + ":" + string(scope)
}

// GetRecord retrieves the current record for a metric and scope, or nil.
func (c *Client) GetRecord(mt models.MetricType, scope models.RecordScope) (*models.PersonalRecord, error) {
	data, err := c.get(recordKey(mt, scope))
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalJSON[models.PersonalRecord](data)
}

// ListRecords returns all current records in metric type order.
func (c *Client) ListRecords() ([]*models.PersonalRecord, error) {
	allData, err := c.listByPrefix(RecordPrefix)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	var records []*models.PersonalRecord
	for _, data := range allData {
		r, err := unmarshalJSON[models.PersonalRecord](data)
		if err != nil {
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].MetricType < records[j].MetricType
	})
	return records, nil
}

// CompareAndSetRecord writes the candidate record only if it still beats the
// stored one, re-reading under the write lock so racing uploads cannot clobber
// a better value. Returns whether the candidate won.
func (c *Client) CompareAndSetRecord(r *models.PersonalRecord) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := recordKey(r.MetricType, r.Scope)
	data, err := c.getLocked(key)
	if err != nil {
		return false, fmt.Errorf("read record: %w", err)
	}

	if data != nil {
		current, err := unmarshalJSON[models.PersonalRecord](data)
		if err != nil {
			return false, fmt.Errorf("unmarshal record: %w", err)
		}
		if !current.Beats(r.RecordValue) {
			return false, nil
		}
		// Previous value comes from the authoritative stored record, not
		// whatever the caller computed before the race.
		prev := current.RecordValue
		r.PreviousRecord = &prev
	}

	updated, err := marshalJSON(r)
	if err != nil {
		return false, fmt.Errorf("marshal record: %w", err)
	}
	if err := c.setLocked(key, updated); err != nil {
		return false, err
	}
	return true, nil
}

// GetProfile retrieves the intake profile, or nil before onboarding.
func (c *Client) GetProfile() (*models.IntakeProfile, error) {
	data, err := c.get(ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalJSON[models.IntakeProfile](data)
}

// PutProfile validates and stores the singleton intake profile.
func (c *Client) PutProfile(p *models.IntakeProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.set(ProfileKey, data)
}

// UpsertScore overwrites the health score for its date.
func (c *Client) UpsertScore(s *models.HealthScore) error {
	data, err := marshalJSON(s)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	return c.set(ScorePrefix+s.Date, data)
}

// GetScore retrieves the health score for a date, or nil.
func (c *Client) GetScore(date string) (*models.HealthScore, error) {
	data, err := c.get(ScorePrefix + date)
	if err != nil {
		return nil, fmt.Errorf("get score: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalJSON[models.HealthScore](data)
}

// ListScores returns scores newest first, optionally limited.
func (c *Client) ListScores(limit int) ([]*models.HealthScore, error) {
	allData, err := c.listByPrefix(ScorePrefix)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	var scores []*models.HealthScore
	for _, data := range allData {
		s, err := unmarshalJSON[models.HealthScore](data)
		if err != nil {
			continue
		}
		scores = append(scores, s)
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Date > scores[j].Date
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

// GetAllData collects everything stored for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	data := &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "vitals",
	}

	var err error
	if data.Profile, err = c.GetProfile(); err != nil {
		return nil, err
	}
	if data.Samples, err = c.ListSamplesSince(time.Time{}); err != nil {
		return nil, err
	}
	if data.Baselines, err = c.ListBaselines(); err != nil {
		return nil, err
	}
	if data.Alerts, err = c.ListAlerts(false, 0); err != nil {
		return nil, err
	}
	if data.Records, err = c.ListRecords(); err != nil {
		return nil, err
	}
	if data.Scores, err = c.ListScores(0); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportData writes an exported data set into the KV store.
func (c *Client) ImportData(data *storage.ExportData) error {
	if data.Profile != nil {
		if err := c.PutProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	for _, s := range data.Samples {
		if err := c.UpsertSample(s); err != nil {
			return fmt.Errorf("import sample %s/%s: %w", s.Date, s.Source, err)
		}
	}
	for _, b := range data.Baselines {
		if err := c.UpsertBaseline(b); err != nil {
			return fmt.Errorf("import baseline %s: %w", b.MetricType, err)
		}
	}
	for _, a := range data.Alerts {
		if err := c.CreateAlert(a); err != nil {
			return fmt.Errorf("import alert %s: %w", a.ID, err)
		}
	}
	for _, r := range data.Records {
		if err := c.set(recordKey(r.MetricType, r.Scope), mustJSON(r)); err != nil {
			return fmt.Errorf("import record %s: %w", r.MetricType, err)
		}
	}
	for _, s := range data.Scores {
		if err := c.UpsertScore(s); err != nil {
			return fmt.Errorf("import score %s: %w", s.Date, err)
		}
	}
	return nil
}

func mustJSON(v any) []byte {
	data, _ := marshalJSON(v)
	return data
}

// Repository conformance is checked at compile time.
var _ storage.Repository = (*Client)(nil)
