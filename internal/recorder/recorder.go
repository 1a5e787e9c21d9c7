// Package recorder orchestrates observation submissions: classify, append to
// the table, persist, publish alerts.
package recorder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/park-conditions/internal/domain"
	"github.com/couchcryptid/park-conditions/internal/observability"
	"github.com/couchcryptid/park-conditions/internal/store"
)

// TableStore loads and persists the observation table.
type TableStore interface {
	Load() (store.Table, error)
	Persist(store.Table) error
}

// AlertPublisher emits alerts to downstream consumers. Publishing is
// advisory: failures are logged and counted, never fatal to a submission.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []domain.Alert) error
}

// Result is what a submission hands back to the UI collaborator: the stored
// row, the three display triples, any alerts, and the new table size.
type Result struct {
	Observation domain.Observation   `json:"observation"`
	Rainfall    domain.RainfallClass `json:"rainfall"`
	Air         domain.AirClass      `json:"air"`
	Water       domain.WaterClass    `json:"water"`
	Alerts      []domain.Alert       `json:"alerts,omitempty"`
	Rows        int                  `json:"rows"`
}

// Recorder owns the single long-lived observation table. Submissions are
// serialized under a mutex so the table always has exactly one writer, even
// though HTTP handlers run concurrently.
type Recorder struct {
	mu        sync.Mutex
	table     store.Table
	store     TableStore
	publisher AlertPublisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	loaded    atomic.Bool
}

// New creates a Recorder and loads the persisted table. A malformed store is
// returned as an error; the caller treats it as fatal at startup. Pass a nil
// publisher to disable alert publishing.
func New(st TableStore, pub AlertPublisher, logger *slog.Logger, metrics *observability.Metrics) (*Recorder, error) {
	table, err := st.Load()
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		table:     table,
		store:     st,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
	}
	r.loaded.Store(true)
	metrics.TableRows.Set(float64(len(table)))
	return r, nil
}

// CheckReadiness returns nil once the persisted table has been loaded.
func (r *Recorder) CheckReadiness(_ context.Context) error {
	if !r.loaded.Load() {
		return errors.New("observation table not loaded yet")
	}
	return nil
}

// Submit records one observation end-to-end: classify, append, persist,
// publish alerts. On a persist failure the appended row stays in the
// in-memory table (now ahead of durable storage) and the error is returned;
// the next successful persist rewrites the full table and catches storage up.
func (r *Recorder) Submit(ctx context.Context, in domain.Reading) (Result, error) {
	obs := domain.NewObservation(in)
	alerts := domain.DeriveAlerts(obs)

	res := Result{
		Observation: obs,
		Rainfall:    domain.ClassifyRainfall(in.RainfallMM),
		Air:         domain.ClassifyAirQuality(in.AQI),
		Water:       domain.ClassifyRainwater(in.PH),
		Alerts:      alerts,
	}

	r.mu.Lock()
	r.table = r.table.Append(obs)
	res.Rows = len(r.table)
	err := r.persistLocked()
	r.mu.Unlock()

	r.metrics.SubmissionsTotal.Inc()
	r.observeClassifications(res)

	if err != nil {
		r.logger.Error("persist failed, in-memory table is ahead of storage",
			"error", err, "rows", res.Rows)
		return res, err
	}

	r.logger.Info("observation recorded",
		"date", obs.Date.Format("2006-01-02"),
		"condition", obs.Condition,
		"landslide_risk", obs.LandslideRisk,
		"air_quality", obs.AirQuality,
		"ph_level", obs.PHLevel,
		"alerts", len(alerts),
		"rows", res.Rows,
	)

	r.publish(ctx, alerts)
	return res, nil
}

// Flush re-persists the current table. Callers use it to retry after a
// failed submission write.
func (r *Recorder) Flush(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistLocked()
}

// Observations returns a copy of the table in insertion order.
func (r *Recorder) Observations() []domain.Observation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Observation, len(r.table))
	copy(out, r.table)
	return out
}

// Latest returns the most recently appended observation, or false when the
// table is empty.
func (r *Recorder) Latest() (domain.Observation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.table) == 0 {
		return domain.Observation{}, false
	}
	return r.table[len(r.table)-1], true
}

func (r *Recorder) persistLocked() error {
	start := time.Now()
	if err := r.store.Persist(r.table); err != nil {
		r.metrics.PersistErrors.Inc()
		return err
	}
	r.metrics.PersistDuration.Observe(time.Since(start).Seconds())
	r.metrics.TableRows.Set(float64(len(r.table)))
	return nil
}

func (r *Recorder) publish(ctx context.Context, alerts []domain.Alert) {
	for _, a := range alerts {
		r.metrics.AlertsTriggered.WithLabelValues(a.Kind).Inc()
	}
	if r.publisher == nil || len(alerts) == 0 {
		return
	}
	if err := r.publisher.PublishAlerts(ctx, alerts); err != nil {
		r.metrics.AlertPublishErrors.Inc()
		r.logger.Warn("alert publish failed", "error", err, "alerts", len(alerts))
	}
}

func (r *Recorder) observeClassifications(res Result) {
	r.metrics.ClassificationsTotal.WithLabelValues("rainfall", string(res.Rainfall.LandslideRisk)).Inc()
	r.metrics.ClassificationsTotal.WithLabelValues("air", string(res.Air.VegetationAirRisk)).Inc()
	r.metrics.ClassificationsTotal.WithLabelValues("rainwater", string(res.Water.VegetationPHRisk)).Inc()
}
