package recorder_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/park-conditions/internal/domain"
	"github.com/couchcryptid/park-conditions/internal/observability"
	"github.com/couchcryptid/park-conditions/internal/recorder"
	"github.com/couchcryptid/park-conditions/internal/store"
)

// --- mocks ---

type mockStore struct {
	loaded     store.Table
	loadErr    error
	persistErr error
	persisted  []store.Table
}

func (m *mockStore) Load() (store.Table, error) {
	return m.loaded, m.loadErr
}

func (m *mockStore) Persist(t store.Table) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persisted = append(m.persisted, t)
	return nil
}

type mockPublisher struct {
	published [][]domain.Alert
	err       error
}

func (m *mockPublisher) PublishAlerts(_ context.Context, alerts []domain.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, alerts)
	return nil
}

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func newRecorder(t *testing.T, st *mockStore, pub recorder.AlertPublisher) *recorder.Recorder {
	t.Helper()
	r, err := recorder.New(st, pub, testLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	return r
}

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	))
	t.Cleanup(func() { domain.SetClock(nil) })
}

// --- tests ---

func TestNew_LoadErrorIsFatal(t *testing.T) {
	st := &mockStore{loadErr: errors.New("malformed header")}

	_, err := recorder.New(st, nil, testLogger(), observability.NewMetricsForTesting())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed header")
}

func TestCheckReadiness(t *testing.T) {
	r := newRecorder(t, &mockStore{}, nil)
	assert.NoError(t, r.CheckReadiness(context.Background()))
}

func TestSubmit_EndToEnd(t *testing.T) {
	freezeClock(t)
	st := &mockStore{}
	pub := &mockPublisher{}
	r := newRecorder(t, st, pub)

	res, err := r.Submit(context.Background(), domain.Reading{
		RainfallMM: 60, PM25: 10, PM10: 20, AQI: 120, PH: 5.0,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ConditionWet, res.Observation.Condition)
	assert.Equal(t, domain.RiskHigh, res.Observation.LandslideRisk)
	assert.Equal(t, domain.AirUnhealthySensitive, res.Observation.AirQuality)
	assert.Equal(t, domain.RiskModerate, res.Observation.VegetationAirRisk)
	assert.Equal(t, domain.PHAcidic, res.Observation.PHLevel)
	assert.Equal(t, domain.RiskHigh, res.Observation.VegetationPHRisk)

	// Display triples carry the colors the table omits.
	assert.Equal(t, domain.ColorRed, res.Rainfall.LandslideColor)
	assert.Equal(t, domain.ColorOrange, res.Air.AirColor)
	assert.Equal(t, domain.ColorRed, res.Water.PHColor)

	// One landslide alert and one vegetation alert.
	require.Len(t, res.Alerts, 2)
	assert.Equal(t, domain.AlertLandslide, res.Alerts[0].Kind)
	assert.Equal(t, domain.AlertVegetation, res.Alerts[1].Kind)

	assert.Equal(t, 1, res.Rows)

	// The full table was persisted and the alerts published.
	require.Len(t, st.persisted, 1)
	assert.Len(t, st.persisted[0], 1)
	require.Len(t, pub.published, 1)
	assert.Len(t, pub.published[0], 2)
}

func TestSubmit_TableGrowsInOrder(t *testing.T) {
	freezeClock(t)
	st := &mockStore{}
	r := newRecorder(t, st, nil)
	ctx := context.Background()

	_, err := r.Submit(ctx, domain.Reading{RainfallMM: 3, AQI: 40, PH: 6.8})
	require.NoError(t, err)
	_, err = r.Submit(ctx, domain.Reading{RainfallMM: 25, AQI: 90, PH: 7.5})
	require.NoError(t, err)

	obs := r.Observations()
	require.Len(t, obs, 2)
	assert.Equal(t, 3.0, obs[0].RainfallMM)
	assert.Equal(t, 25.0, obs[1].RainfallMM)

	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, 25.0, latest.RainfallMM)
}

func TestSubmit_SameDayDuplicatesAreKept(t *testing.T) {
	freezeClock(t)
	r := newRecorder(t, &mockStore{}, nil)
	ctx := context.Background()

	in := domain.Reading{RainfallMM: 10, AQI: 60, PH: 6.5}
	_, err := r.Submit(ctx, in)
	require.NoError(t, err)
	res, err := r.Submit(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
}

func TestSubmit_PersistFailureKeepsRowInMemory(t *testing.T) {
	freezeClock(t)
	st := &mockStore{persistErr: errors.New("disk full")}
	pub := &mockPublisher{}
	r := newRecorder(t, st, pub)
	ctx := context.Background()

	res, err := r.Submit(ctx, domain.Reading{RainfallMM: 60, AQI: 120, PH: 5.0})
	require.Error(t, err)

	// The submission is not durable, but the in-memory table is ahead of
	// storage and a retry can catch it up.
	assert.Equal(t, 1, res.Rows)
	assert.Len(t, r.Observations(), 1)
	assert.Empty(t, pub.published, "alerts must not be published for a non-durable submission")

	st.persistErr = nil
	require.NoError(t, r.Flush(ctx))
	require.Len(t, st.persisted, 1)
	assert.Len(t, st.persisted[0], 1)
}

func TestSubmit_PublishFailureDoesNotFailSubmission(t *testing.T) {
	freezeClock(t)
	st := &mockStore{}
	pub := &mockPublisher{err: errors.New("broker unreachable")}
	r := newRecorder(t, st, pub)

	res, err := r.Submit(context.Background(), domain.Reading{RainfallMM: 60, AQI: 120, PH: 5.0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	require.Len(t, st.persisted, 1)
}

func TestLatest_EmptyTable(t *testing.T) {
	r := newRecorder(t, &mockStore{}, nil)

	_, ok := r.Latest()
	assert.False(t, ok)
}

func TestNew_LoadsExistingHistory(t *testing.T) {
	existing := store.Table{}.Append(domain.Observation{
		Date:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		RainfallMM: 12,
		Condition:  domain.ConditionNormal,
	})
	r := newRecorder(t, &mockStore{loaded: existing}, nil)

	obs := r.Observations()
	require.Len(t, obs, 1)
	assert.Equal(t, 12.0, obs[0].RainfallMM)
}
