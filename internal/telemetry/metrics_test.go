package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/MKhiriev/go-registry-keeper/models"
)

func TestNewSyncMetrics(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when provider is nil", func(t *testing.T) {
		t.Parallel()

		metrics, err := NewSyncMetrics(nil)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("creates metrics with SDK provider", func(t *testing.T) {
		t.Parallel()

		mp := sdkmetric.NewMeterProvider()
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err := NewSyncMetrics(mp)
		require.NoError(t, err)
		require.NotNil(t, metrics)
		assert.NotNil(t, metrics.sweepDuration)
		assert.NotNil(t, metrics.online)
	})
}

func TestSyncMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var metrics *SyncMetrics
	ctx := context.Background()

	// Should not panic
	metrics.RecordSweep(ctx, time.Second, models.SweepReport{Pushed: 1})
	metrics.RecordStaged(ctx, "create")
	metrics.RecordState(ctx, models.Offline)
}

func TestSyncMetrics_Collect(t *testing.T) {
	t.Parallel()

	mp, reader := NewClientMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordSweep(ctx, 20*time.Millisecond, models.SweepReport{Pushed: 2, Deleted: 1, Failed: 1})
	metrics.RecordSweep(ctx, 5*time.Millisecond, models.SweepReport{Failed: 2, Parked: 1, Unreachable: true})
	metrics.RecordStaged(ctx, "create")
	metrics.RecordStaged(ctx, "delete")
	metrics.RecordState(ctx, models.Online)

	summary, err := Collect(ctx, reader)
	require.NoError(t, err)

	assert.Equal(t, Summary{Sweeps: 2, Drained: 3, Failed: 3, Parked: 1, Staged: 2}, summary)
}

func TestSyncMetrics_ConnectivityGauge(t *testing.T) {
	t.Parallel()

	mp, reader := NewClientMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordState(ctx, models.Online)
	metrics.RecordState(ctx, models.Offline)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var found bool
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != ConnectivityMetric {
				continue
			}
			gauge, ok := m.Data.(metricdata.Gauge[int64])
			require.True(t, ok)
			require.Len(t, gauge.DataPoints, 1)
			assert.Equal(t, int64(0), gauge.DataPoints[0].Value)
			found = true
		}
	}
	assert.True(t, found, "expected to find the connectivity gauge")
}

func TestCollect_EmptyReader(t *testing.T) {
	t.Parallel()

	mp, reader := NewClientMeterProvider()
	defer func() { _ = mp.Shutdown(context.Background()) }()

	summary, err := Collect(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}
