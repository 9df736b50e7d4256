// Package telemetry provides OpenTelemetry instrumentation for the client
// sync engine.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/MKhiriev/go-registry-keeper/models"
)

// SyncMetricsMeterName is the name used for the sync metrics meter.
const SyncMetricsMeterName = "github.com/MKhiriev/go-registry-keeper/sync"

// Instrument names.
const (
	SweepDurationMetric = "registry_sync_sweep_duration_seconds"
	DrainedMetric       = "registry_sync_drained_total"
	FailedMetric        = "registry_sync_failed_total"
	ParkedMetric        = "registry_sync_parked_total"
	StagedMetric        = "registry_sync_staged_total"
	ConnectivityMetric  = "registry_sync_online"
)

// SyncMetrics holds the OpenTelemetry instruments of the sync engine.
type SyncMetrics struct {
	sweepDuration metric.Float64Histogram
	drained       metric.Int64Counter
	failed        metric.Int64Counter
	parked        metric.Int64Counter
	staged        metric.Int64Counter
	online        metric.Int64Gauge
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter
// provider. If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	sweepDuration, err := meter.Float64Histogram(
		SweepDurationMetric,
		metric.WithDescription("Duration of reconciliation sweeps in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	drained, err := meter.Int64Counter(
		DrainedMetric,
		metric.WithDescription("Staged changes accepted by the registry"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	failed, err := meter.Int64Counter(
		FailedMetric,
		metric.WithDescription("Staged changes left pending after a sweep"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	parked, err := meter.Int64Counter(
		ParkedMetric,
		metric.WithDescription("Staged changes parked after repeated rejections"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	staged, err := meter.Int64Counter(
		StagedMetric,
		metric.WithDescription("Writes saved to the local replica"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	online, err := meter.Int64Gauge(
		ConnectivityMetric,
		metric.WithDescription("1 while the registry is reachable, 0 otherwise"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		sweepDuration: sweepDuration,
		drained:       drained,
		failed:        failed,
		parked:        parked,
		staged:        staged,
		online:        online,
	}, nil
}

// RecordSweep records the duration and outcome of one sweep.
func (m *SyncMetrics) RecordSweep(ctx context.Context, duration time.Duration, report models.SweepReport) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("unreachable", report.Unreachable))

	m.sweepDuration.Record(ctx, duration.Seconds(), attrs)
	if n := report.Drained(); n > 0 {
		m.drained.Add(ctx, int64(n))
	}
	if report.Failed > 0 {
		m.failed.Add(ctx, int64(report.Failed))
	}
	if report.Parked > 0 {
		m.parked.Add(ctx, int64(report.Parked))
	}
}

// RecordStaged counts a write that went to the local replica. op is one of
// "create", "update" or "delete".
func (m *SyncMetrics) RecordStaged(ctx context.Context, op string) {
	if m == nil {
		return
	}

	m.staged.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}

// RecordState records the connectivity state.
func (m *SyncMetrics) RecordState(ctx context.Context, state models.ConnectivityState) {
	if m == nil {
		return
	}

	var v int64
	if state == models.Online {
		v = 1
	}
	m.online.Record(ctx, v)
}
