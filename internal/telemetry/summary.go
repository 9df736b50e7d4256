package telemetry

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Summary is a point-in-time digest of the sync metrics, rendered by the
// terminal UI.
type Summary struct {
	Sweeps  uint64
	Drained int64
	Failed  int64
	Parked  int64
	Staged  int64
}

// NewClientMeterProvider returns an in-process meter provider whose data is
// read back through reader.
func NewClientMeterProvider() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

// Collect reads the sync scope from reader.
func Collect(ctx context.Context, reader sdkmetric.Reader) (Summary, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Summary{}, fmt.Errorf("error collecting sync metrics: %w", err)
	}

	var s Summary
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != SyncMetricsMeterName {
			continue
		}
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				if m.Name == SweepDurationMetric {
					for _, dp := range data.DataPoints {
						s.Sweeps += dp.Count
					}
				}
			case metricdata.Sum[int64]:
				total := sumInt64(data.DataPoints)
				switch m.Name {
				case DrainedMetric:
					s.Drained = total
				case FailedMetric:
					s.Failed = total
				case ParkedMetric:
					s.Parked = total
				case StagedMetric:
					s.Staged = total
				}
			}
		}
	}

	return s, nil
}

func sumInt64(points []metricdata.DataPoint[int64]) int64 {
	var total int64
	for _, dp := range points {
		total += dp.Value
	}
	return total
}
