package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *metric.ManualReader) {
	t.Helper()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return metrics, reader
}

func collect(t *testing.T, reader *metric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var data metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &data))
	return data
}

func findMetric(data metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, scope := range data.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestRecordRenderPass(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordRenderPass(ctx, StatusSuccess, 120*time.Millisecond)
	metrics.RecordRenderPass(ctx, StatusError, 30*time.Millisecond)

	data := collect(t, reader)

	counter, ok := findMetric(data, "render_passes_total")
	require.True(t, ok, "render_passes_total not found")
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2)

	histogram, ok := findMetric(data, "render_pass_duration_seconds")
	require.True(t, ok, "render_pass_duration_seconds not found")
	hist, ok := histogram.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)
}

func TestRecordRemoteOperation(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordRemoteOperation(ctx, "list_tasks", StatusSuccess, 80*time.Millisecond)
	metrics.RecordRemoteOperation(ctx, "list_tasks", StatusSuccess, 90*time.Millisecond)

	data := collect(t, reader)

	counter, ok := findMetric(data, "remote_operations_total")
	require.True(t, ok)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func TestBlockGauge(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.BlockMounted(ctx)
	metrics.BlockMounted(ctx)
	metrics.BlockUnmounted(ctx)

	data := collect(t, reader)

	gauge, ok := findMetric(data, "mounted_blocks")
	require.True(t, ok)
	sum, ok := gauge.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestRecordTokenRefresh(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordTokenRefresh(ctx, RefreshResultSuccess)
	metrics.RecordTokenRefresh(ctx, RefreshResultFailure)

	data := collect(t, reader)

	counter, ok := findMetric(data, "token_refresh_total")
	require.True(t, ok)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 2)
}

func TestZeroValueMetricsAreNoops(t *testing.T) {
	ctx := context.Background()
	var metrics Metrics

	// Must not panic when instruments were never registered.
	metrics.RecordRenderPass(ctx, StatusSuccess, time.Second)
	metrics.RecordStaleRenderDropped(ctx)
	metrics.BlockMounted(ctx)
	metrics.BlockUnmounted(ctx)
	metrics.RecordRemoteOperation(ctx, "list_tasks", StatusSuccess, time.Second)
	metrics.RecordTokenRefresh(ctx, RefreshResultSuccess)
	metrics.RecordToggle(ctx, "confirmed")
}

func TestProvider_Disabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())
	// No-op recorder must be safe to use.
	provider.Metrics().RecordRenderPass(context.Background(), StatusSuccess, time.Second)
	assert.NoError(t, provider.Shutdown(context.Background()))
}
