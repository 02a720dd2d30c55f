package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrResult    = "result"
	attrOutcome   = "outcome"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder.
type Metrics struct {
	// Render pipeline metrics
	renderPassesTotal   metric.Int64Counter
	renderPassDuration  metric.Float64Histogram
	staleRendersDropped metric.Int64Counter
	mountedBlocks       metric.Int64UpDownCounter

	// Remote task API metrics
	remoteOperationsTotal   metric.Int64Counter
	remoteOperationDuration metric.Float64Histogram

	// Token lifecycle metrics
	tokenRefreshTotal metric.Int64Counter

	// Status toggle metrics
	toggleRequestsTotal metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments registered
// on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.renderPassesTotal, err = meter.Int64Counter(
		"render_passes_total",
		metric.WithDescription("Total number of block render passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create render_passes_total counter: %w", err)
	}

	m.renderPassDuration, err = meter.Float64Histogram(
		"render_pass_duration_seconds",
		metric.WithDescription("Block render pass duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create render_pass_duration_seconds histogram: %w", err)
	}

	m.staleRendersDropped, err = meter.Int64Counter(
		"stale_renders_dropped_total",
		metric.WithDescription("Total number of render results dropped because a newer pass superseded them"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stale_renders_dropped_total counter: %w", err)
	}

	m.mountedBlocks, err = meter.Int64UpDownCounter(
		"mounted_blocks",
		metric.WithDescription("Number of currently mounted task blocks"),
		metric.WithUnit("{block}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mounted_blocks gauge: %w", err)
	}

	m.remoteOperationsTotal, err = meter.Int64Counter(
		"remote_operations_total",
		metric.WithDescription("Total number of remote task API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_operations_total counter: %w", err)
	}

	m.remoteOperationDuration, err = meter.Float64Histogram(
		"remote_operation_duration_seconds",
		metric.WithDescription("Remote task API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_operation_duration_seconds histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token_refresh_total counter: %w", err)
	}

	m.toggleRequestsTotal, err = meter.Int64Counter(
		"toggle_requests_total",
		metric.WithDescription("Total number of task status toggle requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create toggle_requests_total counter: %w", err)
	}

	return m, nil
}

// RecordRenderPass records a completed render pass with its status and
// duration.
func (m *Metrics) RecordRenderPass(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.renderPassesTotal == nil || m.renderPassDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(attrStatus, status)}
	m.renderPassesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.renderPassDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordStaleRenderDropped records a render result that was dropped
// because a newer pass for the same block had already been applied.
func (m *Metrics) RecordStaleRenderDropped(ctx context.Context) {
	if m == nil || m.staleRendersDropped == nil {
		return
	}
	m.staleRendersDropped.Add(ctx, 1)
}

// BlockMounted records a block mount.
func (m *Metrics) BlockMounted(ctx context.Context) {
	if m == nil || m.mountedBlocks == nil {
		return
	}
	m.mountedBlocks.Add(ctx, 1)
}

// BlockUnmounted records a block unmount.
func (m *Metrics) BlockUnmounted(ctx context.Context) {
	if m == nil || m.mountedBlocks == nil {
		return
	}
	m.mountedBlocks.Add(ctx, -1)
}

// RecordRemoteOperation records a remote task API operation with its
// operation name, status and duration.
func (m *Metrics) RecordRemoteOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.remoteOperationsTotal == nil || m.remoteOperationDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}
	m.remoteOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.remoteOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordTokenRefresh records a token refresh attempt outcome.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToggle records a task status toggle outcome ("confirmed" or
// "reverted").
func (m *Metrics) RecordToggle(ctx context.Context, outcome string) {
	if m == nil || m.toggleRequestsTotal == nil {
		return
	}
	m.toggleRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOutcome, outcome)))
}
