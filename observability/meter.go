package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/esplora/version"
)

// Metric names.
const (
	MetricRequestTotal    = "esplora.request.total"
	MetricRequestDuration = "esplora.request.duration"
	MetricRequestErrors   = "esplora.request.errors"
	MetricRequestActive   = "esplora.request.active"
	MetricRetryTotal      = "esplora.retry.total"
)

// Meter returns a named meter from mp, or from the global provider when mp
// is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(version.Get()))
}

// Metrics holds the client's metric instruments.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	requestActive   metric.Int64UpDownCounter
	retryTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter(MetricRequestTotal,
		metric.WithDescription("Total number of Esplora calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRequestTotal, err)
	}

	requestDuration, err := meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Duration of Esplora calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRequestDuration, err)
	}

	requestErrors, err := meter.Int64Counter(MetricRequestErrors,
		metric.WithDescription("Failed Esplora calls by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRequestErrors, err)
	}

	requestActive, err := meter.Int64UpDownCounter(MetricRequestActive,
		metric.WithDescription("Number of Esplora calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricRequestActive, err)
	}

	retryTotal, err := meter.Int64Counter(MetricRetryTotal,
		metric.WithDescription("Broadcast attempts repeated after a transport failure"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRetryTotal, err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		requestActive:   requestActive,
		retryTotal:      retryTotal,
	}, nil
}

// RecordRequestStart increments the in-flight count.
func (m *Metrics) RecordRequestStart(ctx context.Context, op string) {
	m.requestActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, op)))
}

// RecordRequestEnd decrements the in-flight count and records the call.
func (m *Metrics) RecordRequestEnd(ctx context.Context, op, outcome string, duration time.Duration) {
	opAttr := attribute.String(AttrOperation, op)
	m.requestActive.Add(ctx, -1, metric.WithAttributes(opAttr))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(opAttr, attribute.String(AttrOutcome, outcome)))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(opAttr))
}

// RecordError records a failed call by error code.
func (m *Metrics) RecordError(ctx context.Context, op, code string) {
	m.requestErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, op),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordRetry records one repeated attempt.
func (m *Metrics) RecordRetry(ctx context.Context, op string) {
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, op)))
}
