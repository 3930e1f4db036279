package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/esplora/errors"
)

// Outcome labels recorded on esplora.request.total.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Instruments bundles the tracer and metrics used by a client.
type Instruments struct {
	tracer  trace.Tracer
	metrics *Metrics
}

// NewInstruments creates instruments from the given providers. Nil
// providers fall back to the otel globals.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	metrics, err := NewMetrics(Meter(mp))
	if err != nil {
		return nil, err
	}
	return &Instruments{tracer: Tracer(tp), metrics: metrics}, nil
}

// Operation tracks one client call from start to end.
type Operation struct {
	Name      string
	StartTime time.Time

	ctx     context.Context
	span    trace.Span
	metrics *Metrics
}

// Begin starts the span for op and records the call start.
func (in *Instruments) Begin(ctx context.Context, op, method, path string) (context.Context, *Operation) {
	ctx, span := in.tracer.Start(ctx, SpanPrefix+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrOperation, op),
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrURLPath, path),
		),
	)
	in.metrics.RecordRequestStart(ctx, op)
	return ctx, &Operation{
		Name:      op,
		StartTime: time.Now(),
		ctx:       ctx,
		span:      span,
		metrics:   in.metrics,
	}
}

// SetStatus records the HTTP status of the final exchange.
func (o *Operation) SetStatus(status int) {
	o.span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
}

// Retry records that attempt is about to be made after a failure.
func (o *Operation) Retry(attempt int, err error) {
	o.span.AddEvent("retry", trace.WithAttributes(
		attribute.Int(AttrAttempt, attempt),
		attribute.String(AttrErrorCode, errorCode(err)),
	))
	o.metrics.RecordRetry(o.ctx, o.Name)
}

// End closes the span and records the call outcome.
func (o *Operation) End(err error) {
	duration := o.Duration()
	outcome := OutcomeOK

	if err != nil {
		outcome = OutcomeError
		code := errorCode(err)
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, code)
		o.span.SetAttributes(attribute.String(AttrErrorCode, code))
		o.metrics.RecordError(o.ctx, o.Name, code)
	}
	o.span.End()
	o.metrics.RecordRequestEnd(o.ctx, o.Name, outcome, duration)
}

// Duration returns the elapsed time since the call started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.StartTime)
}

func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return "UNKNOWN"
}
