package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/esplora/version"
)

// InstrumentationName names the tracer and meter obtained from providers.
const InstrumentationName = version.ModulePath

// SpanPrefix prefixes every operation span name.
const SpanPrefix = "esplora."

// Common attribute keys.
const (
	AttrOperation  = "esplora.operation"
	AttrHTTPMethod = "http.method"
	AttrURLPath    = "url.path"
	AttrHTTPStatus = "http.status_code"
	AttrErrorCode  = "error.code"
	AttrAttempt    = "esplora.attempt"
	AttrRequestID  = "request.id"
	AttrOutcome    = "outcome"
)

// Tracer returns a named tracer from tp, or from the global provider when
// tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(version.Get()))
}

// SpanFromContext returns the span from context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttribute sets an attribute on the current span in context.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	}
}
