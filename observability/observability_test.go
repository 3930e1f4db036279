package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/esplora/errors"
)

type testProviders struct {
	spans  *tracetest.InMemoryExporter
	reader *sdkmetric.ManualReader
	in     *Instruments
}

func newTestProviders(t *testing.T) *testProviders {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	in, err := NewInstruments(tp, mp)
	if err != nil {
		t.Fatalf("NewInstruments: %v", err)
	}
	return &testProviders{spans: exporter, reader: reader, in: in}
}

func (p *testProviders) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is %T, not an int64 sum", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRequestStart(ctx, "tx_info")
	metrics.RecordRequestEnd(ctx, "tx_info", OutcomeOK, 100*time.Millisecond)
	metrics.RecordError(ctx, "tx_info", "TIMEOUT")
	metrics.RecordRetry(ctx, "broadcast")
}

func TestNewInstrumentsGlobalFallback(t *testing.T) {
	in, err := NewInstruments(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, op := in.Begin(context.Background(), "tip_height", "GET", "/blocks/tip/height")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	op.End(nil)
}

func TestOperationSuccess(t *testing.T) {
	p := newTestProviders(t)

	ctx, op := p.in.Begin(context.Background(), "tx_status", "GET", "/tx/abc/status")
	if !SpanFromContext(ctx).IsRecording() {
		t.Fatal("expected a recording span in the returned context")
	}
	op.SetStatus(200)
	op.End(nil)

	spans := p.spans.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "esplora.tx_status" {
		t.Errorf("span name = %q", span.Name)
	}
	if v, ok := attrValue(span.Attributes, AttrURLPath); !ok || v.AsString() != "/tx/abc/status" {
		t.Errorf("url.path = %v", v)
	}
	if v, ok := attrValue(span.Attributes, AttrHTTPStatus); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %v", v)
	}
	if span.Status.Code == codes.Error {
		t.Error("successful call should not have error status")
	}

	if got := p.counter(t, MetricRequestTotal); got != 1 {
		t.Errorf("%s = %d, want 1", MetricRequestTotal, got)
	}
	if got := p.counter(t, MetricRequestActive); got != 0 {
		t.Errorf("%s = %d, want 0", MetricRequestActive, got)
	}
}

func TestOperationError(t *testing.T) {
	p := newTestProviders(t)

	_, op := p.in.Begin(context.Background(), "broadcast", "POST", "/tx")
	op.Retry(1, errors.ConnectionFailed(fmt.Errorf("refused")))
	op.End(errors.ServerRejected(400, "bad-txns-inputs-missingorspent"))

	span := p.spans.GetSpans()[0]
	if span.Status.Code != codes.Error || span.Status.Description != "SERVER_REJECTED" {
		t.Errorf("status = %+v", span.Status)
	}
	if v, _ := attrValue(span.Attributes, AttrErrorCode); v.AsString() != "SERVER_REJECTED" {
		t.Errorf("error.code = %v", v)
	}
	if len(span.Events) < 2 {
		t.Fatalf("expected retry and exception events, got %d", len(span.Events))
	}
	if span.Events[0].Name != "retry" {
		t.Errorf("first event = %q", span.Events[0].Name)
	}

	if got := p.counter(t, MetricRequestErrors); got != 1 {
		t.Errorf("%s = %d, want 1", MetricRequestErrors, got)
	}
	if got := p.counter(t, MetricRetryTotal); got != 1 {
		t.Errorf("%s = %d, want 1", MetricRetryTotal, got)
	}
}

func TestOperationUnclassifiedError(t *testing.T) {
	p := newTestProviders(t)
	_, op := p.in.Begin(context.Background(), "mempool", "GET", "/mempool")
	op.End(fmt.Errorf("plain"))

	span := p.spans.GetSpans()[0]
	if v, _ := attrValue(span.Attributes, AttrErrorCode); v.AsString() != "UNKNOWN" {
		t.Errorf("error.code = %v", v)
	}
}

func TestOperationDuration(t *testing.T) {
	op := &Operation{StartTime: time.Now().Add(-50 * time.Millisecond)}
	if op.Duration() < 50*time.Millisecond {
		t.Errorf("duration = %v", op.Duration())
	}
}

func TestSetSpanAttribute(t *testing.T) {
	p := newTestProviders(t)
	ctx, op := p.in.Begin(context.Background(), "blocks", "GET", "/blocks")

	SetSpanAttribute(ctx, AttrRequestID, "req-1")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	op.End(nil)

	attrs := p.spans.GetSpans()[0].Attributes
	if v, _ := attrValue(attrs, AttrRequestID); v.AsString() != "req-1" {
		t.Errorf("request.id = %v", v)
	}
	if _, ok := attrValue(attrs, "unsupported-key"); ok {
		t.Error("unsupported types should be ignored")
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "key", "value")
}
