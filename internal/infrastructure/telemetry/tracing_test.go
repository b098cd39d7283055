package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRecordingProvider() (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return provider, recorder
}

func TestStartServiceSpan(t *testing.T) {
	provider, recorder := newRecordingProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	tracer := provider.Tracer(TracerName)
	ctx, parent := tracer.Start(context.Background(), "parent")

	ctx, span := StartServiceSpan(ctx, "fulfillment", "apply_transition",
		WithAttribute("order_id", "ORD-1001"),
	)
	span.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	child := spans[0]
	assert.Equal(t, "fulfillment.apply_transition", child.Name())
	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())

	assert.NotEmpty(t, GetTraceID(ctx))
}

func TestRecordErrorSetsErrorStatus(t *testing.T) {
	provider, recorder := newRecordingProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer(TracerName).Start(context.Background(), "op")
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestRecordErrorIgnoresNil(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("boom"))

		_, span := noop.NewTracerProvider().Tracer("t").Start(context.Background(), "op")
		RecordError(span, nil)
	})
}
