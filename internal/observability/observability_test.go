package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerAddsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "req-42")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	log.InfoContext(ctx, "event created", "eventId", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "event created", record["msg"])
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, traceID.String(), record["trace_id"])
	assert.Equal(t, spanID.String(), record["span_id"])
	assert.EqualValues(t, 7, record["eventId"])
}

func TestLoggerWithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	log.DebugContext(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	log.WarnContext(context.Background(), "rate limited")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "request_id")
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "span_id")
}

func TestWithRequestIDIgnoresEmpty(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	assert.Equal(t, "", RequestIDFromContext(ctx))
}

func TestTracerResource(t *testing.T) {
	res, err := TracerResource(context.Background(), TracerConfig{
		ServiceVersion: "1.2.3",
		Environment:    "test",
	})
	require.NoError(t, err)

	set := res.Set()

	name, ok := set.Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "event-manager", name.AsString())

	version, ok := set.Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", version.AsString())

	env, ok := set.Value(semconv.DeploymentEnvironmentKey)
	require.True(t, ok)
	assert.Equal(t, "test", env.AsString())
}

func TestTracerResourceOmitsUnsetAttributes(t *testing.T) {
	res, err := TracerResource(context.Background(), TracerConfig{ServiceName: "tickets-api"})
	require.NoError(t, err)

	set := res.Set()

	name, _ := set.Value(semconv.ServiceNameKey)
	assert.Equal(t, "tickets-api", name.AsString())

	_, ok := set.Value(semconv.ServiceVersionKey)
	assert.False(t, ok)
	_, ok = set.Value(semconv.DeploymentEnvironmentKey)
	assert.False(t, ok)
}
