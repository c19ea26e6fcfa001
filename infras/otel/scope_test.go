package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"kost/infras/otel"
)

type status string

func (s status) String() string { return "status:" + string(s) }

func record(t *testing.T, fn func(scope otel.Scope)) tracetest.SpanStub {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)

	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func attrs(stub tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range stub.Attributes {
		out[kv.Key] = kv.Value
	}

	return out
}

func TestScope_SetAttributes(t *testing.T) {
	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	stub := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking_id", "booking-1")
		scope.SetAttributes(map[string]any{
			"updated":  2,
			"room_ids": []string{"room-1", "room-2"},
			"at":       at,
			"took":     1500 * time.Millisecond,
			"outcome":  status("settled"),
			"degraded": true,
		})
	})

	got := attrs(stub)

	assert.Equal(t, "booking-1", got["booking_id"].AsString())
	assert.Equal(t, int64(2), got["updated"].AsInt64())
	assert.Equal(t, []string{"room-1", "room-2"}, got["room_ids"].AsStringSlice())
	assert.Equal(t, "2026-03-10T09:00:00Z", got["at"].AsString())
	assert.Equal(t, int64(1500), got["took.ms"].AsInt64())
	assert.Equal(t, "status:settled", got["outcome"].AsString())
	assert.True(t, got["degraded"].AsBool())
}

func TestScope_TraceIfError(t *testing.T) {
	t.Run("nil leaves the span ok", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, stub.Status.Code)
		assert.Empty(t, stub.Events)
	})

	t.Run("error marks the span", func(t *testing.T) {
		stub := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("room already taken"))
		})

		assert.Equal(t, codes.Error, stub.Status.Code)
		assert.Equal(t, "room already taken", stub.Status.Description)
		require.Len(t, stub.Events, 1)
		assert.Equal(t, "exception", stub.Events[0].Name)
	})
}
