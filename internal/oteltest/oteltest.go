// Package oteltest provides testing utilities for OpenTelemetry tracing.
// It sets up a synchronous in-memory exporter and a few assertion helpers
// for verifying the spans the eval engine emits.
package oteltest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	attr "go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// Setup installs a fully synchronous in-memory tracer provider as the global
// provider for the duration of the test and returns an Exporter to inspect
// the captured spans.
func Setup(t *testing.T) *Exporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	processor := sdktrace.NewSimpleSpanProcessor(exporter)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
	)
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Errorf("Error shutting down tracer provider: %v", err)
		}
		otel.SetTracerProvider(original)
	})

	return &Exporter{exporter: exporter, t: t}
}

// Exporter wraps the OTel InMemoryExporter with test helpers.
type Exporter struct {
	exporter *tracetest.InMemoryExporter
	t        *testing.T
}

// Flush returns the spans buffered in memory and resets the buffer.
func (e *Exporter) Flush() []Span {
	stubs := e.exporter.GetSpans()
	e.exporter.Reset()

	spans := make([]Span, len(stubs))
	for i, span := range stubs {
		spans[i] = Span{t: e.t, Stub: span}
	}
	return spans
}

// Span wraps an OTel SpanStub with assertion helpers.
type Span struct {
	t    *testing.T
	Stub tracetest.SpanStub
}

// Name returns the span's name.
func (s *Span) Name() string {
	return s.Stub.Name
}

// Attr returns the attribute matching the key and fails if it is missing.
func (s *Span) Attr(key string) attr.Value {
	s.t.Helper()
	for _, kv := range s.Stub.Attributes {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	require.Failf(s.t, "missing attribute", "span %q has no attribute %q", s.Stub.Name, key)
	return attr.Value{}
}

// HasAttr reports whether the span carries an attribute with the given key.
func (s *Span) HasAttr(key string) bool {
	for _, kv := range s.Stub.Attributes {
		if string(kv.Key) == key {
			return true
		}
	}
	return false
}

// AssertJSONAttrEquals asserts that a JSON-encoded string attribute equals
// the expected value after unmarshaling.
func (s *Span) AssertJSONAttrEquals(key string, expected any) {
	s.t.Helper()
	v := s.Attr(key)
	require.Equal(s.t, attr.STRING, v.Type())

	var actual any
	err := json.Unmarshal([]byte(v.AsString()), &actual)
	require.NoError(s.t, err, "failed to unmarshal JSON attribute %s", key)
	assert.Equal(s.t, expected, actual, "attribute %s value mismatch", key)
}
