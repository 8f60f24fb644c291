// Package trace configures OpenTelemetry tracing for qreval runs.
//
// The eval engine emits eval/task/score spans through the global tracer
// provider; this package decides where they go. Spans are exported over
// OTLP/HTTP when QREVAL_OTLP_ENDPOINT is set, printed to stdout in debug
// mode, and dropped otherwise.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/cascadelabs/qreval-go/config"
)

// Teardown flushes pending spans and shuts the tracer provider down.
type Teardown func() error

// Quickstart installs a global tracer provider per the configuration and
// returns a teardown function. Call the teardown before the process exits.
func Quickstart(cfg *config.Config) (Teardown, error) {
	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, fmt.Errorf("create span exporter: %w", err)
	}

	var opts []sdktrace.TracerProviderOption
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	return func() error {
		otel.SetTracerProvider(original)
		return tp.Shutdown(context.Background())
	}, nil
}

func newExporter(cfg *config.Config) (sdktrace.SpanExporter, error) {
	if cfg.OTLPEndpoint != "" {
		return otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	}
	if cfg.Debug {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	return nil, nil
}
