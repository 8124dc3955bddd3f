package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// TracerName identifies this service's tracer.
const TracerName = "shoppulse"

// TracingShutdown flushes and stops the tracer provider.
type TracingShutdown func(context.Context) error

// InitializeTracing sets up a stdout-exporting tracer provider and installs
// it globally. The dashboard service wraps snapshot computation in spans;
// everything else picks tracing up through otel's global provider.
func InitializeTracing(serviceName, version string, logger *slog.Logger) (TracingShutdown, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	logger.Info("tracing initialized", slog.String("service", serviceName))

	return provider.Shutdown, nil
}
