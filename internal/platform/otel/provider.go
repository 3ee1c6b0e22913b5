// Package otel wires the process-wide OpenTelemetry trace provider.
package otel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes pending spans. Callers defer it after Setup.
type ShutdownFunc func(context.Context) error

// Setup installs a global OTLP/HTTP trace provider for serviceName.
//
// Tracing is opt-in: export happens only when INKWELL_OTEL_ENDPOINT is set
// and INKWELL_OTEL_ENABLED is not "false". When tracing is off the returned
// shutdown is a no-op and no global provider is registered, so otel.Tracer
// spans become no-ops too.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	noop := ShutdownFunc(func(context.Context) error { return nil })

	if !tracingEnabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(os.Getenv("INKWELL_OTEL_ENDPOINT")),
	)
	if err != nil {
		return noop, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return noop, fmt.Errorf("build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider.Shutdown, nil
}

func tracingEnabled() bool {
	if strings.EqualFold(os.Getenv("INKWELL_OTEL_ENABLED"), "false") {
		return false
	}
	return os.Getenv("INKWELL_OTEL_ENDPOINT") != ""
}
