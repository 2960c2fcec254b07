// Package otel configures OpenTelemetry export for the gateway process.
package otel

import (
	"context"
	"errors"
	"strings"

	"github.com/modeyang/mcp-akshare-all/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// otelEnv holds the env-parsed telemetry switches.
type otelEnv struct {
	Endpoint string `env:"AKSHARE_MCP_OTEL_ENDPOINT"`
	Enabled  string `env:"AKSHARE_MCP_OTEL_ENABLED"`
}

// Setup initialises OpenTelemetry tracing and metrics for the given service.
//
// Export is opt-in: when AKSHARE_MCP_OTEL_ENDPOINT is empty or
// AKSHARE_MCP_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and no global provider is registered. Spans and metrics go to the
// same OTLP/HTTP endpoint.
//
// The returned shutdown function flushes pending spans and metrics and should
// be deferred by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var raw otelEnv
	if err := config.ParseEnv(&raw); err != nil {
		return noop, err
	}
	if strings.EqualFold(strings.TrimSpace(raw.Enabled), "false") {
		return noop, nil
	}
	endpoint := strings.TrimSpace(raw.Endpoint)
	if endpoint == "" {
		return noop, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}
	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, errors.Join(err, traceExporter.Shutdown(ctx))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
