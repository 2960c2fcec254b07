package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/modeyang/mcp-akshare-all/internal/platform/errors"
	"github.com/modeyang/mcp-akshare-all/internal/platform/id"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
)

const instrumentationName = "github.com/modeyang/mcp-akshare-all/internal/services/mcp/service"

// outcomeOK labels successful invocations in metrics.
const outcomeOK = "OK"

type invocationTelemetry struct {
	tracer      trace.Tracer
	invocations metric.Int64Counter
	duration    metric.Float64Histogram
}

// newInvocationTelemetry creates the tracer and instruments used by invoke.
func newInvocationTelemetry(tracers trace.TracerProvider, meters metric.MeterProvider) (*invocationTelemetry, error) {
	meter := meters.Meter(instrumentationName)
	invocations, err := meter.Int64Counter(
		"akshare_mcp.invocations",
		metric.WithDescription("Operation invocations by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create invocation counter: %w", err)
	}
	duration, err := meter.Float64Histogram(
		"akshare_mcp.invocation.duration",
		metric.WithDescription("Operation invocation latency."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create invocation histogram: %w", err)
	}
	return &invocationTelemetry{
		tracer:      tracers.Tracer(instrumentationName),
		invocations: invocations,
		duration:    duration,
	}, nil
}

// invocation is the outcome of one registry call.
type invocation struct {
	ID     string
	Result dataset.Normalized
}

// invoke runs one operation with tracing, metrics and failure logging.
func (s *Server) invoke(ctx context.Context, name string, args map[string]any) (invocation, error) {
	invocationID, err := id.NewID()
	if err != nil {
		return invocation{}, fmt.Errorf("generate invocation id: %w", err)
	}
	call := invocation{ID: invocationID}
	ctx, span := s.telemetry.tracer.Start(ctx, "akshare.invoke", trace.WithAttributes(
		attribute.String("akshare.operation", name),
		attribute.String("akshare.invocation_id", call.ID),
	))
	defer span.End()

	started := time.Now()
	result, err := s.registry.Invoke(ctx, name, args)
	elapsed := time.Since(started)

	outcome := outcomeOK
	if err != nil {
		outcome = string(apperrors.CodeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("operation %s failed: invocation=%s code=%s err=%v", name, call.ID, outcome, err)
	} else {
		call.Result = result
		span.SetAttributes(
			attribute.String("akshare.result_kind", result.Kind.String()),
			attribute.Int("akshare.total_rows", result.TotalRows),
			attribute.Bool("akshare.truncated", result.Truncated),
		)
		if result.Fallback {
			span.AddEvent(string(apperrors.CodeNormalizationFallback))
			log.Printf("operation %s returned an unrecognized shape: invocation=%s code=%s", name, call.ID, apperrors.CodeNormalizationFallback)
		}
	}
	span.SetAttributes(attribute.String("akshare.outcome", outcome))

	attrs := metric.WithAttributes(
		attribute.String("operation", name),
		attribute.String("outcome", outcome),
	)
	s.telemetry.invocations.Add(ctx, 1, attrs)
	s.telemetry.duration.Record(ctx, elapsed.Seconds(), attrs)
	return call, err
}
