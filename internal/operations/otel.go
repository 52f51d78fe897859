package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Metric names. The Prometheus exporter appends _total to counters.
const (
	MetricRowsLoaded       = "invetl_rows_loaded"
	MetricRowsDropped      = "invetl_rows_dropped"
	MetricCoercionFailures = "invetl_coercion_failures"
	MetricRowsWritten      = "invetl_rows_written"
	MetricStepDuration     = "invetl_step_duration_seconds"
)

// OperationTracer provides OpenTelemetry instrumentation for pipeline runs
type OperationTracer struct {
	tracer trace.Tracer

	rowsLoaded       metric.Int64Counter
	rowsDropped      metric.Int64Counter
	coercionFailures metric.Int64Counter
	rowsWritten      metric.Int64Counter
	stepDuration     metric.Float64Histogram
}

// NewOperationTracer creates the pipeline instruments. Nil providers fall
// back to no-op implementations.
func NewOperationTracer(tracer trace.Tracer, meter metric.Meter) (*OperationTracer, error) {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("")
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("")
	}

	pt := &OperationTracer{tracer: tracer}
	var err error

	if pt.rowsLoaded, err = meter.Int64Counter(MetricRowsLoaded,
		metric.WithDescription("Rows read from source files"),
		metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRowsLoaded, err)
	}
	if pt.rowsDropped, err = meter.Int64Counter(MetricRowsDropped,
		metric.WithDescription("Rows dropped during cleaning"),
		metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRowsDropped, err)
	}
	if pt.coercionFailures, err = meter.Int64Counter(MetricCoercionFailures,
		metric.WithDescription("Cell values that could not be coerced and became null"),
		metric.WithUnit("{cell}")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricCoercionFailures, err)
	}
	if pt.rowsWritten, err = meter.Int64Counter(MetricRowsWritten,
		metric.WithDescription("Rows written to report files"),
		metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", MetricRowsWritten, err)
	}
	if pt.stepDuration, err = meter.Float64Histogram(MetricStepDuration,
		metric.WithDescription("Duration of pipeline steps"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", MetricStepDuration, err)
	}

	return pt, nil
}

// TraceStageExecution creates a span for individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stageID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+stageID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stageID),
		),
	)
}

// RecordStageCompletion ends the step span and records its duration
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stageID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "step completed")
	}
	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)
	span.End()

	pt.stepDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("step", stageID),
			attribute.String("status", status),
		),
	)
}

// RecordRowsLoaded counts rows read from a source
func (pt *OperationTracer) RecordRowsLoaded(ctx context.Context, source string, rows int) {
	pt.rowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("source", source)))
}

// RecordRowsDropped counts rows removed by cleaning
func (pt *OperationTracer) RecordRowsDropped(ctx context.Context, source string, rows int) {
	pt.rowsDropped.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("source", source)))
}

// RecordCoercionFailures counts values nulled by coercion, per column
func (pt *OperationTracer) RecordCoercionFailures(ctx context.Context, source string, failures map[string]int) {
	for column, n := range failures {
		pt.coercionFailures.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("source", source),
			attribute.String("column", column),
		))
	}
}

// RecordRowsWritten counts rows written to a report file
func (pt *OperationTracer) RecordRowsWritten(ctx context.Context, report string, rows int) {
	pt.rowsWritten.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("report", report)))
}
