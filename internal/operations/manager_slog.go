package operations

import (
	"context"
	"log/slog"
	"time"
)

// logOperationStart logs the start of a pipeline run
func (m *Manager) logOperationStart(ctx context.Context, operationID string, stepCount int) {
	m.logger.InfoContext(ctx, "operation_start",
		slog.String("operation_id", operationID),
		slog.Int("step_count", stepCount))
}

// logOperationComplete logs the completion of a pipeline run
func (m *Manager) logOperationComplete(ctx context.Context, operationID string, duration time.Duration, status OperationStatusValue) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", string(status)),
		slog.Duration("duration", duration))
}

// logStageStart logs the start of a Step execution
func (m *Manager) logStageStart(ctx context.Context, operationID, stageID string, number, total int) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.Int("stage_number", number),
		slog.Int("total_stages", total))
}

// logStageComplete logs the completion of a Step execution
func (m *Manager) logStageComplete(ctx context.Context, operationID string, step *StepState) {
	attrs := []any{
		slog.String("operation_id", operationID),
		slog.String("step", step.ID),
		slog.Duration("duration", step.Duration()),
	}
	for key, value := range step.Metadata {
		attrs = append(attrs, slog.Any(key, value))
	}
	m.logger.InfoContext(ctx, "stage_complete", attrs...)
}

// logStageError logs a Step error
func (m *Manager) logStageError(ctx context.Context, operationID, stageID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.String("error", errorMsg))
}
