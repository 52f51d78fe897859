package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"invetl/internal/infrastructure"
)

// Manager orchestrates pipeline execution
type Manager struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new operation manager. A nil tracer disables
// instrumentation; a nil logger uses slog.Default.
func NewManager(registry *Registry, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if tracer == nil {
		// no-op providers never fail to create instruments
		tracer, _ = NewOperationTracer(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		tracer:   tracer,
		logger:   logger,
	}
}

// GetRegistry returns the registry for accessing registered stages
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// Execute runs every registered step once, in registration order. The run
// ID is taken from ctx when present. The first failing step ends the run
// and the steps after it are marked skipped.
func (m *Manager) Execute(ctx context.Context) (*OperationResponse, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	id := infrastructure.GetRunID(ctx)

	state := NewOperationState(id)
	steps := m.registry.List()
	if len(steps) == 0 {
		err := NewFatalError("no steps registered", nil)
		state.Fail(err)
		return m.createResponse(state), err
	}

	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	state.Start()
	m.logOperationStart(ctx, id, len(steps))

	err := m.executeSequential(ctx, state, steps)
	switch {
	case err == nil:
		state.Complete()
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
	default:
		state.Fail(err)
	}

	m.logOperationComplete(ctx, id, state.Duration(), state.Status)
	return m.createResponse(state), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			state.SkipRemaining("operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		m.logStageStart(ctx, state.ID, step.ID(), i+1, len(steps))
		if err := m.executeStage(ctx, state, step); err != nil {
			m.logStageError(ctx, state.ID, step.ID(), err)
			state.SkipRemaining(fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
		m.logStageComplete(ctx, state.ID, state.GetStage(step.ID()))
	}
	return nil
}

// executeStage validates and runs a single Step inside its own span
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	stepState.Start()

	stageCtx, span := m.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	startTime := time.Now()

	var err error
	if verr := step.Validate(state); verr != nil {
		err = NewValidationError(step.ID(), verr)
	} else if xerr := step.Execute(stageCtx, state); xerr != nil {
		err = WrapError(xerr, step.ID())
	}

	m.tracer.RecordStageCompletion(stageCtx, span, step.ID(), time.Since(startTime), err)

	if err != nil {
		stepState.Fail(err)
		return err
	}
	stepState.Complete()
	return nil
}

// createResponse builds the response for a finished run
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.Status,
		Duration: state.Duration(),
		Steps:    state.Stages(),
		Outputs:  state.Data.Outputs,
	}
	if state.Error != nil {
		resp.Error = state.Error.Error()
	}
	return resp
}
