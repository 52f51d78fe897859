// Package operations runs the reconciliation pipeline as an ordered list of
// steps.
//
// Core Components:
//
// Manager: Executes the registered steps strictly one after another,
// records a span and a duration sample per step and stops at the first
// failure. Steps after a failure are marked skipped. There are no retries.
//
// Step: A single unit of work. Steps exchange data through the
// OperationState they all receive.
//
// Registry: Keeps steps in registration order, which is the execution
// order.
//
// State: Tracks the run and each step, including row counts recorded as
// step metadata.
//
// Example usage:
//
//	registry, err := operations.NewPipelineRegistry(operations.PipelineDeps{
//		Paths:  cfg.Paths(),
//		Logger: logger,
//		Tracer: tracer,
//	})
//	if err != nil {
//		return err
//	}
//	manager := operations.NewManager(registry, tracer, logger)
//	resp, err := manager.Execute(ctx)
package operations
