package operations

import (
	"time"

	"invetl/internal/dataprocessing"
	"invetl/pkg/contracts/domain"
)

// OperationStatusValue represents the overall operation status enum
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// PipelineData carries the tables handed from one step to the next
type PipelineData struct {
	InventoryTable *domain.Table
	SalesTable     *domain.Table

	Inventory      []domain.InventoryRecord
	Sales          []domain.SaleRecord
	InventoryStats dataprocessing.Stats
	SalesStats     dataprocessing.Stats

	Merged []domain.MergedRecord

	SalesByProduct  []domain.SalesByProduct
	InventoryStatus []domain.InventoryStatus

	Outputs []string
}

// OperationState represents the complete state of one pipeline run
type OperationState struct {
	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`
	Error     error                `json:"-"`

	steps map[string]*StepState
	order []string

	// Data is filled in step by step
	Data PipelineData `json:"-"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		steps:     make(map[string]*StepState),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stageID string) *StepState {
	return p.steps[stageID]
}

// SetStage adds or replaces the state of a specific Step. New steps are
// appended to the run order.
func (p *OperationState) SetStage(stageID string, state *StepState) {
	if _, exists := p.steps[stageID]; !exists {
		p.order = append(p.order, stageID)
	}
	p.steps[stageID] = state
}

// Stages returns the step states in run order
func (p *OperationState) Stages() []*StepState {
	stages := make([]*StepState, 0, len(p.order))
	for _, id := range p.order {
		stages = append(stages, p.steps[id])
	}
	return stages
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// HasFailures returns true if any Step has failed
func (p *OperationState) HasFailures() bool {
	for _, step := range p.steps {
		if step.Status == StepStatusFailed {
			return true
		}
	}
	return false
}

// SkipRemaining marks every pending step as skipped
func (p *OperationState) SkipRemaining(reason string) {
	for _, id := range p.order {
		if step := p.steps[id]; step.Status == StepStatusPending {
			step.Skip(reason)
		}
	}
}
