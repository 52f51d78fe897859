package operations

import (
	"time"
)

// Pipeline step identifiers
const (
	StageIDLoad      = "load"
	StageIDClean     = "clean"
	StageIDTransform = "transform"
	StageIDAggregate = "aggregate"
	StageIDPersist   = "persist"
)

// Pipeline step names
const (
	StageNameLoad      = "Source Loading"
	StageNameClean     = "Data Cleaning"
	StageNameTransform = "Join and Derive"
	StageNameAggregate = "Aggregation"
	StageNamePersist   = "Report Export"
)

// Step metadata keys
const (
	MetadataInputRows        = "input_rows"
	MetadataOutputRows       = "output_rows"
	MetadataDroppedRows      = "dropped_rows"
	MetadataCoercionFailures = "coercion_failures"
	MetadataUnmatchedSales   = "unmatched_sales"
	MetadataLowStock         = "low_stock"
	MetadataFiles            = "files"
)

// OperationResponse summarizes a finished run
type OperationResponse struct {
	ID       string               `json:"id"`
	Status   OperationStatusValue `json:"status"`
	Duration time.Duration        `json:"duration"`
	Steps    []*StepState         `json:"steps"`
	Outputs  []string             `json:"outputs,omitempty"`
	Error    string               `json:"error,omitempty"`
}
