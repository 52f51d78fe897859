package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"invetl/internal/config"
	"invetl/internal/dataprocessing"
	"invetl/internal/exporter"
	"invetl/internal/files"
	"invetl/internal/validation"
)

// PipelineDeps are the collaborators shared by the pipeline steps
type PipelineDeps struct {
	Paths     config.Paths
	Logger    *slog.Logger
	Tracer    *OperationTracer
	Notice    io.Writer
	BOMPrefix bool
}

func (d PipelineDeps) withDefaults() PipelineDeps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Tracer == nil {
		d.Tracer, _ = NewOperationTracer(nil, nil)
	}
	return d
}

// NewPipelineRegistry registers the five pipeline steps in execution order
func NewPipelineRegistry(deps PipelineDeps) (*Registry, error) {
	deps = deps.withDefaults()
	registry := NewRegistry()

	steps := []Step{
		NewLoadStage(deps),
		NewCleanStage(deps),
		NewTransformStage(deps),
		NewAggregateStage(deps),
		NewPersistStage(deps),
	}
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// LoadStage reads the inventory and sales sources
type LoadStage struct {
	BaseStage
	deps PipelineDeps
}

// NewLoadStage creates the source loading step
func NewLoadStage(deps PipelineDeps) *LoadStage {
	return &LoadStage{BaseStage: NewBaseStage(StageIDLoad, StageNameLoad), deps: deps.withDefaults()}
}

// Validate requires both sources to be readable files in a supported format
func (s *LoadStage) Validate(state *OperationState) error {
	if s.deps.Paths.InventoryFile == "" || s.deps.Paths.SalesFile == "" {
		return fmt.Errorf("inventory and sales paths are required")
	}
	validator := validation.NewFileValidator(s.deps.Logger)
	if err := validator.ValidateSource(s.deps.Paths.InventoryFile); err != nil {
		return err
	}
	return validator.ValidateSource(s.deps.Paths.SalesFile)
}

// Execute loads both sources, inventory first
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	inventory, sales, err := files.LoadSources(s.deps.Paths.InventoryFile, s.deps.Paths.SalesFile)
	if err != nil {
		return err
	}
	state.Data.InventoryTable = inventory
	state.Data.SalesTable = sales

	s.deps.Tracer.RecordRowsLoaded(ctx, inventory.Name, inventory.Len())
	s.deps.Tracer.RecordRowsLoaded(ctx, sales.Name, sales.Len())

	step := state.GetStage(s.ID())
	step.SetMetadata(MetadataInputRows, map[string]int{
		inventory.Name: inventory.Len(),
		sales.Name:     sales.Len(),
	})
	return nil
}

// CleanStage coerces both tables and drops rows missing key fields
type CleanStage struct {
	BaseStage
	deps PipelineDeps
}

// NewCleanStage creates the cleaning step
func NewCleanStage(deps PipelineDeps) *CleanStage {
	return &CleanStage{BaseStage: NewBaseStage(StageIDClean, StageNameClean), deps: deps.withDefaults()}
}

// Validate requires the loaded tables
func (s *CleanStage) Validate(state *OperationState) error {
	if state.Data.InventoryTable == nil || state.Data.SalesTable == nil {
		return fmt.Errorf("source tables have not been loaded")
	}
	return nil
}

// Execute cleans inventory, then sales
func (s *CleanStage) Execute(ctx context.Context, state *OperationState) error {
	inventory, inventoryStats, err := dataprocessing.CleanInventory(state.Data.InventoryTable)
	if err != nil {
		return err
	}
	sales, salesStats, err := dataprocessing.CleanSales(state.Data.SalesTable)
	if err != nil {
		return err
	}

	state.Data.Inventory = inventory
	state.Data.Sales = sales
	state.Data.InventoryStats = inventoryStats
	state.Data.SalesStats = salesStats

	dropped := make(map[string]int, 2)
	failures := make(map[string]int, 2)
	for _, stats := range []dataprocessing.Stats{inventoryStats, salesStats} {
		s.deps.Tracer.RecordRowsDropped(ctx, stats.Source, stats.DroppedRows)
		s.deps.Tracer.RecordCoercionFailures(ctx, stats.Source, stats.CoercionFailures)
		dropped[stats.Source] = stats.DroppedRows
		failures[stats.Source] = stats.TotalCoercionFailures()

		s.deps.Logger.DebugContext(ctx, "cleaning_stats",
			slog.String("source", stats.Source),
			slog.Int("input_rows", stats.InputRows),
			slog.Int("kept_rows", stats.KeptRows),
			slog.Any("drop_reasons", stats.DropReasons),
			slog.Any("coercion_failures", stats.CoercionFailures))
	}

	step := state.GetStage(s.ID())
	step.SetMetadata(MetadataOutputRows, map[string]int{
		inventoryStats.Source: len(inventory),
		salesStats.Source:     len(sales),
	})
	step.SetMetadata(MetadataDroppedRows, dropped)
	step.SetMetadata(MetadataCoercionFailures, failures)
	return nil
}

// TransformStage joins sales to inventory and derives the financial metrics
type TransformStage struct {
	BaseStage
	deps PipelineDeps
}

// NewTransformStage creates the join and derive step
func NewTransformStage(deps PipelineDeps) *TransformStage {
	return &TransformStage{BaseStage: NewBaseStage(StageIDTransform, StageNameTransform), deps: deps.withDefaults()}
}

// Execute merges the cleaned tables
func (s *TransformStage) Execute(ctx context.Context, state *OperationState) error {
	merged := dataprocessing.Merge(state.Data.Inventory, state.Data.Sales)
	if len(merged) != len(state.Data.Sales) {
		return NewFatalError(fmt.Sprintf("merge produced %d rows for %d sales", len(merged), len(state.Data.Sales)), nil)
	}
	state.Data.Merged = merged

	unmatched := 0
	for _, record := range merged {
		if !record.InventoryMatched {
			unmatched++
		}
	}

	step := state.GetStage(s.ID())
	step.SetMetadata(MetadataOutputRows, len(merged))
	step.SetMetadata(MetadataUnmatchedSales, unmatched)
	return nil
}

// AggregateStage builds the sales and stock summaries
type AggregateStage struct {
	BaseStage
	deps PipelineDeps
}

// NewAggregateStage creates the aggregation step
func NewAggregateStage(deps PipelineDeps) *AggregateStage {
	return &AggregateStage{BaseStage: NewBaseStage(StageIDAggregate, StageNameAggregate), deps: deps.withDefaults()}
}

// Execute computes both summaries from the merged dataset
func (s *AggregateStage) Execute(ctx context.Context, state *OperationState) error {
	state.Data.SalesByProduct = dataprocessing.SalesByProduct(state.Data.Merged)
	state.Data.InventoryStatus = dataprocessing.InventoryStatus(state.Data.Merged)

	step := state.GetStage(s.ID())
	step.SetMetadata(MetadataOutputRows, map[string]int{
		"sales_by_product": len(state.Data.SalesByProduct),
		"inventory_status": len(state.Data.InventoryStatus),
	})
	step.SetMetadata(MetadataLowStock, len(dataprocessing.LowStock(state.Data.InventoryStatus)))
	return nil
}

// PersistStage writes the reports
type PersistStage struct {
	BaseStage
	deps PipelineDeps
}

// NewPersistStage creates the export step
func NewPersistStage(deps PipelineDeps) *PersistStage {
	return &PersistStage{BaseStage: NewBaseStage(StageIDPersist, StageNamePersist), deps: deps.withDefaults()}
}

// Validate requires a writable output directory
func (s *PersistStage) Validate(state *OperationState) error {
	if s.deps.Paths.OutputDir == "" {
		return nil
	}
	return validation.NewFileValidator(s.deps.Logger).ValidateOutputDirectory(s.deps.Paths.OutputDir)
}

// Execute writes the merged dataset and both summaries
func (s *PersistStage) Execute(ctx context.Context, state *OperationState) error {
	opts := []exporter.ReportOption{exporter.WithBOMPrefix(s.deps.BOMPrefix)}
	if s.deps.Notice != nil {
		opts = append(opts, exporter.WithNotice(s.deps.Notice))
	}
	reports := exporter.NewReportExporter(s.deps.Paths, s.deps.Logger, opts...)

	saved, err := reports.Export(ctx, exporter.Report{
		Merged:          state.Data.Merged,
		SalesByProduct:  state.Data.SalesByProduct,
		InventoryStatus: state.Data.InventoryStatus,
	})
	state.Data.Outputs = saved
	if err != nil {
		return err
	}

	s.deps.Tracer.RecordRowsWritten(ctx, "merged", len(state.Data.Merged))
	s.deps.Tracer.RecordRowsWritten(ctx, "sales_by_product", len(state.Data.SalesByProduct))
	s.deps.Tracer.RecordRowsWritten(ctx, "inventory_status", len(state.Data.InventoryStatus))

	state.GetStage(s.ID()).SetMetadata(MetadataFiles, len(saved))
	return nil
}
