package operations

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"invetl/internal/config"
	apperrors "invetl/internal/errors"
	"invetl/internal/shared/testutil"
)

type pipelineFixture struct {
	dir    string
	paths  config.Paths
	notice *bytes.Buffer
}

func newPipelineFixture(t *testing.T) pipelineFixture {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	return pipelineFixture{
		dir: dir,
		paths: config.Paths{
			InventoryFile:       filepath.Join(dir, config.DefaultInventoryFile),
			SalesFile:           filepath.Join(dir, config.DefaultSalesFile),
			OutputDir:           out,
			MergedFile:          filepath.Join(out, config.DefaultMergedFile),
			SalesByProductFile:  filepath.Join(out, config.DefaultSalesByProductFile),
			InventoryStatusFile: filepath.Join(out, config.DefaultInventoryStatusFile),
		},
		notice: &bytes.Buffer{},
	}
}

func (f pipelineFixture) writeSources(t *testing.T) {
	t.Helper()
	testutil.WriteCSV(t, f.dir, config.DefaultInventoryFile, testutil.InventoryHeader,
		[]string{"P1", "Widget", "2.00", "100", "10"},
		[]string{"P2", "Gadget", "1.50", "4", "5"},
	)
	testutil.WriteCSV(t, f.dir, config.DefaultSalesFile, testutil.SalesHeader,
		[]string{"P1", "5", "9.99", "2025-01-01"},
		[]string{"P1", "bad", "9.99", "2025-01-02"},
		[]string{"P9", "2", "3.00", "2025-01-03"},
		[]string{"P2", "1", "2.25", "not a date"},
		[]string{"", "1", "1.00", "2025-01-04"},
	)
}

func (f pipelineFixture) run(t *testing.T, tracer *OperationTracer) (*OperationResponse, error) {
	t.Helper()
	registry, err := NewPipelineRegistry(PipelineDeps{
		Paths:  f.paths,
		Tracer: tracer,
		Notice: f.notice,
	})
	require.NoError(t, err)
	return NewManager(registry, tracer, nil).Execute(context.Background())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewPipelineRegistry(t *testing.T) {
	registry, err := NewPipelineRegistry(PipelineDeps{})
	require.NoError(t, err)

	assert.Equal(t, []string{StageIDLoad, StageIDClean, StageIDTransform, StageIDAggregate, StageIDPersist}, registry.ListIDs())
}

func TestPipeline_EndToEnd(t *testing.T) {
	f := newPipelineFixture(t)
	f.writeSources(t)
	tm := newTelemetry(t)

	resp, err := f.run(t, tm.tracer)
	require.NoError(t, err)
	assert.Equal(t, OperationStatusCompleted, resp.Status)
	assert.Equal(t, f.paths.Outputs(), resp.Outputs)

	assert.Equal(t,
		"product_id,quantity,unit_price,sale_date,product_name,unit_cost,stock_on_hand,reorder_level,revenue,cost,profit\n"+
			"P1,5,9.99,2025-01-01,Widget,2.00,100,10,49.95,10.00,39.95\n"+
			"P9,2,3.00,2025-01-03,,,,,6.00,,\n"+
			"P2,1,2.25,,Gadget,1.50,4,5,2.25,1.50,0.75\n",
		readFile(t, f.paths.MergedFile))

	assert.Equal(t,
		"product_id,product_name,total_quantity_sold,total_revenue,total_profit\n"+
			"P1,Widget,5,49.95,39.95\n"+
			"P2,Gadget,1,2.25,0.75\n",
		readFile(t, f.paths.SalesByProductFile))

	assert.Equal(t,
		"product_id,product_name,stock_on_hand,reorder_level,total_quantity_sold,estimated_stock_after_sales\n"+
			"P1,Widget,100,10,5,95\n"+
			"P2,Gadget,4,5,1,3\n",
		readFile(t, f.paths.InventoryStatusFile))

	assert.Equal(t, "Files saved:\n"+
		" - "+f.paths.MergedFile+"\n"+
		" - "+f.paths.SalesByProductFile+"\n"+
		" - "+f.paths.InventoryStatusFile+"\n", f.notice.String())

	transform := resp.Steps[2]
	assert.Equal(t, StageIDTransform, transform.ID)
	assert.Equal(t, 3, transform.Metadata[MetadataOutputRows])
	assert.Equal(t, 1, transform.Metadata[MetadataUnmatchedSales])
	assert.Equal(t, 1, resp.Steps[3].Metadata[MetadataLowStock])

	rm := tm.collect(t)
	m, ok := findMetric(rm, MetricRowsDropped)
	require.True(t, ok)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var dropped int64
	for _, dp := range sum.DataPoints {
		dropped += dp.Value
	}
	assert.Equal(t, int64(2), dropped)

	_, ok = findMetric(rm, MetricRowsWritten)
	assert.True(t, ok)
}

func TestPipeline_Idempotent(t *testing.T) {
	f := newPipelineFixture(t)
	f.writeSources(t)

	_, err := f.run(t, nil)
	require.NoError(t, err)
	first := make(map[string]string)
	for _, path := range f.paths.Outputs() {
		first[path] = readFile(t, path)
	}

	_, err = f.run(t, nil)
	require.NoError(t, err)
	for _, path := range f.paths.Outputs() {
		assert.Equal(t, first[path], readFile(t, path), path)
	}
}

func TestPipeline_MissingSourceAbortsWithoutOutputs(t *testing.T) {
	f := newPipelineFixture(t)
	testutil.WriteCSV(t, f.dir, config.DefaultInventoryFile, testutil.InventoryHeader,
		[]string{"P1", "Widget", "2.00", "100", "10"})

	resp, err := f.run(t, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	assert.Equal(t, OperationStatusFailed, resp.Status)

	assert.Equal(t, StepStatusFailed, resp.Steps[0].Status)
	for _, step := range resp.Steps[1:] {
		assert.Equal(t, StepStatusSkipped, step.Status, step.ID)
	}
	for _, path := range f.paths.Outputs() {
		assert.NoFileExists(t, path)
	}
	assert.Empty(t, f.notice.String())
}

func TestPipeline_MissingColumnIsFatal(t *testing.T) {
	f := newPipelineFixture(t)
	testutil.WriteCSV(t, f.dir, config.DefaultInventoryFile, testutil.InventoryHeader,
		[]string{"P1", "Widget", "2.00", "100", "10"})
	testutil.WriteCSV(t, f.dir, config.DefaultSalesFile, []string{"product_id", "unit_price", "sale_date"},
		[]string{"P1", "9.99", "2025-01-01"})

	resp, err := f.run(t, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Equal(t, StepStatusFailed, resp.Steps[1].Status)
	assert.NoFileExists(t, f.paths.MergedFile)
}

func TestPipeline_EmptySalesWritesHeaderOnlyReports(t *testing.T) {
	f := newPipelineFixture(t)
	testutil.WriteCSV(t, f.dir, config.DefaultInventoryFile, testutil.InventoryHeader,
		[]string{"P1", "Widget", "2.00", "100", "10"})
	testutil.WriteCSV(t, f.dir, config.DefaultSalesFile, testutil.SalesHeader)

	_, err := f.run(t, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"product_id,product_name,stock_on_hand,reorder_level,total_quantity_sold,estimated_stock_after_sales\n",
		readFile(t, f.paths.InventoryStatusFile))
}

func TestPipeline_WorkbookSources(t *testing.T) {
	f := newPipelineFixture(t)
	f.paths.InventoryFile = testutil.WriteWorkbook(t, f.dir, "inventory.xlsx", testutil.InventoryHeader,
		[]string{"P1", "Widget", "2.00", "100", "10"})
	f.paths.SalesFile = testutil.WriteWorkbook(t, f.dir, "sales.xlsx", testutil.SalesHeader,
		[]string{"P1", "5", "9.99", "2025-01-01"})

	_, err := f.run(t, nil)
	require.NoError(t, err)

	assert.Contains(t, readFile(t, f.paths.SalesByProductFile), "P1,Widget,5,49.95,39.95\n")
}

func TestCleanStage_ValidateRequiresTables(t *testing.T) {
	stage := NewCleanStage(PipelineDeps{})
	err := stage.Validate(NewOperationState("run"))
	assert.ErrorContains(t, err, "not been loaded")
}

func TestLoadStage_ValidateRequiresPaths(t *testing.T) {
	stage := NewLoadStage(PipelineDeps{})
	err := stage.Validate(NewOperationState("run"))
	assert.ErrorContains(t, err, "paths are required")
}

func TestLoadStage_ValidateRejectsLegacyWorkbook(t *testing.T) {
	f := newPipelineFixture(t)
	f.writeSources(t)
	f.paths.InventoryFile = testutil.WriteFile(t, f.dir, "inventory.xls", "x")

	resp, err := f.run(t, nil)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeValidation, GetErrorType(err))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Equal(t, StepStatusFailed, resp.Steps[0].Status)
}

func TestPersistStage_ValidateRejectsUnwritableOutput(t *testing.T) {
	f := newPipelineFixture(t)
	f.writeSources(t)
	blocker := testutil.WriteFile(t, f.dir, "blocker", "x")
	f.paths.OutputDir = filepath.Join(blocker, "out")

	stage := NewPersistStage(PipelineDeps{Paths: f.paths})
	err := stage.Validate(NewOperationState("run"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestPipeline_BareInventoryRowCountsAsMatched(t *testing.T) {
	f := newPipelineFixture(t)
	testutil.WriteCSV(t, f.dir, config.DefaultInventoryFile, testutil.InventoryHeader,
		[]string{"P2", "", "", "", ""})
	testutil.WriteCSV(t, f.dir, config.DefaultSalesFile, testutil.SalesHeader,
		[]string{"P2", "1", "2.25", "2025-01-01"},
		[]string{"P9", "2.5", "3.00", "2025-01-02"},
	)

	resp, err := f.run(t, nil)
	require.NoError(t, err)

	transform := resp.Steps[2]
	assert.Equal(t, 2, transform.Metadata[MetadataOutputRows])
	assert.Equal(t, 1, transform.Metadata[MetadataUnmatchedSales])
	assert.Equal(t,
		"product_id,quantity,unit_price,sale_date,product_name,unit_cost,stock_on_hand,reorder_level,revenue,cost,profit\n"+
			"P2,1,2.25,2025-01-01,,,,,2.25,,\n"+
			"P9,2.5,3.00,2025-01-02,,,,,7.50,,\n",
		readFile(t, f.paths.MergedFile))
}
