package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"invetl/internal/config"
	"invetl/pkg/contracts/domain"
)

// Report holds the three tables produced by one run
type Report struct {
	Merged          []domain.MergedRecord
	SalesByProduct  []domain.SalesByProduct
	InventoryStatus []domain.InventoryStatus
}

// ReportExporter persists a Report as CSV files and, optionally, a workbook
type ReportExporter struct {
	paths     config.Paths
	csv       *CSVWriter
	workbook  *WorkbookWriter
	notice    io.Writer
	bomPrefix bool
	logger    *slog.Logger
}

// ReportOption customizes a ReportExporter
type ReportOption func(*ReportExporter)

// WithNotice sets where the list of saved files is printed
func WithNotice(w io.Writer) ReportOption {
	return func(e *ReportExporter) { e.notice = w }
}

// WithBOMPrefix prefixes every CSV with a UTF-8 BOM
func WithBOMPrefix(enabled bool) ReportOption {
	return func(e *ReportExporter) { e.bomPrefix = enabled }
}

// NewReportExporter creates an exporter writing to the given paths. The
// notice goes to stdout unless overridden.
func NewReportExporter(paths config.Paths, logger *slog.Logger, opts ...ReportOption) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &ReportExporter{
		paths:    paths,
		csv:      NewCSVWriter("", logger),
		workbook: NewWorkbookWriter(logger),
		notice:   os.Stdout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the merged dataset, the sales summary and the stock summary
// in that order, then the workbook when one is configured. It returns the
// paths written. A failure stops the export; files already written stay.
func (e *ReportExporter) Export(ctx context.Context, report Report) ([]string, error) {
	outputs := []struct {
		path    string
		headers []string
		records [][]string
	}{
		{e.paths.MergedFile, MergedHeaders, MergedRows(report.Merged)},
		{e.paths.SalesByProductFile, SalesByProductHeaders, SalesByProductRows(report.SalesByProduct)},
		{e.paths.InventoryStatusFile, InventoryStatusHeaders, InventoryStatusRows(report.InventoryStatus)},
	}

	saved := make([]string, 0, len(outputs)+1)
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return saved, err
		}
		if err := e.csv.WriteCSV(out.path, WriteOptions{
			Headers:   out.headers,
			Records:   out.records,
			BOMPrefix: e.bomPrefix,
		}); err != nil {
			return saved, err
		}
		e.logger.InfoContext(ctx, "Report written",
			slog.String("file_path", out.path),
			slog.Int("rows", len(out.records)))
		saved = append(saved, out.path)
	}

	if e.paths.WorkbookFile != "" {
		if err := e.workbook.WriteWorkbook(e.paths.WorkbookFile, reportSheets(outputs[0].records, outputs[1].records, outputs[2].records)); err != nil {
			return saved, err
		}
		e.logger.InfoContext(ctx, "Workbook written", slog.String("file_path", e.paths.WorkbookFile))
		saved = append(saved, e.paths.WorkbookFile)
	}

	e.printNotice(saved)
	return saved, nil
}

func (e *ReportExporter) printNotice(saved []string) {
	if e.notice == nil {
		return
	}
	var b strings.Builder
	b.WriteString("Files saved:\n")
	for _, path := range saved {
		fmt.Fprintf(&b, " - %s\n", path)
	}
	_, _ = io.WriteString(e.notice, b.String())
}

func reportSheets(merged, byProduct, status [][]string) []Sheet {
	return []Sheet{
		{
			Name:           sheetName(config.DefaultMergedFile),
			Headers:        MergedHeaders,
			Records:        merged,
			NumericColumns: map[int]bool{1: true, 2: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true},
		},
		{
			Name:           sheetName(config.DefaultSalesByProductFile),
			Headers:        SalesByProductHeaders,
			Records:        byProduct,
			NumericColumns: map[int]bool{2: true, 3: true, 4: true},
		},
		{
			Name:           sheetName(config.DefaultInventoryStatusFile),
			Headers:        InventoryStatusHeaders,
			Records:        status,
			NumericColumns: map[int]bool{2: true, 3: true, 4: true, 5: true},
		},
	}
}

func sheetName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
