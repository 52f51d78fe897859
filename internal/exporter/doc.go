// Package exporter writes the run's reports to disk.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing with headers, truncation of previous output
// and an optional UTF-8 BOM for Excel.
//
// WorkbookWriter: Writes several tables as sheets of one .xlsx workbook.
//
// ReportExporter: Renders the merged dataset and both summaries into rows
// and persists them through the writers above, then prints the list of
// saved files.
//
// Example usage:
//
//	paths := cfg.Paths()
//	reports := exporter.NewReportExporter(paths, logger)
//	saved, err := reports.Export(ctx, exporter.Report{
//		Merged:          merged,
//		SalesByProduct:  byProduct,
//		InventoryStatus: status,
//	})
package exporter
