package exporter

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	apperrors "invetl/internal/errors"
)

const defaultSheet = "Sheet1"

// Sheet is one table of a workbook. Cells of NumericColumns are stored as
// numbers when they parse; everything else is stored as text.
type Sheet struct {
	Name           string
	Headers        []string
	Records        [][]string
	NumericColumns map[int]bool
}

// WorkbookWriter writes tables as sheets of a single .xlsx file
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// WriteWorkbook replaces the file at path with one sheet per table, in order
func (w *WorkbookWriter) WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return apperrors.NewAppValidationError("workbook needs at least one sheet").WithContext("path", path)
	}

	w.logger.Debug("Writing workbook",
		slog.String("file_path", path),
		slog.Int("sheet_count", len(sheets)))

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return storageError("failed to name sheet", path, err).WithContext("sheet", sheet.Name)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return storageError("failed to create sheet", path, err).WithContext("sheet", sheet.Name)
		}

		if err := writeSheet(f, sheet); err != nil {
			return storageError("failed to write sheet", path, err).WithContext("sheet", sheet.Name)
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return storageError("failed to create output directory", path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return storageError("failed to save workbook", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}

	for r, record := range sheet.Records {
		row := make([]interface{}, len(record))
		for c, value := range record {
			row[c] = sheetValue(value, sheet.NumericColumns[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func sheetValue(value string, numeric bool) interface{} {
	if value == "" {
		return nil
	}
	if numeric {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return value
}
