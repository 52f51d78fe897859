package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "invetl/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a CSV writer that resolves relative paths against
// baseDir
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{baseDir: baseDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, replacing any previous content
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (err error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("file_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return storageError("failed to create output directory", fullPath, err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return storageError("failed to open output file", fullPath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = storageError("failed to close output file", fullPath, cerr)
		}
	}()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return storageError("failed to write BOM", fullPath, err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return storageError("failed to write headers", fullPath, err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return storageError("failed to write record", fullPath, err).WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return storageError("failed to flush output file", fullPath, err)
	}
	return nil
}

// resolvePath keeps absolute paths and places relative ones under baseDir
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}

func storageError(message, path string, cause error) *apperrors.AppError {
	return apperrors.NewStorageError(message, cause).WithContext("path", path)
}
