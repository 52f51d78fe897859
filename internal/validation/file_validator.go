// Package validation checks the files a run reads and the directory it
// writes to before any work is done.
package validation

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "invetl/internal/errors"
)

const writeProbe = ".invetl_write_test"

// FileValidator provides file checks shared by the pipeline steps
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateSource checks that path is a readable regular file in a format
// the loader understands. Legacy .xls workbooks and Excel lock files
// ("~$name.xlsx") are rejected.
func (v *FileValidator) ValidateSource(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Error("Source is a temporary Excel file", slog.String("file", path))
		return apperrors.NewAppValidationError("source is a temporary Excel file").WithContext("path", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".xls" {
		v.logger.Error("Unsupported source format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("legacy .xls workbooks are not supported").WithContext("path", path)
	}
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewStorageError("source file not found", err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat source", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewStorageError("source is a directory", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("source is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists, creating it
// when needed, and accepts new files
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
	}

	probe := filepath.Join(dir, writeProbe)
	file, err := os.Create(probe)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("path", dir)
	}
	file.Close()
	os.Remove(probe)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}
