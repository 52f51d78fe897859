package files

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "invetl/internal/errors"
	"invetl/pkg/contracts/domain"
)

// Format identifies how a tabular source is encoded
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks the reader for a path by its extension
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// LoadSources loads the inventory and sales sources, inventory first
func LoadSources(inventoryPath, salesPath string) (*domain.Table, *domain.Table, error) {
	inventory, err := Load(inventoryPath)
	if err != nil {
		return nil, nil, err
	}
	sales, err := Load(salesPath)
	if err != nil {
		return nil, nil, err
	}
	return inventory, sales, nil
}

// Load reads a tabular source into memory
func Load(path string) (*domain.Table, error) {
	switch DetectFormat(path) {
	case FormatXLSX:
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	table, err := ReadCSV(file, filepath.Base(path))
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}
	return table, nil
}

// ReadCSV parses CSV text with a mandatory header row. A leading UTF-8 BOM
// is dropped and rows may have fewer or more fields than the header.
func ReadCSV(r io.Reader, name string) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("source has no header row", nil).
			WithContext("source", name)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header row", err).
			WithContext("source", name)
	}

	table := &domain.Table{Name: name, Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read row", err).
				WithContext("source", name).
				WithContext("row", len(table.Rows)+1)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

func loadXLSX(path string) (*domain.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, openError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no worksheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, apperrors.NewParsingError("source has no header row", nil).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	table := &domain.Table{Name: filepath.Base(path), Header: rows[0]}
	for _, row := range rows[1:] {
		// GetRows keeps empty rows in the middle of a sheet; a blank line
		// in a CSV is skipped, so do the same here.
		if isBlank(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewStorageError("source file not found", err).
			WithContext("path", path)
	}
	return apperrors.NewStorageError("failed to open source", err).
		WithContext("path", path)
}
